package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullableString maps a nil or empty pointer to SQL NULL.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// stringPtr converts a scanned sql.NullString back into an optional value.
func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}

func parseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}
