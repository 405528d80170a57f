package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
)

const summaryColumns = `id, cohort_id, week_start_date, week_end_date, total_hours, summary_date, created_at`

// SQLiteSummaryRepo implements SummaryRepo using a SQLite database.
type SQLiteSummaryRepo struct {
	db db.DBTX
}

func NewSQLiteSummaryRepo(conn db.DBTX) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: conn}
}

// Upsert keys on (cohort_id, week_start_date). On conflict the existing row
// keeps its id and created_at; total_hours and summary_date are replaced.
func (r *SQLiteSummaryRepo) Upsert(ctx context.Context, s *domain.WeeklySummary) (*domain.WeeklySummary, error) {
	query := `INSERT INTO weekly_effort_summary (` + summaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cohort_id, week_start_date) DO UPDATE SET
			week_end_date = excluded.week_end_date,
			total_hours   = excluded.total_hours,
			summary_date  = excluded.summary_date`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.CohortID,
		formatDate(s.WeekStart),
		formatDate(s.WeekEnd),
		int64(s.TotalHours),
		formatTimestamp(s.SummaryDate),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting weekly summary: %w", err)
	}
	return r.GetByCohortAndWeekStart(ctx, s.CohortID, s.WeekStart)
}

func (r *SQLiteSummaryRepo) GetByCohortAndWeekStart(ctx context.Context, cohortID string, weekStart time.Time) (*domain.WeeklySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM weekly_effort_summary
		WHERE cohort_id = ? AND week_start_date = ?`
	row := r.db.QueryRowContext(ctx, query, cohortID, formatDate(weekStart))
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("weekly summary %s/%s: %w", cohortID, formatDate(weekStart), ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSummaryRepo) ListByCohort(ctx context.Context, cohortID string) ([]*domain.WeeklySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM weekly_effort_summary
		WHERE cohort_id = ? ORDER BY week_start_date`
	rows, err := r.db.QueryContext(ctx, query, cohortID)
	if err != nil {
		return nil, fmt.Errorf("listing weekly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.WeeklySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly summaries: %w", err)
	}
	return summaries, nil
}

func scanSummary(sc scanner) (*domain.WeeklySummary, error) {
	var s domain.WeeklySummary
	var weekStart, weekEnd, createdAt string
	var summaryDate sql.NullString
	var total int64

	if err := sc.Scan(&s.ID, &s.CohortID, &weekStart, &weekEnd, &total, &summaryDate, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning weekly summary: %w", err)
	}
	s.TotalHours = domain.Hours(total)

	var err error
	if s.WeekStart, err = parseDate("week_start_date", weekStart); err != nil {
		return nil, err
	}
	if s.WeekEnd, err = parseDate("week_end_date", weekEnd); err != nil {
		return nil, err
	}
	if summaryDate.Valid {
		if s.SummaryDate, err = parseTimestamp("summary_date", summaryDate.String); err != nil {
			return nil, err
		}
	}
	if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}
