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

const effortColumns = `id, cohort_id, trainer_mentor_id, role, mode, area_of_work, effort_hours,
	effort_date, month, updated_by, created_at, updated_at`

// SQLiteEffortRepo implements EffortRepo using a SQLite database.
type SQLiteEffortRepo struct {
	db db.DBTX
}

func NewSQLiteEffortRepo(conn db.DBTX) *SQLiteEffortRepo {
	return &SQLiteEffortRepo{db: conn}
}

func (r *SQLiteEffortRepo) Create(ctx context.Context, e *domain.EffortRecord) error {
	query := `INSERT INTO stakeholder_efforts (` + effortColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updatedBy := e.UpdatedBy
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.CohortID,
		e.StakeholderID,
		string(e.Role),
		string(e.Mode),
		e.AreaOfWork,
		int64(e.Hours),
		formatDate(e.EffortDate),
		e.Month,
		nullableString(&updatedBy),
		formatTimestamp(e.CreatedAt),
		formatTimestamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting effort record: %w", err)
	}
	return nil
}

func (r *SQLiteEffortRepo) GetByID(ctx context.Context, id string) (*domain.EffortRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+effortColumns+` FROM stakeholder_efforts WHERE id = ?`, id)
	e, err := scanEffort(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("effort record %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLiteEffortRepo) ListByCohort(ctx context.Context, cohortID string) ([]*domain.EffortRecord, error) {
	query := `SELECT ` + effortColumns + ` FROM stakeholder_efforts
		WHERE cohort_id = ? ORDER BY effort_date, created_at, role`
	return r.list(ctx, "listing efforts by cohort", query, cohortID)
}

func (r *SQLiteEffortRepo) ListByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) ([]*domain.EffortRecord, error) {
	query := `SELECT ` + effortColumns + ` FROM stakeholder_efforts
		WHERE cohort_id = ? AND effort_date BETWEEN ? AND ?
		ORDER BY effort_date, created_at, role`
	return r.list(ctx, "listing efforts by cohort and range", query, cohortID, formatDate(start), formatDate(end))
}

func (r *SQLiteEffortRepo) ListByStakeholder(ctx context.Context, stakeholderID string) ([]*domain.EffortRecord, error) {
	query := `SELECT ` + effortColumns + ` FROM stakeholder_efforts
		WHERE trainer_mentor_id = ? ORDER BY effort_date, created_at`
	return r.list(ctx, "listing efforts by stakeholder", query, stakeholderID)
}

// SumHoursByCohortAndDateRange returns zero when no record falls in the range.
func (r *SQLiteEffortRepo) SumHoursByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) (domain.Hours, error) {
	query := `SELECT COALESCE(SUM(effort_hours), 0) FROM stakeholder_efforts
		WHERE cohort_id = ? AND effort_date BETWEEN ? AND ?`
	var total int64
	if err := r.db.QueryRowContext(ctx, query, cohortID, formatDate(start), formatDate(end)).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing effort hours: %w", err)
	}
	return domain.Hours(total), nil
}

func (r *SQLiteEffortRepo) DeleteByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) (int64, error) {
	query := `DELETE FROM stakeholder_efforts WHERE cohort_id = ? AND effort_date BETWEEN ? AND ?`
	res, err := r.db.ExecContext(ctx, query, cohortID, formatDate(start), formatDate(end))
	if err != nil {
		return 0, fmt.Errorf("deleting efforts in range: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *SQLiteEffortRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stakeholder_efforts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting effort record: %w", err)
	}
	return nil
}

func (r *SQLiteEffortRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.EffortRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var efforts []*domain.EffortRecord
	for rows.Next() {
		e, err := scanEffort(rows)
		if err != nil {
			return nil, err
		}
		efforts = append(efforts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating efforts: %w", err)
	}
	return efforts, nil
}

func scanEffort(s scanner) (*domain.EffortRecord, error) {
	var e domain.EffortRecord
	var role, mode, effortDate, createdAt, updatedAt string
	var hours int64
	var updatedBy sql.NullString

	err := s.Scan(
		&e.ID, &e.CohortID, &e.StakeholderID, &role, &mode, &e.AreaOfWork, &hours,
		&effortDate, &e.Month, &updatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning effort record: %w", err)
	}

	e.Role = domain.Role(role)
	e.Mode = domain.Mode(mode)
	e.Hours = domain.Hours(hours)
	e.UpdatedBy = updatedBy.String

	if e.EffortDate, err = parseDate("effort_date", effortDate); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
