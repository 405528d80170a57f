package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
)

const cohortColumns = `id, code, name, primary_trainer_id, primary_mentor_id, buddy_mentor_id, created_at, updated_at`

// SQLiteCohortRepo implements CohortRepo using a SQLite database.
type SQLiteCohortRepo struct {
	db db.DBTX
}

func NewSQLiteCohortRepo(conn db.DBTX) *SQLiteCohortRepo {
	return &SQLiteCohortRepo{db: conn}
}

func (r *SQLiteCohortRepo) Create(ctx context.Context, c *domain.Cohort) error {
	query := `INSERT INTO cohorts (` + cohortColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Code,
		c.Name,
		nullableString(c.PrimaryTrainerID),
		nullableString(c.PrimaryMentorID),
		nullableString(c.BuddyMentorID),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting cohort: %w", err)
	}
	return nil
}

func (r *SQLiteCohortRepo) GetByID(ctx context.Context, id string) (*domain.Cohort, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cohortColumns+` FROM cohorts WHERE id = ?`, id)
	c, err := scanCohort(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cohort %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCohortRepo) GetByCode(ctx context.Context, code string) (*domain.Cohort, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cohortColumns+` FROM cohorts WHERE code = ?`, code)
	c, err := scanCohort(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cohort %s: %w", code, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCohortRepo) List(ctx context.Context) ([]*domain.Cohort, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+cohortColumns+` FROM cohorts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing cohorts: %w", err)
	}
	defer rows.Close()

	var cohorts []*domain.Cohort
	for rows.Next() {
		c, err := scanCohort(rows)
		if err != nil {
			return nil, err
		}
		cohorts = append(cohorts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cohorts: %w", err)
	}
	return cohorts, nil
}

func (r *SQLiteCohortRepo) Update(ctx context.Context, c *domain.Cohort) error {
	query := `UPDATE cohorts SET code = ?, name = ?, primary_trainer_id = ?, primary_mentor_id = ?,
		buddy_mentor_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Code,
		c.Name,
		nullableString(c.PrimaryTrainerID),
		nullableString(c.PrimaryMentorID),
		nullableString(c.BuddyMentorID),
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cohort: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cohort %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

func scanCohort(s scanner) (*domain.Cohort, error) {
	var c domain.Cohort
	var trainer, mentor, buddy sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&c.ID, &c.Code, &c.Name, &trainer, &mentor, &buddy, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning cohort: %w", err)
	}

	c.PrimaryTrainerID = stringPtr(trainer)
	c.PrimaryMentorID = stringPtr(mentor)
	c.BuddyMentorID = stringPtr(buddy)

	var err error
	if c.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
