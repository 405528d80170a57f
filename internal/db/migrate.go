package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cohorts (
		id                 TEXT PRIMARY KEY,
		code               TEXT NOT NULL,
		name               TEXT NOT NULL DEFAULT '',
		primary_trainer_id TEXT REFERENCES users(id) ON DELETE SET NULL,
		primary_mentor_id  TEXT REFERENCES users(id) ON DELETE SET NULL,
		buddy_mentor_id    TEXT REFERENCES users(id) ON DELETE SET NULL,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cohorts_code ON cohorts(code)`,
	`CREATE TABLE IF NOT EXISTS stakeholder_efforts (
		id                TEXT PRIMARY KEY,
		cohort_id         TEXT NOT NULL REFERENCES cohorts(id) ON DELETE CASCADE,
		trainer_mentor_id TEXT NOT NULL REFERENCES users(id),
		role              TEXT NOT NULL
		                  CHECK(role IN ('TRAINER','MENTOR','BUDDY_MENTOR')),
		mode              TEXT NOT NULL DEFAULT 'IN_PERSON'
		                  CHECK(mode IN ('IN_PERSON','VIRTUAL')),
		area_of_work      TEXT NOT NULL DEFAULT '',
		effort_hours      INTEGER NOT NULL,
		effort_date       TEXT NOT NULL,
		month             TEXT NOT NULL,
		updated_by        TEXT REFERENCES users(id),
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_efforts_cohort_date ON stakeholder_efforts(cohort_id, effort_date)`,
	`CREATE INDEX IF NOT EXISTS idx_efforts_stakeholder ON stakeholder_efforts(trainer_mentor_id)`,
	`CREATE TABLE IF NOT EXISTS weekly_effort_summary (
		id              TEXT PRIMARY KEY,
		cohort_id       TEXT NOT NULL REFERENCES cohorts(id) ON DELETE CASCADE,
		week_start_date TEXT NOT NULL,
		week_end_date   TEXT NOT NULL,
		total_hours     INTEGER NOT NULL DEFAULT 0,
		summary_date    TEXT,
		created_at      TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_summary_cohort_week ON weekly_effort_summary(cohort_id, week_start_date)`,
}
