package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, formatTimestamp(u.CreatedAt)); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, created_at FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, err
}

func (r *SQLiteUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking user: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, created_at FROM users ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var createdAt string
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	var err error
	if u.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}
