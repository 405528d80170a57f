package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// ErrNotFound is wrapped by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type CohortRepo interface {
	Create(ctx context.Context, c *domain.Cohort) error
	GetByID(ctx context.Context, id string) (*domain.Cohort, error)
	GetByCode(ctx context.Context, code string) (*domain.Cohort, error)
	List(ctx context.Context) ([]*domain.Cohort, error)
	Update(ctx context.Context, c *domain.Cohort) error
}

type EffortRepo interface {
	Create(ctx context.Context, e *domain.EffortRecord) error
	GetByID(ctx context.Context, id string) (*domain.EffortRecord, error)
	ListByCohort(ctx context.Context, cohortID string) ([]*domain.EffortRecord, error)
	ListByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) ([]*domain.EffortRecord, error)
	ListByStakeholder(ctx context.Context, stakeholderID string) ([]*domain.EffortRecord, error)
	SumHoursByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) (domain.Hours, error)
	DeleteByCohortAndDateRange(ctx context.Context, cohortID string, start, end time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

type SummaryRepo interface {
	// Upsert inserts or replaces the total for (cohort, week start) and
	// returns the stored row.
	Upsert(ctx context.Context, s *domain.WeeklySummary) (*domain.WeeklySummary, error)
	GetByCohortAndWeekStart(ctx context.Context, cohortID string, weekStart time.Time) (*domain.WeeklySummary, error)
	ListByCohort(ctx context.Context, cohortID string) ([]*domain.WeeklySummary, error)
}
