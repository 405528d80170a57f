package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// ErrInvalidInput marks requests rejected before any store access.
var ErrInvalidInput = errors.New("invalid input")

// EffortService records stakeholder effort and keeps weekly summaries in step
// with it. Every write runs in a single transaction and notifies only after
// the transaction commits.
type EffortService interface {
	SubmitEffort(ctx context.Context, record *domain.EffortRecord, audit domain.AuditContext) (*domain.EffortRecord, error)
	SubmitWeek(ctx context.Context, submission domain.WeeklySubmission, audit domain.AuditContext) (*domain.WeeklySummary, error)
	RecomputeWeek(ctx context.Context, cohortID string, date time.Time) (*domain.WeeklySummary, error)

	ListByCohort(ctx context.Context, cohortID string) ([]*domain.EffortRecord, error)
	ListByCohortAndRange(ctx context.Context, cohortID string, start, end time.Time) ([]*domain.EffortRecord, error)
	ListByStakeholder(ctx context.Context, stakeholderID string) ([]*domain.EffortRecord, error)
	GetByID(ctx context.Context, id string) (*domain.EffortRecord, error)
	Delete(ctx context.Context, id string) error

	ListSummaries(ctx context.Context, cohortID string) ([]*domain.WeeklySummary, error)
	GetSummary(ctx context.Context, cohortID string, weekStart time.Time) (*domain.WeeklySummary, error)
}

// DirectoryService administers the users and cohorts that efforts refer to.
type DirectoryService interface {
	CreateUser(ctx context.Context, u *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)

	CreateCohort(ctx context.Context, c *domain.Cohort) error
	// GetCohort accepts either a cohort id or its code.
	GetCohort(ctx context.Context, ref string) (*domain.Cohort, error)
	ListCohorts(ctx context.Context) ([]*domain.Cohort, error)
	AssignStakeholder(ctx context.Context, cohortRef string, role domain.Role, userID string) (*domain.Cohort, error)
}
