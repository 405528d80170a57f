package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Monday is the Monday used as the anchor week across tests.
var Monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

// Day returns Monday shifted by offset days.
func Day(offset int) time.Time {
	return Monday.AddDate(0, 0, offset)
}

// HoursPtr is a shorthand for submission entries.
func HoursPtr(h float64) *domain.Hours {
	v := domain.HoursFromFloat(h)
	return &v
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func NewTestUser(name string) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("%s@academy.test", name),
		CreatedAt: now(),
	}
}

// Cohort options
type CohortOption func(*domain.Cohort)

func WithTrainer(userID string) CohortOption {
	return func(c *domain.Cohort) {
		c.PrimaryTrainerID = &userID
	}
}

func WithMentor(userID string) CohortOption {
	return func(c *domain.Cohort) {
		c.PrimaryMentorID = &userID
	}
}

func WithBuddyMentor(userID string) CohortOption {
	return func(c *domain.Cohort) {
		c.BuddyMentorID = &userID
	}
}

func WithCode(code string) CohortOption {
	return func(c *domain.Cohort) {
		c.Code = code
	}
}

func NewTestCohort(name string, opts ...CohortOption) *domain.Cohort {
	ts := now()
	c := &domain.Cohort{
		ID:        uuid.New().String(),
		Code:      fmt.Sprintf("COH-%03d", testCodeCounter.Add(1)),
		Name:      name,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Effort options
type EffortOption func(*domain.EffortRecord)

func WithRole(r domain.Role) EffortOption {
	return func(e *domain.EffortRecord) {
		e.Role = r
	}
}

func WithMode(m domain.Mode) EffortOption {
	return func(e *domain.EffortRecord) {
		e.Mode = m
	}
}

func WithDate(d time.Time) EffortOption {
	return func(e *domain.EffortRecord) {
		e.EffortDate = d
		e.Month = domain.MonthLabel(d)
	}
}

func WithAreaOfWork(s string) EffortOption {
	return func(e *domain.EffortRecord) {
		e.AreaOfWork = s
	}
}

func WithUpdatedBy(userID string) EffortOption {
	return func(e *domain.EffortRecord) {
		e.UpdatedBy = userID
	}
}

// NewTestEffort builds an unsaved trainer record dated Monday.
func NewTestEffort(cohortID, stakeholderID string, hours float64, opts ...EffortOption) *domain.EffortRecord {
	ts := now()
	e := &domain.EffortRecord{
		ID:            uuid.New().String(),
		CohortID:      cohortID,
		StakeholderID: stakeholderID,
		Role:          domain.RoleTrainer,
		Mode:          domain.ModeInPerson,
		AreaOfWork:    "Session",
		Hours:         domain.HoursFromFloat(hours),
		EffortDate:    Monday,
		Month:         domain.MonthLabel(Monday),
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
