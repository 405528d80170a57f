package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/alexanderramin/effortlog/internal/repository"
	"github.com/google/uuid"
)

type directoryService struct {
	users    repository.UserRepo
	cohorts  repository.CohortRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDirectoryService(
	users repository.UserRepo,
	cohorts repository.CohortRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) DirectoryService {
	return &directoryService{
		users:    users,
		cohorts:  cohorts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *directoryService) CreateUser(ctx context.Context, u *domain.User) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "user.create", startedAt, err, map[string]any{"name": u.Name})
	}()

	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return fmt.Errorf("user name is required: %w", ErrInvalidInput)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.users.Create(ctx, u)
}

func (s *directoryService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *directoryService) CreateCohort(ctx context.Context, c *domain.Cohort) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "cohort.create", startedAt, err, map[string]any{"code": c.Code})
	}()

	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if c.Code == "" {
		return fmt.Errorf("cohort code is required: %w", ErrInvalidInput)
	}
	c.Name = domain.CoalesceStr(c.Name, c.Code)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		for _, role := range domain.Roles {
			if id, ok := c.StakeholderFor(role); ok {
				if err := requireUser(ctx, txUsers, strings.ToLower(string(role)), id); err != nil {
					return err
				}
			}
		}
		return repository.NewSQLiteCohortRepo(tx).Create(ctx, c)
	})
}

func (s *directoryService) GetCohort(ctx context.Context, ref string) (*domain.Cohort, error) {
	return resolveCohort(ctx, s.cohorts, ref)
}

func (s *directoryService) ListCohorts(ctx context.Context) ([]*domain.Cohort, error) {
	return s.cohorts.List(ctx)
}

func (s *directoryService) AssignStakeholder(ctx context.Context, cohortRef string, role domain.Role, userID string) (cohort *domain.Cohort, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "cohort.assign", startedAt, err, map[string]any{
			"cohort": cohortRef,
			"role":   string(role),
		})
	}()

	if !domain.ValidRoles[string(role)] {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCohorts := repository.NewSQLiteCohortRepo(tx)
		c, err := resolveCohort(ctx, txCohorts, cohortRef)
		if err != nil {
			return err
		}
		if userID != "" {
			if err := requireUser(ctx, repository.NewSQLiteUserRepo(tx), "user", userID); err != nil {
				return err
			}
		}
		c.Assign(role, userID, time.Now().UTC())
		if err := txCohorts.Update(ctx, c); err != nil {
			return err
		}
		cohort = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cohort, nil
}

// resolveCohort looks ref up as an id first, then as a code.
func resolveCohort(ctx context.Context, cohorts repository.CohortRepo, ref string) (*domain.Cohort, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("cohort reference is required: %w", ErrInvalidInput)
	}
	c, err := cohorts.GetByID(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return cohorts.GetByCode(ctx, strings.ToUpper(ref))
}
