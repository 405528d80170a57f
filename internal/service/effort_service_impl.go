package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/alexanderramin/effortlog/internal/notify"
	"github.com/alexanderramin/effortlog/internal/repository"
	"github.com/google/uuid"
)

type effortService struct {
	efforts   repository.EffortRepo
	summaries repository.SummaryRepo
	uow       db.UnitOfWork
	notifier  notify.Notifier
	now       func() time.Time
	locks     *keyedMutex
	observer  UseCaseObserver
}

// NewEffortService wires the effort use cases. now is the wall clock used for
// audit stamps and the Friday summary check; nil means time.Now.
func NewEffortService(
	efforts repository.EffortRepo,
	summaries repository.SummaryRepo,
	uow db.UnitOfWork,
	notifier notify.Notifier,
	now func() time.Time,
	observers ...UseCaseObserver,
) EffortService {
	if now == nil {
		now = time.Now
	}
	return &effortService{
		efforts:   efforts,
		summaries: summaries,
		uow:       uow,
		notifier:  notify.OrNoop(notifier),
		now:       now,
		locks:     newKeyedMutex(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// txRepos groups the repositories bound to one transaction.
type txRepos struct {
	users     repository.UserRepo
	cohorts   repository.CohortRepo
	efforts   repository.EffortRepo
	summaries repository.SummaryRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		users:     repository.NewSQLiteUserRepo(tx),
		cohorts:   repository.NewSQLiteCohortRepo(tx),
		efforts:   repository.NewSQLiteEffortRepo(tx),
		summaries: repository.NewSQLiteSummaryRepo(tx),
	}
}

func (s *effortService) SubmitEffort(ctx context.Context, record *domain.EffortRecord, audit domain.AuditContext) (saved *domain.EffortRecord, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "effort.submit", startedAt, err, fields)
	}()

	if err := validateRecord(record); err != nil {
		return nil, err
	}
	// The caller's record is never modified; the stamped copy is returned.
	rec := *record
	record = &rec
	if record.Mode == "" {
		record.Mode = domain.ModeInPerson
	}
	fields["cohort_id"] = record.CohortID
	fields["role"] = string(record.Role)
	fields["hours"] = record.Hours.String()

	unlock := s.locks.Lock(record.CohortID)
	defer unlock()

	now := s.now()
	var cohort *domain.Cohort
	var summary *domain.WeeklySummary

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)

		c, err := repos.cohorts.GetByID(ctx, record.CohortID)
		if err != nil {
			return err
		}
		if err := requireUser(ctx, repos.users, "stakeholder", record.StakeholderID); err != nil {
			return err
		}
		if err := requireUser(ctx, repos.users, "acting user", audit.UserID); err != nil {
			return err
		}

		if record.ID == "" {
			record.ID = uuid.New().String()
		}
		record.AreaOfWork = domain.CoalesceStr(record.AreaOfWork, domain.DefaultAreaOfWork)
		record.Stamp(audit, now)
		if err := repos.efforts.Create(ctx, record); err != nil {
			return err
		}

		sum, err := s.recompute(ctx, repos, c.ID, record.EffortDate, now)
		if err != nil {
			return err
		}
		cohort, summary = c, sum
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.EffortSubmitted(ctx, cohort, record)
	s.notifySummary(ctx, cohort, summary, now)
	fields["id"] = record.ID
	return record, nil
}

func (s *effortService) SubmitWeek(ctx context.Context, submission domain.WeeklySubmission, audit domain.AuditContext) (summary *domain.WeeklySummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"cohort_id": submission.CohortID,
		"days":      len(submission.DayLogs),
	}
	if submission.Location != "" {
		fields["location"] = submission.Location
	}
	defer func() {
		observe(ctx, s.observer, "effort.submit_week", startedAt, err, fields)
	}()

	if submission.CohortID == "" {
		return nil, fmt.Errorf("cohort id is required: %w", ErrInvalidInput)
	}
	if submission.WeekStart.IsZero() || submission.WeekEnd.IsZero() {
		return nil, fmt.Errorf("week start and end are required: %w", ErrInvalidInput)
	}
	weekStart := domain.DateOf(submission.WeekStart)
	weekEnd := domain.DateOf(submission.WeekEnd)
	if weekEnd.Before(weekStart) {
		return nil, fmt.Errorf("week end %s is before week start %s: %w",
			weekEnd.Format(domain.DateLayout), weekStart.Format(domain.DateLayout), ErrInvalidInput)
	}
	fields["week_start"] = weekStart.Format(domain.DateLayout)

	unlock := s.locks.Lock(submission.CohortID)
	defer unlock()

	now := s.now()
	var cohort *domain.Cohort
	var written int

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)

		c, err := repos.cohorts.GetByID(ctx, submission.CohortID)
		if err != nil {
			return err
		}
		if err := requireUser(ctx, repos.users, "acting user", audit.UserID); err != nil {
			return err
		}

		removed, err := repos.efforts.DeleteByCohortAndDateRange(ctx, c.ID, weekStart, weekEnd)
		if err != nil {
			return err
		}
		fields["replaced"] = removed

		for _, day := range submission.DayLogs {
			if day.Holiday {
				continue
			}
			for _, role := range domain.Roles {
				entry := day.Entry(role)
				if !entry.Loggable() {
					continue
				}
				stakeholderID, ok := c.StakeholderFor(role)
				if !ok {
					continue
				}
				record := &domain.EffortRecord{
					ID:            uuid.New().String(),
					CohortID:      c.ID,
					StakeholderID: stakeholderID,
					Role:          role,
					Mode:          domain.ModeInPerson,
					AreaOfWork:    domain.CoalesceStr(entry.Notes, domain.DefaultAreaOfWork),
					Hours:         *entry.Hours,
					EffortDate:    day.Date,
				}
				record.Stamp(audit, now)
				if err := repos.efforts.Create(ctx, record); err != nil {
					return err
				}
				written++
			}
		}

		sum, err := s.recompute(ctx, repos, c.ID, weekStart, now)
		if err != nil {
			return err
		}
		cohort, summary = c, sum
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["written"] = written
	fields["total_hours"] = summary.TotalHours.String()
	s.notifySummary(ctx, cohort, summary, now)
	return summary, nil
}

func (s *effortService) RecomputeWeek(ctx context.Context, cohortID string, date time.Time) (summary *domain.WeeklySummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"cohort_id": cohortID}
	defer func() {
		observe(ctx, s.observer, "summary.recompute", startedAt, err, fields)
	}()

	if date.IsZero() {
		return nil, fmt.Errorf("date is required: %w", ErrInvalidInput)
	}

	unlock := s.locks.Lock(cohortID)
	defer unlock()

	now := s.now()
	var cohort *domain.Cohort

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)
		c, err := repos.cohorts.GetByID(ctx, cohortID)
		if err != nil {
			return err
		}
		sum, err := s.recompute(ctx, repos, c.ID, date, now)
		if err != nil {
			return err
		}
		cohort, summary = c, sum
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["week_start"] = summary.WeekStart.Format(domain.DateLayout)
	fields["total_hours"] = summary.TotalHours.String()
	s.notifySummary(ctx, cohort, summary, now)
	return summary, nil
}

func (s *effortService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() {
		observe(ctx, s.observer, "effort.delete", startedAt, err, fields)
	}()

	existing, err := s.efforts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fields["cohort_id"] = existing.CohortID

	unlock := s.locks.Lock(existing.CohortID)
	defer unlock()

	now := s.now()
	var cohort *domain.Cohort
	var summary *domain.WeeklySummary

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := newTxRepos(tx)

		// Re-read under the lock; another writer may have replaced the week.
		record, err := repos.efforts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		c, err := repos.cohorts.GetByID(ctx, record.CohortID)
		if err != nil {
			return err
		}
		if err := repos.efforts.Delete(ctx, id); err != nil {
			return err
		}
		sum, err := s.recompute(ctx, repos, c.ID, record.EffortDate, now)
		if err != nil {
			return err
		}
		cohort, summary = c, sum
		return nil
	})
	if err != nil {
		return err
	}

	s.notifySummary(ctx, cohort, summary, now)
	return nil
}

func (s *effortService) ListByCohort(ctx context.Context, cohortID string) ([]*domain.EffortRecord, error) {
	return s.efforts.ListByCohort(ctx, cohortID)
}

func (s *effortService) ListByCohortAndRange(ctx context.Context, cohortID string, start, end time.Time) ([]*domain.EffortRecord, error) {
	return s.efforts.ListByCohortAndDateRange(ctx, cohortID, domain.DateOf(start), domain.DateOf(end))
}

func (s *effortService) ListByStakeholder(ctx context.Context, stakeholderID string) ([]*domain.EffortRecord, error) {
	return s.efforts.ListByStakeholder(ctx, stakeholderID)
}

func (s *effortService) GetByID(ctx context.Context, id string) (*domain.EffortRecord, error) {
	return s.efforts.GetByID(ctx, id)
}

func (s *effortService) ListSummaries(ctx context.Context, cohortID string) ([]*domain.WeeklySummary, error) {
	return s.summaries.ListByCohort(ctx, cohortID)
}

func (s *effortService) GetSummary(ctx context.Context, cohortID string, weekStart time.Time) (*domain.WeeklySummary, error) {
	return s.summaries.GetByCohortAndWeekStart(ctx, cohortID, domain.DateOf(weekStart))
}

// recompute sums the cohort's hours over the Monday-Sunday week containing
// date and stores the total. It never patches the previous total.
func (s *effortService) recompute(ctx context.Context, repos txRepos, cohortID string, date, now time.Time) (*domain.WeeklySummary, error) {
	weekStart, weekEnd := domain.WeekOf(date)
	total, err := repos.efforts.SumHoursByCohortAndDateRange(ctx, cohortID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	return repos.summaries.Upsert(ctx, &domain.WeeklySummary{
		ID:          uuid.New().String(),
		CohortID:    cohortID,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		TotalHours:  total,
		SummaryDate: now,
		CreatedAt:   now,
	})
}

// notifySummary sends the weekly summary only when the service clock reads Friday.
func (s *effortService) notifySummary(ctx context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary, now time.Time) {
	if now.Weekday() != time.Friday {
		return
	}
	s.notifier.WeeklySummaryUpdated(ctx, cohort, summary)
}

func validateRecord(record *domain.EffortRecord) error {
	if record == nil {
		return fmt.Errorf("effort record is required: %w", ErrInvalidInput)
	}
	if record.CohortID == "" || record.StakeholderID == "" {
		return fmt.Errorf("cohort and stakeholder are required: %w", ErrInvalidInput)
	}
	if !domain.ValidRoles[string(record.Role)] {
		return fmt.Errorf("unknown role %q: %w", record.Role, ErrInvalidInput)
	}
	if record.Mode != "" && !domain.ValidModes[string(record.Mode)] {
		return fmt.Errorf("unknown mode %q: %w", record.Mode, ErrInvalidInput)
	}
	if record.Hours < 0 {
		return fmt.Errorf("hours must not be negative: %w", ErrInvalidInput)
	}
	if record.EffortDate.IsZero() {
		return fmt.Errorf("effort date is required: %w", ErrInvalidInput)
	}
	return nil
}

func requireUser(ctx context.Context, users repository.UserRepo, what, id string) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", what, id, repository.ErrNotFound)
	}
	return nil
}
