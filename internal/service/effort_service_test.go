package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/effortlog/internal/db"
	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/alexanderramin/effortlog/internal/repository"
	"github.com/alexanderramin/effortlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type effortEnv struct {
	db        *sql.DB
	efforts   *repository.SQLiteEffortRepo
	summaries *repository.SQLiteSummaryRepo
	notifier  *testutil.RecordingNotifier
	svc       EffortService
	cohort    *domain.Cohort
	trainer   *domain.User
	mentor    *domain.User
	buddy     *domain.User
	admin     *domain.User
	audit     domain.AuditContext
}

// setupEffortEnv seeds a cohort with a trainer and a mentor assigned. The
// buddy mentor exists as a user but is not assigned to the cohort.
func setupEffortEnv(t *testing.T, clock time.Time) *effortEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	users := repository.NewSQLiteUserRepo(database)
	cohorts := repository.NewSQLiteCohortRepo(database)

	env := &effortEnv{
		db:        database,
		efforts:   repository.NewSQLiteEffortRepo(database),
		summaries: repository.NewSQLiteSummaryRepo(database),
		notifier:  &testutil.RecordingNotifier{},
		trainer:   testutil.NewTestUser("trainer"),
		mentor:    testutil.NewTestUser("mentor"),
		buddy:     testutil.NewTestUser("buddy"),
		admin:     testutil.NewTestUser("admin"),
	}
	for _, u := range []*domain.User{env.trainer, env.mentor, env.buddy, env.admin} {
		require.NoError(t, users.Create(ctx, u))
	}
	env.cohort = testutil.NewTestCohort("Java FSD",
		testutil.WithCode("JAVA-01"),
		testutil.WithTrainer(env.trainer.ID),
		testutil.WithMentor(env.mentor.ID),
	)
	require.NoError(t, cohorts.Create(ctx, env.cohort))

	env.audit = domain.AuditContext{UserID: env.admin.ID}
	env.svc = env.newService(testutil.NewTestUoW(database), clock)
	return env
}

func (e *effortEnv) newService(uow db.UnitOfWork, clock time.Time, observers ...UseCaseObserver) EffortService {
	return NewEffortService(e.efforts, e.summaries, uow, e.notifier, testutil.FixedClock(clock), observers...)
}

func (e *effortEnv) week(days ...domain.DayLog) domain.WeeklySubmission {
	return domain.WeeklySubmission{
		CohortID:  e.cohort.ID,
		WeekStart: testutil.Day(0),
		WeekEnd:   testutil.Day(6),
		DayLogs:   days,
	}
}

func trainerEffort(e *effortEnv, hours float64, date time.Time) *domain.EffortRecord {
	return &domain.EffortRecord{
		CohortID:      e.cohort.ID,
		StakeholderID: e.trainer.ID,
		Role:          domain.RoleTrainer,
		Mode:          domain.ModeVirtual,
		AreaOfWork:    "Spring Boot",
		Hours:         domain.HoursFromFloat(hours),
		EffortDate:    date,
	}
}

func TestSubmitEffort_StampsAndRecomputes(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	saved, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 4, testutil.Day(2)), env.audit)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "JUNE", saved.Month)
	assert.Equal(t, env.admin.ID, saved.UpdatedBy)
	assert.True(t, testutil.Wednesday10AM.Equal(saved.UpdatedAt))
	assert.True(t, testutil.Wednesday10AM.Equal(saved.CreatedAt))

	stored, err := env.svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Hours(400), stored.Hours)
	assert.Equal(t, domain.ModeVirtual, stored.Mode)

	summary, err := env.svc.GetSummary(ctx, env.cohort.ID, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, "4.00", summary.TotalHours.String())
	assert.Equal(t, testutil.Day(6), summary.WeekEnd)

	require.Len(t, env.notifier.Efforts, 1)
	assert.Equal(t, saved.ID, env.notifier.Efforts[0].ID)
	assert.Empty(t, env.notifier.Summaries, "no weekly notification outside Friday")
}

func TestSubmitEffort_DefaultsModeAndNotes(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)

	rec := trainerEffort(env, 2, testutil.Day(1))
	rec.Mode = ""
	rec.AreaOfWork = "  "
	saved, err := env.svc.SubmitEffort(context.Background(), rec, env.audit)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeInPerson, saved.Mode)
	assert.Equal(t, domain.DefaultAreaOfWork, saved.AreaOfWork)
}

func TestSubmitEffort_LeavesInputUntouched(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)

	rec := trainerEffort(env, 2, testutil.Day(1))
	rec.Mode = ""
	rec.AreaOfWork = ""
	saved, err := env.svc.SubmitEffort(context.Background(), rec, env.audit)
	require.NoError(t, err)

	assert.NotSame(t, rec, saved)
	assert.NotEmpty(t, saved.ID)
	assert.Empty(t, rec.ID)
	assert.Empty(t, rec.Mode)
	assert.Empty(t, rec.AreaOfWork)
	assert.Empty(t, rec.Month)
}

func TestSubmitEffort_FridaySendsWeeklySummary(t *testing.T) {
	env := setupEffortEnv(t, testutil.Friday10AM)

	_, err := env.svc.SubmitEffort(context.Background(), trainerEffort(env, 3, testutil.Day(0)), env.audit)
	require.NoError(t, err)

	require.Len(t, env.notifier.Summaries, 1)
	assert.Equal(t, domain.Hours(300), env.notifier.Summaries[0].TotalHours)
	assert.Len(t, env.notifier.Efforts, 1)
}

func TestSubmitEffort_FridayCheckUsesClockNotEffortDate(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)

	// Day(4) is a Friday, but the clock reads Wednesday.
	_, err := env.svc.SubmitEffort(context.Background(), trainerEffort(env, 3, testutil.Day(4)), env.audit)
	require.NoError(t, err)
	assert.Empty(t, env.notifier.Summaries)
}

func TestSubmitEffort_MissingReferences(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.EffortRecord, *domain.AuditContext)
		want   string
	}{
		{"cohort", func(r *domain.EffortRecord, _ *domain.AuditContext) { r.CohortID = "ghost" }, "cohort"},
		{"stakeholder", func(r *domain.EffortRecord, _ *domain.AuditContext) { r.StakeholderID = "ghost" }, "stakeholder"},
		{"acting user", func(_ *domain.EffortRecord, a *domain.AuditContext) { a.UserID = "ghost" }, "acting user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := trainerEffort(env, 1, testutil.Day(0))
			audit := env.audit
			tt.mutate(rec, &audit)

			_, err := env.svc.SubmitEffort(ctx, rec, audit)
			require.Error(t, err)
			assert.ErrorIs(t, err, repository.ErrNotFound)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	all, err := env.svc.ListByCohort(ctx, env.cohort.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, env.notifier.Efforts)
}

func TestSubmitEffort_RejectsInvalidInput(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	badRole := trainerEffort(env, 1, testutil.Day(0))
	badRole.Role = "COACH"
	_, err := env.svc.SubmitEffort(ctx, badRole, env.audit)
	assert.ErrorIs(t, err, ErrInvalidInput)

	negative := trainerEffort(env, -1, testutil.Day(0))
	_, err = env.svc.SubmitEffort(ctx, negative, env.audit)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.svc.SubmitEffort(ctx, nil, env.audit)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitWeek_ResubmissionOverwritesWeek(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	first := env.week(
		domain.DayLog{Date: testutil.Day(0), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(4)}},
		domain.DayLog{Date: testutil.Day(2), Mentor: &domain.EffortDetail{Hours: testutil.HoursPtr(3), Notes: "Code review"}},
	)
	summary, err := env.svc.SubmitWeek(ctx, first, env.audit)
	require.NoError(t, err)
	assert.Equal(t, "7.00", summary.TotalHours.String())
	assert.Equal(t, testutil.Monday, summary.WeekStart)

	second := env.week(
		domain.DayLog{Date: testutil.Day(0), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(5)}},
	)
	summary, err = env.svc.SubmitWeek(ctx, second, env.audit)
	require.NoError(t, err)
	assert.Equal(t, "5.00", summary.TotalHours.String())

	records, err := env.svc.ListByCohortAndRange(ctx, env.cohort.ID, testutil.Day(0), testutil.Day(6))
	require.NoError(t, err)
	require.Len(t, records, 1, "mentor record from the first submission is gone")
	assert.Equal(t, domain.RoleTrainer, records[0].Role)
	assert.Equal(t, env.trainer.ID, records[0].StakeholderID)
	assert.Equal(t, domain.Hours(500), records[0].Hours)

	summaries, err := env.svc.ListSummaries(ctx, env.cohort.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestSubmitWeek_SkipsHolidaysZeroHoursAndUnassignedRoles(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	sub := env.week(
		domain.DayLog{Date: testutil.Day(0), Holiday: true, Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(8)}},
		domain.DayLog{Date: testutil.Day(1), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(0)}},
		domain.DayLog{Date: testutil.Day(2), Mentor: &domain.EffortDetail{Notes: "no hours"}},
		domain.DayLog{Date: testutil.Day(3), BuddyMentor: &domain.EffortDetail{Hours: testutil.HoursPtr(2)}},
		domain.DayLog{Date: testutil.Day(4), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(1.5)}},
	)
	summary, err := env.svc.SubmitWeek(ctx, sub, env.audit)
	require.NoError(t, err)
	assert.Equal(t, "1.50", summary.TotalHours.String())

	records, err := env.svc.ListByCohort(ctx, env.cohort.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, testutil.Day(4), rec.EffortDate)
	assert.Equal(t, domain.ModeInPerson, rec.Mode)
	assert.Equal(t, domain.DefaultAreaOfWork, rec.AreaOfWork)
	assert.Equal(t, env.admin.ID, rec.UpdatedBy)
	assert.Equal(t, "JUNE", rec.Month)
}

func TestSubmitWeek_AttributesToCohortStakeholders(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	sub := env.week(domain.DayLog{
		Date:    testutil.Day(1),
		Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(2), Notes: "Streams"},
		Mentor:  &domain.EffortDetail{Hours: testutil.HoursPtr(1)},
	})
	_, err := env.svc.SubmitWeek(ctx, sub, env.audit)
	require.NoError(t, err)

	byTrainer, err := env.svc.ListByStakeholder(ctx, env.trainer.ID)
	require.NoError(t, err)
	require.Len(t, byTrainer, 1)
	assert.Equal(t, "Streams", byTrainer[0].AreaOfWork)

	byMentor, err := env.svc.ListByStakeholder(ctx, env.mentor.ID)
	require.NoError(t, err)
	require.Len(t, byMentor, 1)
	assert.Equal(t, domain.RoleMentor, byMentor[0].Role)
}

func TestSubmitWeek_EmptySubmissionClearsWeek(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	_, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 6, testutil.Day(3)), env.audit)
	require.NoError(t, err)
	outside, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 2, testutil.Day(7)), env.audit)
	require.NoError(t, err)

	summary, err := env.svc.SubmitWeek(ctx, env.week(), env.audit)
	require.NoError(t, err)
	assert.Equal(t, domain.Hours(0), summary.TotalHours)

	records, err := env.svc.ListByCohort(ctx, env.cohort.ID)
	require.NoError(t, err)
	require.Len(t, records, 1, "records outside the week survive")
	assert.Equal(t, outside.ID, records[0].ID)
}

func TestSubmitWeek_Validation(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	backwards := env.week()
	backwards.WeekStart, backwards.WeekEnd = testutil.Day(6), testutil.Day(0)
	_, err := env.svc.SubmitWeek(ctx, backwards, env.audit)
	assert.ErrorIs(t, err, ErrInvalidInput)

	missingCohort := env.week()
	missingCohort.CohortID = "ghost"
	_, err = env.svc.SubmitWeek(ctx, missingCohort, env.audit)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = env.svc.SubmitWeek(ctx, env.week(), domain.AuditContext{UserID: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitWeek_FridayNotifiesOnce(t *testing.T) {
	env := setupEffortEnv(t, testutil.Friday10AM)

	sub := env.week(
		domain.DayLog{Date: testutil.Day(0), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(4)}},
		domain.DayLog{Date: testutil.Day(1), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(4)}},
	)
	_, err := env.svc.SubmitWeek(context.Background(), sub, env.audit)
	require.NoError(t, err)

	require.Len(t, env.notifier.Summaries, 1)
	assert.Equal(t, domain.Hours(800), env.notifier.Summaries[0].TotalHours)
	assert.Empty(t, env.notifier.Efforts, "bulk submission sends no per-record notice")
}

func TestRecomputeWeek_AnyDateMapsToMondayWindow(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	for _, rec := range []*domain.EffortRecord{
		testutil.NewTestEffort(env.cohort.ID, env.trainer.ID, 2, testutil.WithDate(testutil.Day(0))),
		testutil.NewTestEffort(env.cohort.ID, env.trainer.ID, 2.25, testutil.WithDate(testutil.Day(6))),
		testutil.NewTestEffort(env.cohort.ID, env.trainer.ID, 9, testutil.WithDate(testutil.Day(7))),
	} {
		require.NoError(t, env.efforts.Create(ctx, rec))
	}

	summary, err := env.svc.RecomputeWeek(ctx, env.cohort.ID, testutil.Day(5).Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, testutil.Monday, summary.WeekStart)
	assert.Equal(t, testutil.Day(6), summary.WeekEnd)
	assert.Equal(t, "4.25", summary.TotalHours.String())

	next, err := env.svc.RecomputeWeek(ctx, env.cohort.ID, testutil.Day(7))
	require.NoError(t, err)
	assert.Equal(t, domain.Hours(900), next.TotalHours)

	summaries, err := env.svc.ListSummaries(ctx, env.cohort.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, testutil.Monday, summaries[0].WeekStart)
}

func TestRecomputeWeek_UnknownCohort(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)

	_, err := env.svc.RecomputeWeek(context.Background(), "ghost", testutil.Monday)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_LowersSummaryByRecordHours(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	_, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 4, testutil.Day(0)), env.audit)
	require.NoError(t, err)
	doomed, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 2.5, testutil.Day(3)), env.audit)
	require.NoError(t, err)

	before, err := env.svc.GetSummary(ctx, env.cohort.ID, testutil.Monday)
	require.NoError(t, err)
	require.Equal(t, domain.Hours(650), before.TotalHours)

	require.NoError(t, env.svc.Delete(ctx, doomed.ID))

	after, err := env.svc.GetSummary(ctx, env.cohort.ID, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, before.TotalHours-doomed.Hours, after.TotalHours)
	assert.Equal(t, before.ID, after.ID)

	_, err = env.svc.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)

	err := env.svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummaryQueries_FilterByCohort(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	other := testutil.NewTestCohort("Other", testutil.WithTrainer(env.trainer.ID))
	require.NoError(t, repository.NewSQLiteCohortRepo(env.db).Create(ctx, other))

	_, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 1, testutil.Day(0)), env.audit)
	require.NoError(t, err)
	rec := trainerEffort(env, 2, testutil.Day(0))
	rec.CohortID = other.ID
	_, err = env.svc.SubmitEffort(ctx, rec, env.audit)
	require.NoError(t, err)

	mine, err := env.svc.ListSummaries(ctx, env.cohort.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.Hours(100), mine[0].TotalHours)

	_, err = env.svc.GetSummary(ctx, env.cohort.ID, testutil.Day(7))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitEffort_ConcurrentWritersKeepTotalConsistent(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.svc.SubmitEffort(ctx, trainerEffort(env, 1, testutil.Day(i%7)), env.audit)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	summaries, err := env.svc.ListSummaries(ctx, env.cohort.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1, "one summary row per cohort and week")
	assert.Equal(t, domain.Hours(writers*100), summaries[0].TotalHours)
}
