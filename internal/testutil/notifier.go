package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu        sync.Mutex
	Efforts   []domain.EffortRecord
	Summaries []domain.WeeklySummary
}

func (r *RecordingNotifier) EffortSubmitted(_ context.Context, _ *domain.Cohort, record *domain.EffortRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Efforts = append(r.Efforts, *record)
}

func (r *RecordingNotifier) WeeklySummaryUpdated(_ context.Context, _ *domain.Cohort, summary *domain.WeeklySummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summaries = append(r.Summaries, *summary)
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// A Wednesday and a Friday in the anchor week, mid-morning.
var (
	Wednesday10AM = time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	Friday10AM    = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
)
