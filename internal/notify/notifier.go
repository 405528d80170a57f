// Package notify delivers effort and weekly-summary notifications.
//
// Notifiers are fire-and-forget: they never return an error to the caller.
// Delivery failures are logged by the implementation and dropped.
package notify

import (
	"context"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// Notifier is told about successful writes after they commit.
type Notifier interface {
	EffortSubmitted(ctx context.Context, cohort *domain.Cohort, record *domain.EffortRecord)
	WeeklySummaryUpdated(ctx context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary)
}

// Noop discards every notification.
type Noop struct{}

func (Noop) EffortSubmitted(context.Context, *domain.Cohort, *domain.EffortRecord) {}
func (Noop) WeeklySummaryUpdated(context.Context, *domain.Cohort, *domain.WeeklySummary) {}

// Multi fans each notification out to every non-nil notifier in order.
type Multi []Notifier

func (m Multi) EffortSubmitted(ctx context.Context, cohort *domain.Cohort, record *domain.EffortRecord) {
	for _, n := range m {
		if n != nil {
			n.EffortSubmitted(ctx, cohort, record)
		}
	}
}

func (m Multi) WeeklySummaryUpdated(ctx context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary) {
	for _, n := range m {
		if n != nil {
			n.WeeklySummaryUpdated(ctx, cohort, summary)
		}
	}
}

// OrNoop returns n, or Noop when n is nil.
func OrNoop(n Notifier) Notifier {
	if n == nil {
		return Noop{}
	}
	return n
}
