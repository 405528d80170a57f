package notify

import (
	"context"
	"io"
	"log/slog"

	"github.com/alexanderramin/effortlog/internal/domain"
)

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes one structured line per notification.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		return Noop{}
	}
	return &logNotifier{logger: logger}
}

// NewTextLogNotifier is NewLogNotifier over a slog text handler on w.
func NewTextLogNotifier(w io.Writer) Notifier {
	if w == nil {
		return Noop{}
	}
	return NewLogNotifier(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func (n *logNotifier) EffortSubmitted(ctx context.Context, cohort *domain.Cohort, record *domain.EffortRecord) {
	n.logger.InfoContext(ctx, "effort_submitted",
		"cohort", cohortLabel(cohort),
		"effort_id", record.ID,
		"stakeholder_id", record.StakeholderID,
		"role", string(record.Role),
		"date", record.EffortDate.Format(domain.DateLayout),
		"hours", record.Hours.String(),
	)
}

func (n *logNotifier) WeeklySummaryUpdated(ctx context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary) {
	n.logger.InfoContext(ctx, "weekly_summary_updated",
		"cohort", cohortLabel(cohort),
		"week_start", summary.WeekStart.Format(domain.DateLayout),
		"week_end", summary.WeekEnd.Format(domain.DateLayout),
		"total_hours", summary.TotalHours.String(),
	)
}

func cohortLabel(c *domain.Cohort) string {
	if c == nil {
		return ""
	}
	return domain.CoalesceStr(c.Code, c.ID)
}
