package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

type countingNotifier struct {
	efforts, summaries int
}

func (c *countingNotifier) EffortSubmitted(context.Context, *domain.Cohort, *domain.EffortRecord) {
	c.efforts++
}

func (c *countingNotifier) WeeklySummaryUpdated(context.Context, *domain.Cohort, *domain.WeeklySummary) {
	c.summaries++
}

func sampleCohort() *domain.Cohort {
	return &domain.Cohort{ID: "c-1", Code: "JAVA-01"}
}

func sampleRecord() *domain.EffortRecord {
	return &domain.EffortRecord{
		ID:            "e-1",
		CohortID:      "c-1",
		StakeholderID: "u-1",
		Role:          domain.RoleTrainer,
		Mode:          domain.ModeInPerson,
		AreaOfWork:    "Spring basics",
		Hours:         400,
		EffortDate:    time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		Month:         "JUNE",
	}
}

func sampleSummary() *domain.WeeklySummary {
	return &domain.WeeklySummary{
		CohortID:   "c-1",
		WeekStart:  time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		WeekEnd:    time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC),
		TotalHours: 700,
	}
}

func TestLogNotifier_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	n := NewTextLogNotifier(&buf)
	ctx := context.Background()

	n.EffortSubmitted(ctx, sampleCohort(), sampleRecord())
	n.WeeklySummaryUpdated(ctx, sampleCohort(), sampleSummary())

	out := buf.String()
	assert.Contains(t, out, "msg=effort_submitted")
	assert.Contains(t, out, "cohort=JAVA-01")
	assert.Contains(t, out, "hours=4.00")
	assert.Contains(t, out, "msg=weekly_summary_updated")
	assert.Contains(t, out, "total_hours=7.00")
	assert.Contains(t, out, "week_start=2025-06-16")
}

func TestNewTextLogNotifier_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, Noop{}, NewTextLogNotifier(nil))
}

func TestEmailNotifier_ComposesMessages(t *testing.T) {
	sender := &fakeSender{}
	n := NewEmailNotifier(sender, "effort@academy.test", []string{"lead@academy.test"}, nil)
	ctx := context.Background()

	n.EffortSubmitted(ctx, sampleCohort(), sampleRecord())
	n.WeeklySummaryUpdated(ctx, sampleCohort(), sampleSummary())

	require.Len(t, sender.sent, 2)

	effort := sender.sent[0]
	assert.Equal(t, "effort@academy.test", effort.From)
	assert.Equal(t, []string{"lead@academy.test"}, effort.To)
	assert.Equal(t, "Effort logged: JAVA-01 2025-06-16 TRAINER", effort.Subject)
	assert.Contains(t, effort.Body, "Hours:        4.00")
	assert.Contains(t, effort.Body, "Spring basics")

	summary := sender.sent[1]
	assert.Equal(t, "Weekly effort summary: JAVA-01 week of 2025-06-16", summary.Subject)
	assert.Contains(t, summary.Body, "2025-06-16 to 2025-06-22")
	assert.Contains(t, summary.Body, "Total hours: 7.00")
}

func TestEmailNotifier_SendFailureIsLoggedNotRaised(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sender := &fakeSender{err: errors.New("relay refused")}
	n := NewEmailNotifier(sender, "from@x", []string{"to@x"}, logger)

	assert.NotPanics(t, func() {
		n.EffortSubmitted(context.Background(), sampleCohort(), sampleRecord())
	})
	assert.Contains(t, buf.String(), "notification_failed")
	assert.Contains(t, buf.String(), "relay refused")
}

func TestNewEmailNotifier_NoRecipientsIsNoop(t *testing.T) {
	assert.IsType(t, Noop{}, NewEmailNotifier(&fakeSender{}, "from@x", nil, nil))
	assert.IsType(t, Noop{}, NewEmailNotifier(nil, "from@x", []string{"to@x"}, nil))
}

func TestMessage_BytesUsesCRLF(t *testing.T) {
	msg := Message{From: "a@x", To: []string{"b@x", "c@x"}, Subject: "Hi", Body: "line1\nline2"}
	raw := string(msg.Bytes())

	assert.True(t, strings.HasPrefix(raw, "From: a@x\r\nTo: b@x, c@x\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nline1\r\nline2"))
}

func TestMulti_FansOutAndSkipsNil(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	m := Multi{a, nil, b}
	ctx := context.Background()

	m.EffortSubmitted(ctx, sampleCohort(), sampleRecord())
	m.WeeklySummaryUpdated(ctx, sampleCohort(), sampleSummary())
	m.WeeklySummaryUpdated(ctx, sampleCohort(), sampleSummary())

	assert.Equal(t, 1, a.efforts)
	assert.Equal(t, 2, a.summaries)
	assert.Equal(t, 1, b.efforts)
	assert.Equal(t, 2, b.summaries)
}

func TestOrNoop(t *testing.T) {
	assert.IsType(t, Noop{}, OrNoop(nil))
	c := &countingNotifier{}
	assert.Same(t, c, OrNoop(c))
}
