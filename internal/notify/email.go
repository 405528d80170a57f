package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/alexanderramin/effortlog/internal/domain"
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Bytes renders the message in RFC 5322 form with CRLF line endings.
func (m Message) Bytes() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// Sender transports a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends through a single SMTP relay.
type SMTPSender struct {
	Addr     string // host:port
	Username string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}
	if err := smtp.SendMail(s.Addr, auth, msg.From, msg.To, msg.Bytes()); err != nil {
		return fmt.Errorf("sending mail via %s: %w", s.Addr, err)
	}
	return nil
}

type emailNotifier struct {
	sender Sender
	from   string
	to     []string
	logger *slog.Logger
}

// NewEmailNotifier mails every notification to the given recipients.
// Send failures are logged on logger and otherwise ignored.
func NewEmailNotifier(sender Sender, from string, to []string, logger *slog.Logger) Notifier {
	if sender == nil || len(to) == 0 {
		return Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &emailNotifier{sender: sender, from: from, to: to, logger: logger}
}

func (n *emailNotifier) EffortSubmitted(ctx context.Context, cohort *domain.Cohort, record *domain.EffortRecord) {
	date := record.EffortDate.Format(domain.DateLayout)
	var body strings.Builder
	fmt.Fprintf(&body, "A daily effort was logged for cohort %s.\n\n", cohortLabel(cohort))
	fmt.Fprintf(&body, "Date:         %s (%s)\n", date, record.Month)
	fmt.Fprintf(&body, "Role:         %s\n", record.Role)
	fmt.Fprintf(&body, "Stakeholder:  %s\n", record.StakeholderID)
	fmt.Fprintf(&body, "Mode:         %s\n", record.Mode)
	fmt.Fprintf(&body, "Hours:        %s\n", record.Hours)
	fmt.Fprintf(&body, "Area of work: %s\n", record.AreaOfWork)

	n.send(ctx, "effort_submitted", Message{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Effort logged: %s %s %s", cohortLabel(cohort), date, record.Role),
		Body:    body.String(),
	})
}

func (n *emailNotifier) WeeklySummaryUpdated(ctx context.Context, cohort *domain.Cohort, summary *domain.WeeklySummary) {
	start := summary.WeekStart.Format(domain.DateLayout)
	end := summary.WeekEnd.Format(domain.DateLayout)
	var body strings.Builder
	fmt.Fprintf(&body, "Weekly effort summary for cohort %s.\n\n", cohortLabel(cohort))
	fmt.Fprintf(&body, "Week:        %s to %s\n", start, end)
	fmt.Fprintf(&body, "Total hours: %s\n", summary.TotalHours)

	n.send(ctx, "weekly_summary", Message{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Weekly effort summary: %s week of %s", cohortLabel(cohort), start),
		Body:    body.String(),
	})
}

func (n *emailNotifier) send(ctx context.Context, kind string, msg Message) {
	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.WarnContext(ctx, "notification_failed", "kind", kind, "error", err.Error())
	}
}
