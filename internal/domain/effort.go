package domain

import "time"

type EffortRecord struct {
	ID            string
	CohortID      string
	StakeholderID string
	Role          Role
	Mode          Mode
	AreaOfWork    string
	Hours         Hours
	EffortDate    time.Time
	Month         string
	UpdatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AuditContext identifies the user performing a write.
type AuditContext struct {
	UserID string
}

// Stamp records who touched the record and when, and derives the month label.
func (e *EffortRecord) Stamp(audit AuditContext, now time.Time) {
	e.EffortDate = DateOf(e.EffortDate)
	e.Month = MonthLabel(e.EffortDate)
	e.UpdatedBy = audit.UserID
	e.UpdatedAt = now
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
}
