package domain

import "time"

// WeeklySubmission is a week of per-day effort entries for one cohort.
// It only drives record writes; it is never stored.
type WeeklySubmission struct {
	CohortID  string
	WeekStart time.Time
	WeekEnd   time.Time
	DayLogs   []DayLog
	Location  string
}

type DayLog struct {
	Date        time.Time
	Holiday     bool
	Trainer     *EffortDetail
	Mentor      *EffortDetail
	BuddyMentor *EffortDetail
}

type EffortDetail struct {
	Hours *Hours
	Notes string
}

// Loggable reports whether the entry should produce an effort record.
func (d *EffortDetail) Loggable() bool {
	return d != nil && d.Hours != nil && d.Hours.IsPositive()
}

// Entry returns the detail recorded for role on this day.
func (l DayLog) Entry(role Role) *EffortDetail {
	switch role {
	case RoleTrainer:
		return l.Trainer
	case RoleMentor:
		return l.Mentor
	case RoleBuddyMentor:
		return l.BuddyMentor
	}
	return nil
}
