package domain

import "time"

// WeeklySummary caches the total hours a cohort logged in one Monday-start week.
// It is always recomputed from effort records, never patched incrementally.
type WeeklySummary struct {
	ID          string
	CohortID    string
	WeekStart   time.Time
	WeekEnd     time.Time
	TotalHours  Hours
	SummaryDate time.Time
	CreatedAt   time.Time
}
