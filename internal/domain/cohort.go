package domain

import "time"

type Cohort struct {
	ID               string
	Code             string
	Name             string
	PrimaryTrainerID *string
	PrimaryMentorID  *string
	BuddyMentorID    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StakeholderFor returns the user assigned to role, if any.
func (c *Cohort) StakeholderFor(role Role) (string, bool) {
	var id *string
	switch role {
	case RoleTrainer:
		id = c.PrimaryTrainerID
	case RoleMentor:
		id = c.PrimaryMentorID
	case RoleBuddyMentor:
		id = c.BuddyMentorID
	}
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// Assign sets the stakeholder for role. An empty userID clears the slot.
func (c *Cohort) Assign(role Role, userID string, now time.Time) {
	var v *string
	if userID != "" {
		v = &userID
	}
	switch role {
	case RoleTrainer:
		c.PrimaryTrainerID = v
	case RoleMentor:
		c.PrimaryMentorID = v
	case RoleBuddyMentor:
		c.BuddyMentorID = v
	}
	c.UpdatedAt = now
}
