package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleTrainer     Role = "TRAINER"
	RoleMentor      Role = "MENTOR"
	RoleBuddyMentor Role = "BUDDY_MENTOR"
)

// Roles lists every stakeholder role in submission order.
var Roles = []Role{RoleTrainer, RoleMentor, RoleBuddyMentor}

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"TRAINER": true, "MENTOR": true, "BUDDY_MENTOR": true,
}

type Mode string

const (
	ModeInPerson Mode = "IN_PERSON"
	ModeVirtual  Mode = "VIRTUAL"
)

// ValidModes is the canonical set of accepted mode strings.
var ValidModes = map[string]bool{
	"IN_PERSON": true, "VIRTUAL": true,
}

// DefaultAreaOfWork is recorded when an effort, logged singly or in a weekly
// submission, carries no notes.
const DefaultAreaOfWork = "Daily effort logging"

// ParseRole accepts a role in any case, with '-' or ' ' standing in for '_'.
func ParseRole(s string) (Role, error) {
	r := Role(normalizeEnum(s))
	if !ValidRoles[string(r)] {
		return "", fmt.Errorf("unknown role %q (want trainer, mentor or buddy-mentor)", s)
	}
	return r, nil
}

// ParseMode accepts a mode in any case, with '-' or ' ' standing in for '_'.
func ParseMode(s string) (Mode, error) {
	m := Mode(normalizeEnum(s))
	if !ValidModes[string(m)] {
		return "", fmt.Errorf("unknown mode %q (want in-person or virtual)", s)
	}
	return m, nil
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
