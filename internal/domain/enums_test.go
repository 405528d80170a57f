package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"trainer", RoleTrainer},
		{"MENTOR", RoleMentor},
		{"buddy-mentor", RoleBuddyMentor},
		{" Buddy Mentor ", RoleBuddyMentor},
		{"BUDDY_MENTOR", RoleBuddyMentor},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRole("coach")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("in-person")
	require.NoError(t, err)
	assert.Equal(t, ModeInPerson, m)

	m, err = ParseMode("virtual")
	require.NoError(t, err)
	assert.Equal(t, ModeVirtual, m)

	_, err = ParseMode("hybrid")
	assert.Error(t, err)
}
