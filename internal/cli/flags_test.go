package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValue(t *testing.T) {
	var d time.Time
	v := newDateValue(&d)
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("2025-06-16"))
	assert.Equal(t, "2025-06-16", v.String())
	assert.Equal(t, time.UTC, d.Location())

	assert.Error(t, v.Set("June 16"))
}

func TestRoleValue(t *testing.T) {
	var r domain.Role
	v := roleValue{r: &r}

	require.NoError(t, v.Set("buddy-mentor"))
	assert.Equal(t, domain.RoleBuddyMentor, r)
	require.NoError(t, v.Set("Trainer"))
	assert.Equal(t, domain.RoleTrainer, r)
	assert.Error(t, v.Set("coach"))
}

func TestModeValue(t *testing.T) {
	m := domain.ModeInPerson
	v := modeValue{m: &m}
	assert.Equal(t, "IN_PERSON", v.String())

	require.NoError(t, v.Set("virtual"))
	assert.Equal(t, domain.ModeVirtual, m)
	assert.Error(t, v.Set("hybrid"))
}

func TestHoursValue(t *testing.T) {
	var h domain.Hours
	v := hoursValue{h: &h}

	require.NoError(t, v.Set("2.25"))
	assert.Equal(t, domain.Hours(225), h)
	assert.Equal(t, "2.25", v.String())
	assert.Error(t, v.Set("soon"))

	require.Error(t, v.Set("1e17"))
	assert.Equal(t, domain.Hours(225), h, "a rejected value leaves the flag unchanged")
}
