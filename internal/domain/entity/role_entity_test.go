package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("viewer").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_CloneDoesNotShareLastLogin(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &User{ID: "u1", LastLoginAt: &ts}

	c := u.Clone()
	*c.LastLoginAt = ts.Add(time.Hour)

	assert.Equal(t, ts, *u.LastLoginAt)
	assert.Nil(t, (*User)(nil).Clone())
}

func TestUserPatch_Apply(t *testing.T) {
	name := "New Name"
	done := true
	u := &User{Name: "Old", Company: "Acme"}

	UserPatch{Name: &name, OnboardingCompleted: &done}.Apply(u)

	assert.Equal(t, "New Name", u.Name)
	assert.Equal(t, "Acme", u.Company)
	assert.True(t, u.OnboardingCompleted)
}
