package entity

import (
	"time"
)

// User is the identity held by a client session.
// Role-specific display fields (Company, FollowerCount, Niche) carry no behaviour.
type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	OnboardingCompleted bool       `json:"onboardingCompleted"`
	EmailVerified       bool       `json:"emailVerified"`
	AvatarURL           string     `json:"avatarUrl,omitempty"`
	Company             string     `json:"company,omitempty"`
	FollowerCount       int        `json:"followerCount,omitempty"`
	Niche               string     `json:"niche,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
}

// Clone returns a deep copy so callers never share the LastLoginAt pointer.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

// UserPatch carries the fields UpdateUser may merge. Nil means untouched.
type UserPatch struct {
	Name                *string `json:"name"`
	AvatarURL           *string `json:"avatarUrl"`
	Company             *string `json:"company"`
	FollowerCount       *int    `json:"followerCount"`
	Niche               *string `json:"niche"`
	OnboardingCompleted *bool   `json:"onboardingCompleted"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.FollowerCount != nil {
		u.FollowerCount = *p.FollowerCount
	}
	if p.Niche != nil {
		u.Niche = *p.Niche
	}
	if p.OnboardingCompleted != nil {
		u.OnboardingCompleted = *p.OnboardingCompleted
	}
}

// Account is a directory record: a user plus its password hash.
type Account struct {
	User         User
	PasswordHash string
}

// PendingRegistration is an unverified signup waiting for its OTP.
type PendingRegistration struct {
	User         User      `json:"user"`
	PasswordHash string    `json:"passwordHash"`
	Code         string    `json:"code,omitempty"`
	RequestedAt  time.Time `json:"requestedAt"`
}
