package entity

import (
	"strings"
	"time"
)

// CreatorProfile is the public, searchable view of a creator who finished onboarding.
type CreatorProfile struct {
	ID                 string    `json:"id"`
	DisplayName        string    `json:"displayName"`
	Username           string    `json:"username"`
	Location           string    `json:"location,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	AvatarURL          string    `json:"avatarUrl,omitempty"`
	PrimaryPlatform    string    `json:"primaryPlatform"`
	Handle             string    `json:"handle"`
	FollowerCount      int       `json:"followerCount"`
	Categories         []string  `json:"categories"`
	ContentTypes       []string  `json:"contentTypes,omitempty"`
	Languages          []string  `json:"languages,omitempty"`
	CollaborationTypes []string  `json:"collaborationTypes,omitempty"`
	RateCurrency       string    `json:"rateCurrency,omitempty"`
	RatePerPost        int       `json:"ratePerPost,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewCreatorProfile projects a user and their wizard answers into a profile.
func NewCreatorProfile(u *User, a Answers, now time.Time) CreatorProfile {
	name := strings.TrimSpace(a.Profile.DisplayName)
	if name == "" {
		name = u.Name
	}
	followers := a.Platform.FollowerCount
	if followers == 0 {
		followers = u.FollowerCount
	}
	avatar := a.Profile.AvatarURL
	if avatar == "" {
		avatar = u.AvatarURL
	}
	return CreatorProfile{
		ID:                 u.ID,
		DisplayName:        name,
		Username:           strings.TrimPrefix(strings.TrimSpace(a.Profile.Username), "@"),
		Location:           a.Profile.Location,
		Bio:                a.Profile.Bio,
		AvatarURL:          avatar,
		PrimaryPlatform:    strings.ToLower(a.Platform.PrimaryPlatform),
		Handle:             a.Platform.Handle,
		FollowerCount:      followers,
		Categories:         a.Content.Categories,
		ContentTypes:       a.Content.ContentTypes,
		Languages:          a.Content.Languages,
		CollaborationTypes: a.Collaboration.CollaborationTypes,
		RateCurrency:       a.Monetization.RateCurrency,
		RatePerPost:        a.Monetization.RatePerPost,
		UpdatedAt:          now,
	}
}
