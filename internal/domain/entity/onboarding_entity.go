package entity

import (
	"strings"
	"time"
)

// Step indexes the fixed onboarding wizard.
type Step int

const (
	StepProfileBasics Step = iota
	StepPlatformDetails
	StepContentPreferences
	StepCollaborationPreferences
	StepMonetization
	StepFinalConfirmation
)

// StepCount is the number of wizard steps.
const StepCount = 6

// LastStep is the final confirmation step.
const LastStep = StepFinalConfirmation

var stepNames = [StepCount]string{
	"profile-basics",
	"platform-details",
	"content-preferences",
	"collaboration-preferences",
	"monetization",
	"final-confirmation",
}

func (s Step) String() string {
	if s < 0 || int(s) >= StepCount {
		return "unknown"
	}
	return stepNames[s]
}

// Valid reports whether s is inside the wizard.
func (s Step) Valid() bool { return s >= 0 && int(s) < StepCount }

type ProfileBasics struct {
	DisplayName string `json:"displayName,omitempty"`
	Username    string `json:"username,omitempty"`
	Location    string `json:"location,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

type PlatformDetails struct {
	PrimaryPlatform string `json:"primaryPlatform,omitempty"`
	Handle          string `json:"handle,omitempty"`
	FollowerCount   int    `json:"followerCount,omitempty"`
	ProfileURL      string `json:"profileUrl,omitempty"`
}

type ContentPreferences struct {
	Categories   []string `json:"categories,omitempty"`
	ContentTypes []string `json:"contentTypes,omitempty"`
	Languages    []string `json:"languages,omitempty"`
}

type CollaborationPreferences struct {
	CollaborationTypes []string `json:"collaborationTypes,omitempty"`
	PreferredBrands    []string `json:"preferredBrands,omitempty"`
	Availability       string   `json:"availability,omitempty"`
}

type Monetization struct {
	RateCurrency string `json:"rateCurrency,omitempty"`
	RatePerPost  int    `json:"ratePerPost,omitempty"`
	PayoutMethod string `json:"payoutMethod,omitempty"`
}

type Confirmation struct {
	AcceptTerms     bool `json:"acceptTerms,omitempty"`
	MarketingOptIn  bool `json:"marketingOptIn,omitempty"`
	ConfirmAccuracy bool `json:"confirmAccuracy,omitempty"`
}

// Answers holds everything collected by the wizard so far.
type Answers struct {
	Profile       ProfileBasics            `json:"profile"`
	Platform      PlatformDetails          `json:"platform"`
	Content       ContentPreferences       `json:"content"`
	Collaboration CollaborationPreferences `json:"collaboration"`
	Monetization  Monetization             `json:"monetization"`
	Confirmation  Confirmation             `json:"confirmation"`
}

// Progress is the persisted in-flight wizard state for one email.
type Progress struct {
	Email     string    `json:"email"`
	Step      Step      `json:"step"`
	Answers   Answers   `json:"answers"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// StepComplete is the required-field predicate of step s.
func (a Answers) StepComplete(s Step) bool {
	switch s {
	case StepProfileBasics:
		return !blank(a.Profile.DisplayName) && !blank(a.Profile.Username)
	case StepPlatformDetails:
		return !blank(a.Platform.PrimaryPlatform) && !blank(a.Platform.Handle)
	case StepContentPreferences:
		return len(a.Content.Categories) > 0
	case StepCollaborationPreferences:
		return len(a.Collaboration.CollaborationTypes) > 0
	case StepMonetization:
		return a.Monetization.RatePerPost > 0 && !blank(a.Monetization.PayoutMethod)
	case StepFinalConfirmation:
		return a.Confirmation.AcceptTerms && a.Confirmation.ConfirmAccuracy
	}
	return false
}

// MergeStep copies the section belonging to step s from in into a.
// Other sections are left untouched so a step submit never clobbers earlier answers.
func (a *Answers) MergeStep(s Step, in Answers) {
	switch s {
	case StepProfileBasics:
		avatar := a.Profile.AvatarURL
		a.Profile = in.Profile
		if a.Profile.AvatarURL == "" {
			a.Profile.AvatarURL = avatar
		}
	case StepPlatformDetails:
		a.Platform = in.Platform
	case StepContentPreferences:
		a.Content = in.Content
	case StepCollaborationPreferences:
		a.Collaboration = in.Collaboration
	case StepMonetization:
		a.Monetization = in.Monetization
	case StepFinalConfirmation:
		a.Confirmation = in.Confirmation
	}
}
