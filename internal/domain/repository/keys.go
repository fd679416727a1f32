package repository

import "strings"

// NormalizeEmail is the canonical form used in every email-keyed storage key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OnboardingCompletedKey is the permanent per-email completion flag.
func OnboardingCompletedKey(email string) string {
	return "onboarding_completed:" + NormalizeEmail(email)
}

// OnboardingProgressKey holds the in-flight wizard blob of one email.
func OnboardingProgressKey(email string) string {
	return "onboarding_progress:" + NormalizeEmail(email)
}
