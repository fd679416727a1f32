package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidRole        = errors.New("role cannot sign up")
	ErrInvalidOTP         = errors.New("invalid or expired verification code")
	ErrSessionExpired     = errors.New("session expired")
	ErrNoSession          = errors.New("not signed in")
	ErrUnavailable        = errors.New("service temporarily unavailable")

	ErrStepIncomplete  = errors.New("required fields missing for this step")
	ErrNotOnLastStep   = errors.New("onboarding is not on its final step")
	ErrUploadsDisabled = errors.New("avatar uploads are not configured")
	ErrInvalidAvatar   = errors.New("avatar must be an image")
)
