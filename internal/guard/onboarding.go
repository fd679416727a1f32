package guard

import (
	"context"
	"errors"

	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/internal/session"
)

// OnboardingStatus answers whether the session's user finished onboarding.
// The session flag and the per-email flag can disagree; callers pick one.
type OnboardingStatus interface {
	Name() string
	Completed(ctx context.Context, sess session.Session) (bool, error)
}

// SessionOnboarding reads the flag cached on the session user.
type SessionOnboarding struct{}

func (SessionOnboarding) Name() string { return "session" }

func (SessionOnboarding) Completed(_ context.Context, sess session.Session) (bool, error) {
	return sess.User != nil && sess.User.OnboardingCompleted, nil
}

// FlagOnboarding reads the permanent onboarding_completed:<email> flag.
type FlagOnboarding struct {
	Storage repository.Storage
}

func (FlagOnboarding) Name() string { return "flag" }

func (f FlagOnboarding) Completed(ctx context.Context, sess session.Session) (bool, error) {
	if sess.User == nil {
		return false, nil
	}
	v, err := f.Storage.Get(ctx, repository.OnboardingCompletedKey(sess.User.Email))
	if errors.Is(err, repository.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// OnboardingSource maps the configured source name to an implementation.
// Unknown names fall back to the session flag.
func OnboardingSource(name string, storage repository.Storage) OnboardingStatus {
	if name == "flag" && storage != nil {
		return FlagOnboarding{Storage: storage}
	}
	return SessionOnboarding{}
}
