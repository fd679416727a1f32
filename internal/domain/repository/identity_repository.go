package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
)

// ErrAccountNotFound is returned by directories when no account matches.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned by Enroll when the email is already taken.
var ErrAccountExists = errors.New("account already exists")

// IdentityBackend is the identity-verification boundary. The demo table and the
// Postgres directory both implement it; a real HTTP/RPC client would too.
type IdentityBackend interface {
	// Authenticate returns the account's user when email and password match.
	// Implementations must not reveal which of the two was wrong.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	// Exists reports whether email is already taken.
	Exists(ctx context.Context, email string) (bool, error)
	// Enroll records a verified signup.
	Enroll(ctx context.Context, acc *entity.Account) error
	// MarkOnboarded records that the account finished onboarding, so later
	// logins report it. ErrAccountNotFound when no account has that email.
	MarkOnboarded(ctx context.Context, email string) error
}

// AccountRepository is the storage contract of persistent account directories.
type AccountRepository interface {
	Create(ctx context.Context, acc *entity.Account) error
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	MarkOnboarded(ctx context.Context, email string) error
}
