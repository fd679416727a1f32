package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

type fakeAccounts struct {
	byEmail map[string]*entity.Account
	created []*entity.Account
}

func (f *fakeAccounts) Create(_ context.Context, acc *entity.Account) error {
	if _, ok := f.byEmail[acc.User.Email]; ok {
		return repository.ErrAccountExists
	}
	f.byEmail[acc.User.Email] = acc
	f.created = append(f.created, acc)
	return nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	acc, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return acc, nil
}

func (f *fakeAccounts) MarkOnboarded(_ context.Context, email string) error {
	acc, ok := f.byEmail[email]
	if !ok {
		return repository.ErrAccountNotFound
	}
	acc.User.OnboardingCompleted = true
	return nil
}

func newFake(t *testing.T) *fakeAccounts {
	t.Helper()
	hash, err := helpers.HashPasswordCost("password123", bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeAccounts{byEmail: map[string]*entity.Account{
		"brand@demo.com": {User: entity.User{ID: "b1", Email: "brand@demo.com", Role: entity.RoleBrand}, PasswordHash: hash},
	}}
}

func TestDirectory_Authenticate(t *testing.T) {
	d := NewDirectory(newFake(t))
	ctx := context.Background()

	u, err := d.Authenticate(ctx, "BRAND@demo.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "b1", u.ID)

	_, err = d.Authenticate(ctx, "brand@demo.com", "nope")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	_, err = d.Authenticate(ctx, "ghost@demo.com", "password123")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestDirectory_ExistsAndEnroll(t *testing.T) {
	fake := newFake(t)
	d := NewDirectory(fake)
	ctx := context.Background()

	ok, err := d.Exists(ctx, "brand@demo.com")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, d.Enroll(ctx, &entity.Account{User: entity.User{Email: " New@X.io "}}))
	require.Len(t, fake.created, 1)
	assert.Equal(t, "new@x.io", fake.created[0].User.Email)

	ok, err = d.Exists(ctx, "new@x.io")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, d.Enroll(ctx, &entity.Account{User: entity.User{Email: "brand@demo.com"}}), repository.ErrAccountExists)
}

func TestDirectory_MarkOnboardedSurvivesNextLogin(t *testing.T) {
	d := NewDirectory(newFake(t))
	ctx := context.Background()

	before, err := d.Authenticate(ctx, "brand@demo.com", "password123")
	require.NoError(t, err)
	require.False(t, before.OnboardingCompleted)

	require.NoError(t, d.MarkOnboarded(ctx, " Brand@Demo.com "))

	after, err := d.Authenticate(ctx, "brand@demo.com", "password123")
	require.NoError(t, err)
	assert.True(t, after.OnboardingCompleted)

	assert.ErrorIs(t, d.MarkOnboarded(ctx, "ghost@demo.com"), repository.ErrAccountNotFound)
}
