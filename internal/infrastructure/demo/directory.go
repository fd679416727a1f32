package demo

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

// Seed describes one fixed demo account.
type Seed struct {
	ID                  string
	Name                string
	Email               string
	Role                entity.Role
	OnboardingCompleted bool
	Company             string
	FollowerCount       int
	Niche               string
}

// Accounts is the fixed demo table. Every account shares one password.
var Accounts = []Seed{
	{ID: "demo-creator", Name: "Casey Creator", Email: "creator@demo.com", Role: entity.RoleCreator, FollowerCount: 48200, Niche: "lifestyle"},
	{ID: "demo-creator-pro", Name: "Riley Reels", Email: "creator.pro@demo.com", Role: entity.RoleCreator, OnboardingCompleted: true, FollowerCount: 310000, Niche: "fitness"},
	{ID: "demo-brand", Name: "Blair Brand", Email: "brand@demo.com", Role: entity.RoleBrand, OnboardingCompleted: true, Company: "Glow Cosmetics"},
	{ID: "demo-agency", Name: "Avery Agency", Email: "agency@demo.com", Role: entity.RoleAgency, OnboardingCompleted: true, Company: "Northstar Talent"},
	{ID: "demo-admin", Name: "Ada Admin", Email: "admin@demo.com", Role: entity.RoleAdmin, OnboardingCompleted: true},
}

// Directory is the in-process stand-in for an identity backend. Calls wait for
// a fixed latency and give up early when ctx is cancelled.
type Directory struct {
	accounts map[string]entity.Account
	dummy    string
	latency  time.Duration
	created  time.Time
}

func NewDirectory(password string, latency time.Duration) (*Directory, error) {
	hash, err := helpers.HashPasswordCost(password, bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	dummy, err := helpers.HashPasswordCost(helpers.NewTokenID(), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	d := &Directory{
		accounts: make(map[string]entity.Account, len(Accounts)),
		dummy:    dummy,
		latency:  latency,
		created:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, s := range Accounts {
		d.accounts[s.Email] = entity.Account{
			User: entity.User{
				ID:                  s.ID,
				Name:                s.Name,
				Email:               s.Email,
				Role:                s.Role,
				OnboardingCompleted: s.OnboardingCompleted,
				EmailVerified:       true,
				Company:             s.Company,
				FollowerCount:       s.FollowerCount,
				Niche:               s.Niche,
				CreatedAt:           d.created,
			},
			PasswordHash: hash,
		}
	}
	return d, nil
}

func (d *Directory) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalize(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (d *Directory) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	acc, ok := d.accounts[normalize(email)]
	if !ok {
		// keep timing close to a real mismatch
		_ = helpers.CompareHashAndPassword(d.dummy, password)
		return nil, repository.ErrAccountNotFound
	}
	if !helpers.CompareHashAndPassword(acc.PasswordHash, password) {
		return nil, repository.ErrAccountNotFound
	}
	u := acc.User
	return &u, nil
}

func (d *Directory) Exists(ctx context.Context, email string) (bool, error) {
	if err := d.wait(ctx); err != nil {
		return false, err
	}
	_, ok := d.accounts[normalize(email)]
	return ok, nil
}

// Enroll accepts the verified signup without storing it; the demo table is fixed.
func (d *Directory) Enroll(ctx context.Context, _ *entity.Account) error {
	return d.wait(ctx)
}

// MarkOnboarded only checks the account exists; completion lives in the
// per-email flag and the session user.
func (d *Directory) MarkOnboarded(ctx context.Context, email string) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	if _, ok := d.accounts[normalize(email)]; !ok {
		return repository.ErrAccountNotFound
	}
	return nil
}

var _ repository.IdentityBackend = (*Directory)(nil)
