package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/pkg/helpers"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, acc *entity.Account) error {
	u := &acc.User
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, name, role, email_verified, onboarding_completed, company, follower_count, niche)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, u.Email, acc.PasswordHash, u.Name, string(u.Role), u.EmailVerified, u.OnboardingCompleted, u.Company, u.FollowerCount, u.Niche)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrAccountExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	acc := &entity.Account{}
	u := &acc.User
	var role string

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, email_verified, onboarding_completed, company, follower_count, niche, created_at
		FROM accounts
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Email, &acc.PasswordHash, &u.Name, &role, &u.EmailVerified,
		&u.OnboardingCompleted, &u.Company, &u.FollowerCount, &u.Niche, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return acc, nil
}

func (r *AccountRepository) MarkOnboarded(ctx context.Context, email string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET onboarding_completed = TRUE WHERE email = $1`, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

// Directory serves the IdentityBackend contract from the accounts table.
type Directory struct {
	repo repository.AccountRepository
}

func NewDirectory(repo repository.AccountRepository) *Directory {
	return &Directory{repo: repo}
}

func normalize(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (d *Directory) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	acc, err := d.repo.GetByEmail(ctx, normalize(email))
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(acc.PasswordHash, password) {
		return nil, repository.ErrAccountNotFound
	}
	return &acc.User, nil
}

func (d *Directory) Exists(ctx context.Context, email string) (bool, error) {
	_, err := d.repo.GetByEmail(ctx, normalize(email))
	if errors.Is(err, repository.ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (d *Directory) Enroll(ctx context.Context, acc *entity.Account) error {
	acc.User.Email = normalize(acc.User.Email)
	return d.repo.Create(ctx, acc)
}

func (d *Directory) MarkOnboarded(ctx context.Context, email string) error {
	return d.repo.MarkOnboarded(ctx, normalize(email))
}

var (
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.IdentityBackend   = (*Directory)(nil)
)
