package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/creatorlink/config"
	"github.com/oksasatya/creatorlink/internal/domain/entity"
	repo "github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/internal/guard"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/helpers"
	"github.com/oksasatya/creatorlink/pkg/mailer"
	mailtpl "github.com/oksasatya/creatorlink/pkg/mailer/templates"
)

// EmailPublisher enqueues email jobs. *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Identity repo.IdentityBackend
	Storage  repo.Storage
	JWT      *helpers.JWTManager
	Mail     EmailPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewAuthService(identity repo.IdentityBackend, storage repo.Storage, jwt *helpers.JWTManager, mail EmailPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Identity: identity,
		Storage:  storage,
		JWT:      jwt,
		Mail:     mail,
		Cfg:      cfg,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// unavailable logs err and hides it behind ErrUnavailable. Context errors pass through.
func (s *AuthService) unavailable(op string, err error, fields logrus.Fields) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["op"] = op
	helpers.LogError(s.Logger, "auth operation failed", err, fields)
	return ErrUnavailable
}

type LoginInput struct {
	Email    string
	Password string
	// Redirect is the page the user originally asked for, if any.
	Redirect string
}

type LoginResult struct {
	User            *entity.User `json:"user"`
	NeedsOnboarding bool         `json:"needsOnboarding"`
	Redirect        string       `json:"redirect"`
}

// Login verifies credentials and establishes the session. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, store *session.Store, in LoginInput) (*LoginResult, error) {
	done := store.BeginLoading()
	defer done()

	u, err := s.Identity.Authenticate(ctx, in.Email, in.Password)
	if errors.Is(err, repo.ErrAccountNotFound) {
		mLoginFailures.Add(1)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, s.unavailable("login", err, logrus.Fields{"email": repo.NormalizeEmail(in.Email)})
	}

	now := s.now()
	u.LastLoginAt = &now
	if err := s.establish(ctx, store, u); err != nil {
		return nil, s.unavailable("login", err, logrus.Fields{"user_id": u.ID})
	}
	mLogins.Add(1)

	res := &LoginResult{User: u.Clone(), NeedsOnboarding: !u.OnboardingCompleted}
	switch {
	case res.NeedsOnboarding:
		res.Redirect = guard.PathOnboarding
	case safeRedirect(in.Redirect):
		res.Redirect = in.Redirect
	default:
		res.Redirect = guard.DashboardFor(u.Role)
	}
	return res, nil
}

// safeRedirect accepts only same-site paths outside the login page.
func safeRedirect(p string) bool {
	return helpers.IsLocalPath(p) && !strings.HasPrefix(p, guard.PathLogin)
}

// establish mints a token pair for u and persists the session.
func (s *AuthService) establish(ctx context.Context, store *session.Store, u *entity.User) error {
	pair, err := s.JWT.GeneratePair(u.ID, u.Email, u.Role.String(), uuid.NewString())
	if err != nil {
		return err
	}
	return store.Persist(ctx, u, pair.AccessToken, pair.RefreshToken)
}

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Role          entity.Role
	Company       string
	FollowerCount int
	Niche         string
}

// Register records an unverified signup and sends the verification code.
// It never creates a session.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := repo.NormalizeEmail(in.Email)
	if !in.Role.Valid() || in.Role == entity.RoleAdmin {
		return nil, ErrInvalidRole
	}
	exists, err := s.Identity.Exists(ctx, email)
	if err != nil {
		return nil, s.unavailable("register", err, logrus.Fields{"email": email})
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, s.unavailable("register", err, nil)
	}
	code, err := s.newCode()
	if err != nil {
		return nil, s.unavailable("register", err, nil)
	}
	now := s.now()
	pending := entity.PendingRegistration{
		User: entity.User{
			ID:            uuid.NewString(),
			Name:          strings.TrimSpace(in.Name),
			Email:         email,
			Role:          in.Role,
			Company:       in.Company,
			FollowerCount: in.FollowerCount,
			Niche:         in.Niche,
			CreatedAt:     now,
		},
		PasswordHash: hash,
		Code:         code,
		RequestedAt:  now,
	}
	if err := repo.SetJSON(ctx, s.Storage, helpers.KeyPendingRegistration(email), pending, s.Cfg.PendingTTL); err != nil {
		return nil, s.unavailable("register", err, logrus.Fields{"email": email})
	}
	mRegistrations.Add(1)

	s.sendVerification(ctx, &pending.User, pending.Code)
	u := pending.User
	return &u, nil
}

// ResendOTP re-sends the code of a pending signup and extends its lifetime.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = repo.NormalizeEmail(email)
	var pending entity.PendingRegistration
	ok, err := repo.GetJSON(ctx, s.Storage, helpers.KeyPendingRegistration(email), &pending)
	if err != nil {
		return s.unavailable("resend_otp", err, logrus.Fields{"email": email})
	}
	if !ok {
		return ErrInvalidOTP
	}
	if err := repo.SetJSON(ctx, s.Storage, helpers.KeyPendingRegistration(email), pending, s.Cfg.PendingTTL); err != nil {
		return s.unavailable("resend_otp", err, logrus.Fields{"email": email})
	}
	s.sendVerification(ctx, &pending.User, s.codeOf(pending))
	return nil
}

// VerifyOTP checks the code of a pending signup, enrolls the account and
// establishes the session.
func (s *AuthService) VerifyOTP(ctx context.Context, store *session.Store, email, code string) (*entity.User, error) {
	done := store.BeginLoading()
	defer done()

	email = repo.NormalizeEmail(email)
	key := helpers.KeyPendingRegistration(email)
	var pending entity.PendingRegistration
	ok, err := repo.GetJSON(ctx, s.Storage, key, &pending)
	if err != nil {
		return nil, s.unavailable("verify_otp", err, logrus.Fields{"email": email})
	}
	if !ok || !helpers.OTPMatches(s.codeOf(pending), strings.TrimSpace(code)) {
		return nil, ErrInvalidOTP
	}

	u := pending.User
	u.EmailVerified = true
	u.OnboardingCompleted = false
	acc := &entity.Account{User: u, PasswordHash: pending.PasswordHash}
	if err := s.Identity.Enroll(ctx, acc); err != nil {
		if errors.Is(err, repo.ErrAccountExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, s.unavailable("verify_otp", err, logrus.Fields{"email": email})
	}
	u = acc.User

	now := s.now()
	u.LastLoginAt = &now
	if err := s.establish(ctx, store, &u); err != nil {
		return nil, s.unavailable("verify_otp", err, logrus.Fields{"email": email})
	}
	if err := s.Storage.Delete(ctx, key); err != nil {
		helpers.LogError(s.Logger, "delete pending registration failed", err, logrus.Fields{"email": email})
	}
	mVerifications.Add(1)
	return u.Clone(), nil
}

// Logout empties the session. Memory is cleared even when storage fails.
func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	if err := store.Clear(ctx); err != nil {
		return s.unavailable("logout", err, logrus.Fields{"client_id": store.ClientID()})
	}
	return nil
}

// RefreshToken swaps the persisted refresh token for a new access token.
// Any failure forces a logout and reports ErrSessionExpired.
func (s *AuthService) RefreshToken(ctx context.Context, store *session.Store) (string, error) {
	done := store.BeginLoading()
	defer done()

	fail := func(reason string, err error) (string, error) {
		mForcedLogouts.Add(1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"client_id": store.ClientID(), "reason": reason}).Warn("refresh failed, signing out")
		}
		if cErr := store.Clear(ctx); cErr != nil {
			helpers.LogError(s.Logger, "clear session after refresh failure", cErr, nil)
		}
		return "", ErrSessionExpired
	}

	rt, err := store.PersistedRefreshToken(ctx)
	if err != nil {
		return fail("no refresh token", err)
	}
	claims, err := s.JWT.ParseRefreshToken(rt)
	if err != nil {
		return fail("invalid refresh token", err)
	}
	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil || snap.User.ID != claims.UserID {
		return fail("refresh token does not match session", errors.New("subject mismatch"))
	}

	access, _, err := s.JWT.GenerateAccessToken(claims.UserID, claims.Email, snap.User.Role.String(), claims.SessionID)
	if err != nil {
		return fail("mint access token", err)
	}
	if err := store.Persist(ctx, snap.User, access, ""); err != nil {
		return fail("persist access token", err)
	}
	mRefreshes.Add(1)
	return access, nil
}

// UpdateUser merges patch into the session user. Without a session it does nothing.
func (s *AuthService) UpdateUser(ctx context.Context, store *session.Store, patch entity.UserPatch) (*entity.User, error) {
	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil {
		return nil, nil
	}
	u := snap.User
	patch.Apply(u)
	if err := store.Persist(ctx, u, snap.Token, ""); err != nil {
		return nil, s.unavailable("update_user", err, logrus.Fields{"user_id": u.ID})
	}
	return u.Clone(), nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *entity.User, code string) {
	s.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.VerificationCode,
		Data:     mailtpl.NewVerificationCodeData(s.Cfg, u.Name, u.Email, code, mailtpl.WithExpiresIn(s.Cfg.PendingTTL)),
	})
}

// newCode picks the verification code of a new signup.
func (s *AuthService) newCode() (string, error) {
	if s.Cfg.OTPRandom {
		return helpers.GenOTPCode()
	}
	return s.Cfg.OTPDemoCode, nil
}

// codeOf is the code a pending signup must present. Records without one fall
// back to the configured demo code.
func (s *AuthService) codeOf(p entity.PendingRegistration) string {
	if p.Code != "" {
		return p.Code
	}
	return s.Cfg.OTPDemoCode
}

// publish enqueues job when mail is enabled. Delivery problems never fail the caller.
func (s *AuthService) publish(ctx context.Context, job mailer.EmailJob) {
	publishJob(ctx, s.Mail, s.Cfg, s.Logger, job)
}

func publishJob(ctx context.Context, pub EmailPublisher, cfg *config.Config, logger *logrus.Logger, job mailer.EmailJob) {
	if pub == nil || cfg == nil || !cfg.MailSendEnabled {
		return
	}
	if err := pub.PublishJSON(ctx, job); err != nil {
		helpers.LogError(logger, "enqueue email failed", err, logrus.Fields{"to": job.To, "template": job.Template})
	}
}
