package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

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

// ProfileWriter receives the public profile of a finished creator.
type ProfileWriter interface {
	Put(ctx context.Context, profile entity.CreatorProfile) error
}

// AvatarUploader stores an image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error)
}

// OnboardingService drives the six-step wizard. Progress is keyed by email
// only, so one email never sees or touches another's answers.
type OnboardingService struct {
	Identity repo.IdentityBackend
	Storage  repo.Storage
	Profiles ProfileWriter
	Avatars  AvatarUploader
	Mail     EmailPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewOnboardingService(identity repo.IdentityBackend, storage repo.Storage, profiles ProfileWriter, avatars AvatarUploader, mail EmailPublisher, cfg *config.Config, logger *logrus.Logger) *OnboardingService {
	return &OnboardingService{
		Identity: identity,
		Storage:  storage,
		Profiles: profiles,
		Avatars:  avatars,
		Mail:     mail,
		Cfg:      cfg,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *OnboardingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *OnboardingService) fail(op, email string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	helpers.LogError(s.Logger, "onboarding operation failed", err, logrus.Fields{"op": op, "email": email})
	return ErrUnavailable
}

// Load returns the stored progress, or a fresh one that is not persisted yet.
func (s *OnboardingService) Load(ctx context.Context, email string) (*entity.Progress, error) {
	email = repo.NormalizeEmail(email)
	var p entity.Progress
	ok, err := repo.GetJSON(ctx, s.Storage, repo.OnboardingProgressKey(email), &p)
	if err != nil {
		return nil, s.fail("load", email, err)
	}
	if !ok || p.Email != email || !p.Step.Valid() {
		now := s.now()
		return &entity.Progress{Email: email, Step: entity.StepProfileBasics, StartedAt: now, UpdatedAt: now}, nil
	}
	return &p, nil
}

func (s *OnboardingService) save(ctx context.Context, op string, p *entity.Progress) (*entity.Progress, error) {
	p.UpdatedAt = s.now()
	if err := repo.SetJSON(ctx, s.Storage, repo.OnboardingProgressKey(p.Email), p, 0); err != nil {
		return nil, s.fail(op, p.Email, err)
	}
	return p, nil
}

// Save merges the answers of the current step without moving.
func (s *OnboardingService) Save(ctx context.Context, email string, answers entity.Answers) (*entity.Progress, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	p.Answers.MergeStep(p.Step, answers)
	return s.save(ctx, "save", p)
}

// Next merges the current step's answers and advances once they are complete.
// The last step never advances; Complete finishes the wizard.
func (s *OnboardingService) Next(ctx context.Context, email string, answers entity.Answers) (*entity.Progress, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	p.Answers.MergeStep(p.Step, answers)
	if !p.Answers.StepComplete(p.Step) {
		return p, ErrStepIncomplete
	}
	if p.Step < entity.LastStep {
		p.Step++
	}
	mOnboardingSteps.Add(1)
	return s.save(ctx, "next", p)
}

// Skip advances without checking the current step.
func (s *OnboardingService) Skip(ctx context.Context, email string) (*entity.Progress, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	if p.Step < entity.LastStep {
		p.Step++
	}
	return s.save(ctx, "skip", p)
}

// Back returns to the previous step, keeping every answer.
func (s *OnboardingService) Back(ctx context.Context, email string) (*entity.Progress, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	if p.Step > entity.StepProfileBasics {
		p.Step--
	}
	return s.save(ctx, "back", p)
}

// Complete finishes the wizard from its last step: it sets the permanent
// completion flag, drops the progress blob and marks the session user done.
func (s *OnboardingService) Complete(ctx context.Context, store *session.Store, email string, answers entity.Answers) (*entity.User, error) {
	p, err := s.Load(ctx, email)
	if err != nil {
		return nil, err
	}
	if p.Step != entity.LastStep {
		return nil, ErrNotOnLastStep
	}
	p.Answers.MergeStep(p.Step, answers)
	if !p.Answers.StepComplete(p.Step) {
		return nil, ErrStepIncomplete
	}

	email = p.Email
	// Accounts unknown to the backend (unenrolled demo signups) keep only the flag.
	if s.Identity != nil {
		if err := s.Identity.MarkOnboarded(ctx, email); err != nil && !errors.Is(err, repo.ErrAccountNotFound) {
			return nil, s.fail("complete", email, err)
		}
	}
	if err := s.Storage.Set(ctx, repo.OnboardingCompletedKey(email), "true", 0); err != nil {
		return nil, s.fail("complete", email, err)
	}
	if err := s.Storage.Delete(ctx, repo.OnboardingProgressKey(email)); err != nil {
		helpers.LogError(s.Logger, "delete onboarding progress failed", err, logrus.Fields{"email": email})
	}
	mOnboardingDone.Add(1)

	snap := store.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil || repo.NormalizeEmail(snap.User.Email) != email {
		return nil, nil
	}
	u := snap.User
	applyAnswers(u, p.Answers)
	if err := store.Persist(ctx, u, snap.Token, ""); err != nil {
		return nil, s.fail("complete", email, err)
	}

	if u.Role == entity.RoleCreator && s.Profiles != nil {
		if err := s.Profiles.Put(ctx, entity.NewCreatorProfile(u, p.Answers, s.now())); err != nil {
			helpers.LogError(s.Logger, "index creator profile failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	publishJob(ctx, s.Mail, s.Cfg, s.Logger, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Cfg, u.Name, u.Email, u.Role.String(), mailtpl.WithDashboard(guard.DashboardFor(u.Role))),
	})
	return u.Clone(), nil
}

func applyAnswers(u *entity.User, a entity.Answers) {
	u.OnboardingCompleted = true
	if name := strings.TrimSpace(a.Profile.DisplayName); name != "" {
		u.Name = name
	}
	if a.Profile.AvatarURL != "" {
		u.AvatarURL = a.Profile.AvatarURL
	}
	if a.Platform.FollowerCount > 0 {
		u.FollowerCount = a.Platform.FollowerCount
	}
	if len(a.Content.Categories) > 0 {
		u.Niche = a.Content.Categories[0]
	}
}

// UploadAvatar stores an image for the profile step and records its URL in the progress.
func (s *OnboardingService) UploadAvatar(ctx context.Context, u *entity.User, r io.Reader, filename, contentType string) (string, error) {
	if s.Avatars == nil {
		return "", ErrUploadsDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrInvalidAvatar
	}
	url, err := s.Avatars.Upload(ctx, u.ID, r, filename, contentType)
	if err != nil {
		return "", s.fail("upload_avatar", u.Email, err)
	}
	p, err := s.Load(ctx, u.Email)
	if err != nil {
		return "", err
	}
	p.Answers.Profile.AvatarURL = url
	if _, err := s.save(ctx, "upload_avatar", p); err != nil {
		return "", err
	}
	return url, nil
}

// Completed reports the permanent completion flag of email.
func (s *OnboardingService) Completed(ctx context.Context, email string) (bool, error) {
	v, err := s.Storage.Get(ctx, repo.OnboardingCompletedKey(email))
	if errors.Is(err, repo.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, s.fail("completed", email, err)
	}
	return v == "true", nil
}
