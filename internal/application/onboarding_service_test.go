package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	mailtpl "github.com/oksasatya/creatorlink/pkg/mailer/templates"
)

var fullAnswers = entity.Answers{
	Profile:       entity.ProfileBasics{DisplayName: "Casey C", Username: "casey"},
	Platform:      entity.PlatformDetails{PrimaryPlatform: "instagram", Handle: "@casey", FollowerCount: 50000},
	Content:       entity.ContentPreferences{Categories: []string{"beauty", "travel"}},
	Collaboration: entity.CollaborationPreferences{CollaborationTypes: []string{"sponsored-post"}},
	Monetization:  entity.Monetization{RatePerPost: 400, PayoutMethod: "bank"},
	Confirmation:  entity.Confirmation{AcceptTerms: true, ConfirmAccuracy: true},
}

type fakeProfiles struct{ put []entity.CreatorProfile }

func (f *fakeProfiles) Put(_ context.Context, p entity.CreatorProfile) error {
	f.put = append(f.put, p)
	return nil
}

type fakeAvatars struct{ err error }

func (f fakeAvatars) Upload(_ context.Context, owner string, r io.Reader, filename, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.ReadAll(r)
	return "https://storage.googleapis.com/b/avatars/" + owner + "/" + filename, nil
}

func TestOnboarding_LoadFreshIsNotPersisted(t *testing.T) {
	f := newFixture(t)

	p, err := f.board.Load(context.Background(), "Creator@Demo.com")
	require.NoError(t, err)

	assert.Equal(t, "creator@demo.com", p.Email)
	assert.Equal(t, entity.StepProfileBasics, p.Step)
	assert.Empty(t, f.kv.Keys("onboarding_progress:"))
}

func TestOnboarding_NextRequiresStepFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.board.Next(ctx, "creator@demo.com", entity.Answers{Profile: entity.ProfileBasics{DisplayName: "Casey"}})
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, entity.StepProfileBasics, p.Step)

	p, err = f.board.Next(ctx, "creator@demo.com", fullAnswers)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPlatformDetails, p.Step)
	assert.Equal(t, "casey", p.Answers.Profile.Username)
	assert.Empty(t, p.Answers.Platform.Handle, "later sections are not merged early")
}

func TestOnboarding_SaveSkipBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "creator@demo.com"

	_, err := f.board.Save(ctx, email, entity.Answers{Profile: entity.ProfileBasics{Bio: "hi"}})
	require.NoError(t, err)
	p, err := f.board.Skip(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, entity.StepPlatformDetails, p.Step)

	p, err = f.board.Back(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, entity.StepProfileBasics, p.Step)
	assert.Equal(t, "hi", p.Answers.Profile.Bio)

	p, err = f.board.Back(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, entity.StepProfileBasics, p.Step)

	for i := 0; i < entity.StepCount+2; i++ {
		p, err = f.board.Skip(ctx, email)
		require.NoError(t, err)
	}
	assert.Equal(t, entity.LastStep, p.Step)
}

func TestOnboarding_EmailsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.board.Next(ctx, "a@x.io", fullAnswers)
	require.NoError(t, err)
	_, err = f.board.Save(ctx, "b@x.io", entity.Answers{Profile: entity.ProfileBasics{DisplayName: "B"}})
	require.NoError(t, err)

	a, err := f.board.Load(ctx, "a@x.io")
	require.NoError(t, err)
	b, err := f.board.Load(ctx, "b@x.io")
	require.NoError(t, err)

	assert.Equal(t, entity.StepPlatformDetails, a.Step)
	assert.Equal(t, "Casey C", a.Answers.Profile.DisplayName)
	assert.Equal(t, entity.StepProfileBasics, b.Step)
	assert.Equal(t, "B", b.Answers.Profile.DisplayName)
}

func TestOnboarding_ProgressUnderAnotherEmailIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, repository.SetJSON(ctx, f.kv, repository.OnboardingProgressKey("a@x.io"),
		entity.Progress{Email: "b@x.io", Step: entity.StepMonetization}, 0))

	p, err := f.board.Load(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, entity.StepProfileBasics, p.Step)
}

func walkToLastStep(t *testing.T, f *fixture, email string) {
	t.Helper()
	for i := 0; i < entity.StepCount-1; i++ {
		_, err := f.board.Next(context.Background(), email, fullAnswers)
		require.NoError(t, err)
	}
}

func TestOnboarding_Complete(t *testing.T) {
	f := newFixture(t)
	profiles := &fakeProfiles{}
	f.board.Profiles = profiles
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "creator@demo.com")

	_, err := f.board.Complete(ctx, st, "creator@demo.com", fullAnswers)
	assert.ErrorIs(t, err, ErrNotOnLastStep)

	walkToLastStep(t, f, "creator@demo.com")
	_, err = f.board.Complete(ctx, st, "creator@demo.com", entity.Answers{})
	assert.ErrorIs(t, err, ErrStepIncomplete)

	u, err := f.board.Complete(ctx, st, "creator@demo.com", fullAnswers)
	require.NoError(t, err)

	assert.True(t, u.OnboardingCompleted)
	assert.Equal(t, "Casey C", u.Name)
	assert.Equal(t, "beauty", u.Niche)
	assert.True(t, st.Snapshot().User.OnboardingCompleted)
	assert.Empty(t, f.kv.Keys("onboarding_progress:"))

	done, err := f.board.Completed(ctx, "creator@demo.com")
	require.NoError(t, err)
	assert.True(t, done)

	require.Len(t, profiles.put, 1)
	assert.Equal(t, "demo-creator", profiles.put[0].ID)
	assert.Contains(t, f.mail.templates(), mailtpl.Welcome)
}

func TestOnboarding_CompleteWithoutMatchingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	walkToLastStep(t, f, "a@x.io")

	u, err := f.board.Complete(ctx, f.store(t, "c1"), "a@x.io", fullAnswers)
	require.NoError(t, err)
	assert.Nil(t, u)

	done, err := f.board.Completed(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestOnboarding_UploadAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := &entity.User{ID: "u1", Email: "creator@demo.com"}

	_, err := f.board.UploadAvatar(ctx, u, strings.NewReader("png"), "me.png", "image/png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)

	f.board.Avatars = fakeAvatars{}
	_, err = f.board.UploadAvatar(ctx, u, strings.NewReader("%PDF"), "cv.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidAvatar)

	url, err := f.board.UploadAvatar(ctx, u, strings.NewReader("png"), "me.png", "image/png")
	require.NoError(t, err)
	p, err := f.board.Load(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, url, p.Answers.Profile.AvatarURL)

	// a later profile step submit keeps the uploaded avatar
	p, err = f.board.Next(ctx, u.Email, fullAnswers)
	require.NoError(t, err)
	assert.Equal(t, url, p.Answers.Profile.AvatarURL)

	f.board.Avatars = fakeAvatars{err: errors.New("bucket gone")}
	_, err = f.board.UploadAvatar(ctx, u, strings.NewReader("png"), "me.png", "image/png")
	assert.ErrorIs(t, err, ErrUnavailable)
}

type markingIdentity struct {
	repository.IdentityBackend
	marked []string
	err    error
}

func (m *markingIdentity) MarkOnboarded(_ context.Context, email string) error {
	if m.err != nil {
		return m.err
	}
	m.marked = append(m.marked, email)
	return nil
}

func TestOnboarding_CompleteMarksAccount(t *testing.T) {
	f := newFixture(t)
	ident := &markingIdentity{IdentityBackend: f.auth.Identity}
	f.board.Identity = ident
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "creator@demo.com")
	walkToLastStep(t, f, "creator@demo.com")

	_, err := f.board.Complete(ctx, st, "Creator@Demo.com", fullAnswers)
	require.NoError(t, err)

	assert.Equal(t, []string{"creator@demo.com"}, ident.marked)
}

func TestOnboarding_CompleteAccountWriteFailureKeepsProgress(t *testing.T) {
	f := newFixture(t)
	f.board.Identity = &markingIdentity{IdentityBackend: f.auth.Identity, err: errors.New("connection reset")}
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "creator@demo.com")
	walkToLastStep(t, f, "creator@demo.com")

	_, err := f.board.Complete(ctx, st, "creator@demo.com", fullAnswers)
	assert.ErrorIs(t, err, ErrUnavailable)

	done, err := f.board.Completed(ctx, "creator@demo.com")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Len(t, f.kv.Keys("onboarding_progress:"), 1)
	assert.False(t, st.Snapshot().User.OnboardingCompleted)
}
