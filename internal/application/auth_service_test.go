package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/helpers"
	mailtpl "github.com/oksasatya/creatorlink/pkg/mailer/templates"
)

func TestLogin_CreatorNeedsOnboarding(t *testing.T) {
	f := newFixture(t)
	st := f.store(t, "c1")

	res, err := f.auth.Login(context.Background(), st, LoginInput{Email: "creator@demo.com", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCreator, res.User.Role)
	assert.True(t, res.NeedsOnboarding)
	assert.Equal(t, "/onboarding", res.Redirect)
	require.NotNil(t, res.User.LastLoginAt)
	assert.Equal(t, fixedNow, *res.User.LastLoginAt)

	snap := st.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.IsLoading)
	assert.NotEmpty(t, snap.Token)
	assert.NotEmpty(t, snap.RefreshToken)
}

func TestLogin_HonoursSafeRedirect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.auth.Login(ctx, f.store(t, "c1"), LoginInput{Email: "brand@demo.com", Password: "password123", Redirect: "/brand/discover"})
	require.NoError(t, err)
	assert.Equal(t, "/brand/discover", res.Redirect)

	for i, target := range []string{"//evil.test", "/\\evil.test", "/\\evil.test/x", "/login?redirect=/x"} {
		res, err = f.auth.Login(ctx, f.store(t, fmt.Sprintf("c%d", i+2)), LoginInput{Email: "brand@demo.com", Password: "password123", Redirect: target})
		require.NoError(t, err)
		assert.Equal(t, "/brand/dashboard", res.Redirect, target)
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, in := range []LoginInput{
		{Email: "creator@demo.com", Password: "wrong"},
		{Email: "ghost@demo.com", Password: "password123"},
	} {
		st := f.store(t, "c1")
		_, err := f.auth.Login(ctx, st, in)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "invalid email or password", err.Error())
		assert.False(t, st.Snapshot().IsAuthenticated)
		assert.False(t, st.Snapshot().IsLoading)
	}
	assert.Empty(t, f.kv.Keys(session.Namespace("c1")))
}

type brokenIdentity struct{ repository.IdentityBackend }

func (brokenIdentity) Authenticate(context.Context, string, string) (*entity.User, error) {
	return nil, errors.New("connection refused")
}

func TestLogin_BackendFailureIsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.auth.Identity = brokenIdentity{}
	st := f.store(t, "c1")

	_, err := f.auth.Login(context.Background(), st, LoginInput{Email: "creator@demo.com", Password: "password123"})

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, st.Snapshot().IsLoading)
}

func TestLogin_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := f.store(t, "c1")

	_, err := f.auth.Login(ctx, st, LoginInput{Email: "creator@demo.com", Password: "password123"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, st.Snapshot().IsAuthenticated)
}

func TestRegister_ThenVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.Register(ctx, RegisterInput{Name: "New Creator", Email: "New@Creator.io", Password: "s3cretpass", Role: entity.RoleCreator})
	require.NoError(t, err)
	assert.Equal(t, "new@creator.io", u.Email)
	assert.False(t, u.EmailVerified)
	assert.False(t, u.OnboardingCompleted)
	assert.Equal(t, []string{mailtpl.VerificationCode}, f.mail.templates())
	assert.Len(t, f.kv.Keys("client:"), 0)

	st := f.store(t, "c1")
	_, err = f.auth.VerifyOTP(ctx, st, "new@creator.io", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.False(t, st.Snapshot().IsAuthenticated)

	verified, err := f.auth.VerifyOTP(ctx, st, "new@creator.io", "123456")
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.False(t, verified.OnboardingCompleted)
	assert.Equal(t, u.ID, verified.ID)
	assert.True(t, st.Snapshot().IsAuthenticated)
	assert.Empty(t, f.kv.Keys(helpers.KeyPendingRegistration("")))

	_, err = f.auth.VerifyOTP(ctx, f.store(t, "c2"), "new@creator.io", "123456")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRegister_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st := f.store(t, "c1")
	f.login(t, st, "creator@demo.com")
	before := st.Snapshot()
	stored := f.kv.Dump()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "brand@demo.com", Password: "x12345678", Role: entity.RoleBrand})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, before, st.Snapshot())
	assert.Equal(t, stored, f.kv.Dump())

	_, err = f.auth.Register(ctx, RegisterInput{Email: "root@x.io", Password: "x12345678", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Empty(t, f.mail.templates())
}

func TestRegister_RandomCodeIsPerSignup(t *testing.T) {
	f := newFixture(t)
	f.auth.Cfg.OTPRandom = true
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "r@x.io", Password: "x12345678", Role: entity.RoleBrand})
	require.NoError(t, err)
	require.NoError(t, f.auth.ResendOTP(ctx, "r@x.io"))

	require.Len(t, f.mail.jobs, 2)
	code, _ := f.mail.jobs[0].Data["Code"].(string)
	assert.Regexp(t, `^\d{6}$`, code)
	assert.Equal(t, code, f.mail.jobs[1].Data["Code"])

	st := f.store(t, "c1")
	if code != f.auth.Cfg.OTPDemoCode {
		_, err = f.auth.VerifyOTP(ctx, st, "r@x.io", f.auth.Cfg.OTPDemoCode)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}
	_, err = f.auth.VerifyOTP(ctx, st, "r@x.io", code)
	require.NoError(t, err)
	assert.True(t, st.Snapshot().IsAuthenticated)
}

func TestResendOTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.auth.ResendOTP(ctx, "nobody@x.io"), ErrInvalidOTP)

	_, err := f.auth.Register(ctx, RegisterInput{Email: "a@b.io", Password: "x12345678", Role: entity.RoleAgency})
	require.NoError(t, err)
	require.NoError(t, f.auth.ResendOTP(ctx, "A@B.io"))
	assert.Equal(t, []string{mailtpl.VerificationCode, mailtpl.VerificationCode}, f.mail.templates())
}

func TestRegister_MailDisabledSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.auth.Cfg.MailSendEnabled = false

	_, err := f.auth.Register(context.Background(), RegisterInput{Email: "a@b.io", Password: "x12345678", Role: entity.RoleBrand})

	require.NoError(t, err)
	assert.Empty(t, f.mail.templates())
}

func TestLogout_ClearsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "agency@demo.com")

	require.NoError(t, f.auth.Logout(ctx, st))

	assert.Empty(t, f.kv.Keys(session.Namespace("c1")))
	assert.Equal(t, session.Session{}, st.Snapshot())

	// logging out twice is harmless
	require.NoError(t, f.auth.Logout(ctx, st))
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "brand@demo.com")
	before := st.Snapshot()

	access, err := f.auth.RefreshToken(ctx, st)
	require.NoError(t, err)

	after := st.Snapshot()
	assert.Equal(t, access, after.Token)
	assert.Equal(t, before.RefreshToken, after.RefreshToken)
	claims, err := f.auth.JWT.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "brand", claims.Role)
}

func TestRefreshToken_FailureForcesLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, "c1")
	f.login(t, st, "brand@demo.com")
	require.NoError(t, f.kv.Set(ctx, session.Namespace("c1")+session.KeyRefreshToken, "garbage", 0))

	_, err := f.auth.RefreshToken(ctx, st)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, st.Snapshot().IsAuthenticated)
	assert.Empty(t, f.kv.Keys(session.Namespace("c1")))
}

func TestRefreshToken_WithoutSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.RefreshToken(context.Background(), f.store(t, "c1"))
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	none, err := f.auth.UpdateUser(ctx, f.store(t, "c0"), entity.UserPatch{})
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Empty(t, f.kv.Keys(session.Namespace("c0")))

	st := f.store(t, "c1")
	f.login(t, st, "creator.pro@demo.com")
	name := "Riley R."
	u, err := f.auth.UpdateUser(ctx, st, entity.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Riley R.", u.Name)

	reloaded := f.store(t, "c1")
	assert.Equal(t, "Riley R.", reloaded.Snapshot().User.Name)
	assert.Equal(t, 310000, reloaded.Snapshot().User.FollowerCount)
}

func TestVerifyOTP_ExpiredPending(t *testing.T) {
	f := newFixture(t)
	f.auth.Cfg.PendingTTL = time.Nanosecond
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Email: "late@x.io", Password: "x12345678", Role: entity.RoleCreator})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = f.auth.VerifyOTP(ctx, f.store(t, "c1"), "late@x.io", "123456")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}
