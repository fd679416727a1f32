package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/config"
	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/infrastructure/demo"
	"github.com/oksasatya/creatorlink/internal/infrastructure/memory"
	"github.com/oksasatya/creatorlink/internal/session"
	"github.com/oksasatya/creatorlink/pkg/helpers"
	"github.com/oksasatya/creatorlink/pkg/mailer"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func (f *fakePublisher) templates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.Template)
	}
	return out
}

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		AppName:         "creatorlink",
		CompanyName:     "CreatorLink",
		AppURL:          "http://app.test",
		VerifyOTPURL:    "http://app.test/verify-otp",
		OTPDemoCode:     "123456",
		PendingTTL:      30 * time.Minute,
		MailSendEnabled: true,
	}
}

type fixture struct {
	kv    *memory.Storage
	mail  *fakePublisher
	auth  *AuthService
	board *OnboardingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir, err := demo.NewDirectory("password123", 0)
	require.NoError(t, err)

	kv := memory.NewStorage()
	mail := &fakePublisher{}
	cfg := testConfig()
	log := helpers.NewDiscardLogger()
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	auth := NewAuthService(dir, kv, jwt, mail, cfg, log)
	auth.Now = func() time.Time { return fixedNow }
	board := NewOnboardingService(dir, kv, nil, nil, mail, cfg, log)
	board.Now = func() time.Time { return fixedNow }
	return &fixture{kv: kv, mail: mail, auth: auth, board: board}
}

func (f *fixture) store(t *testing.T, clientID string) *session.Store {
	t.Helper()
	st := session.NewStore(f.kv, clientID)
	require.NoError(t, st.Restore(context.Background()))
	return st
}

func (f *fixture) login(t *testing.T, st *session.Store, email string) *entity.User {
	t.Helper()
	res, err := f.auth.Login(context.Background(), st, LoginInput{Email: email, Password: "password123"})
	require.NoError(t, err)
	return res.User
}
