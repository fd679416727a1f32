package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "creatorlink", cfg.AppName)
	assert.Equal(t, "demo", cfg.IdentityBackend)
	assert.Equal(t, "123456", cfg.OTPDemoCode)
	assert.False(t, cfg.OTPRandom)
	assert.Equal(t, "session", cfg.GuardOnboardingSource)
	assert.Equal(t, 800*time.Millisecond, cfg.DemoLatency)
	assert.False(t, cfg.UsePostgres())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IDENTITY_BACKEND", "Postgres")
	t.Setenv("DEMO_LATENCY", "0s")
	t.Setenv("GUARD_ONBOARDING_SOURCE", "FLAG")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()

	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, time.Duration(0), cfg.DemoLatency)
	assert.Equal(t, "flag", cfg.GuardOnboardingSource)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "nope")
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.False(t, cfg.MailSendEnabled)
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test , ,http://b.test",
		ElasticsearchAddrs: "http://es:9200",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://es:9200"}, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
