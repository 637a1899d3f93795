package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_URL", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("RESET_TOKEN_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, time.Hour, cfg.VerifyTokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.ForgotPasswordConceal)
	assert.Equal(t, 10, cfg.BcryptCost)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_URL", "https://auth.example.com/")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("FORGOT_PASSWORD_CONCEAL", "true")
	t.Setenv("RESET_TOKEN_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "https://auth.example.com", cfg.AppURL)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.True(t, cfg.ForgotPasswordConceal)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
}

func TestLinks(t *testing.T) {
	cfg := &Config{AppURL: "https://auth.example.com"}
	assert.Equal(t, "https://auth.example.com/api/auth/verify-email/abc", cfg.VerifyEmailLink("abc"))
	assert.Equal(t, "https://auth.example.com/reset-password/abc", cfg.ResetPasswordLink("abc"))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:              "production",
			StoreDriver:      "postgres",
			MailTransport:    "queue",
			JWTAccessSecret:  "a-secret",
			JWTRefreshSecret: "r-secret",
			AccessTTL:        time.Minute,
			RefreshTTL:       time.Hour,
			VerifyTokenTTL:   time.Hour,
			ResetTokenTTL:    15 * time.Minute,
			BcryptCost:       10,
		}
	}
	require.NoError(t, base().Validate())

	same := base()
	same.JWTRefreshSecret = same.JWTAccessSecret
	assert.Error(t, same.Validate())

	dev := base()
	dev.JWTAccessSecret = "devaccesssecret"
	assert.Error(t, dev.Validate())

	mem := base()
	mem.StoreDriver = "memory"
	assert.Error(t, mem.Validate())

	badTTL := base()
	badTTL.ResetTokenTTL = 0
	assert.Error(t, badTTL.Validate())

	badCost := base()
	badCost.BcryptCost = 3
	assert.Error(t, badCost.Validate())

	badMail := base()
	badMail.MailTransport = "smtp"
	assert.Error(t, badMail.Validate())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://a.example.com, ,https://b.example.com "}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
}
