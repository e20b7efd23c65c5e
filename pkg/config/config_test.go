package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "DATASTORE_DRIVER", "RESET_DELAY", "SESSION_TTL", "ALLOWED_ORIGINS", "COOKIE_SECURE", "RATE_LIMIT_SUBMIT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "supabase", cfg.DatastoreDriver)
	assert.Equal(t, "contact_form_submissions", cfg.SubmissionsTable)
	assert.Equal(t, 3*time.Second, cfg.ResetDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RateLimitSubmit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATASTORE_DRIVER", "Postgres")
	t.Setenv("RESET_DELAY", "1500")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("RATE_LIMIT_SUBMIT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://rentaid.in, ,https://www.rentaid.in")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.DatastoreDriver)
	assert.Equal(t, 1500*time.Millisecond, cfg.ResetDelay)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RateLimitSubmit)
	assert.Equal(t, []string{"https://rentaid.in", "https://www.rentaid.in"}, cfg.AllowedOrigins)
	assert.True(t, cfg.CookieSecure)
}
