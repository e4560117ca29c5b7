package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIGNIN_TOKEN_TTL_MINUTES", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "")
	t.Setenv("SIGNED_URL_TTL_SECONDS", "")

	cfg := Load()

	assert.Equal(t, 15, cfg.Auth.SignInTokenTTLMin)
	assert.Equal(t, 720, cfg.Auth.SessionTTLHours)

	// Access tokens default short: REST auth checks only the signature, so
	// expiry bounds how long a revoked session keeps working.
	assert.Equal(t, 1, cfg.Auth.AccessTokenTTLHours)

	assert.Equal(t, 60, cfg.Storage.SignedURLTTLSec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "4")
	t.Setenv("APP_PORT", "8080")

	cfg := Load()

	assert.Equal(t, 4, cfg.Auth.AccessTokenTTLHours)
	assert.Equal(t, "8080", cfg.App.Port)
}
