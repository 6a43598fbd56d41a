package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/teachings")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "teachings-api", cfg.JWTIssuer)
	assert.Equal(t, 10, cfg.DefaultPageLimit)
	assert.Equal(t, 100, cfg.MaxPageLimit)
	assert.Equal(t, 120, cfg.RateLimitRPM)
	assert.Equal(t, 10, cfg.AuthRateLimitRPM)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/teachings")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DEFAULT_PAGE_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 25, cfg.DefaultPageLimit)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/teachings")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("DEFAULT_PAGE_LIMIT", "lots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.DefaultPageLimit)
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServerPort:       "8080",
		DatabaseURL:      "postgres://localhost:5432/teachings",
		JWTSecret:        "secret",
		TokenTTL:         time.Hour,
		RequestTimeout:   15 * time.Second,
		DefaultPageLimit: 10,
		MaxPageLimit:     100,
	}

	t.Run("valid config passes", func(t *testing.T) {
		cfg := valid
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing secret fails", func(t *testing.T) {
		cfg := valid
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database url fails", func(t *testing.T) {
		cfg := valid
		cfg.DatabaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("max limit below default fails", func(t *testing.T) {
		cfg := valid
		cfg.MaxPageLimit = 5
		assert.Error(t, cfg.Validate())
	})
}
