package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.LiveAddr)
	assert.Equal(t, "extended", cfg.Catalog)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadServerConfigOverride(t *testing.T) {
	t.Setenv("GALVANI_CATALOG", "daniell")
	t.Setenv("GALVANI_HTTP_ADDR", "127.0.0.1:0")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "daniell", cfg.Catalog)
	assert.Equal(t, "127.0.0.1:0", cfg.HTTPAddr)
}

func TestLoadAuthConfig(t *testing.T) {
	cfg := LoadAuthConfig()
	assert.Equal(t, "galvani", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.JWTDuration)

	t.Setenv("GALVANI_JWT_TTL_HOURS", "2")
	t.Setenv("GALVANI_JWT_SECRET", "s3cret")
	cfg = LoadAuthConfig()
	assert.Equal(t, 2*time.Hour, cfg.JWTDuration)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadAuthConfigFallsBack(t *testing.T) {
	t.Setenv("GALVANI_JWT_TTL_HOURS", "soon")

	cfg := LoadAuthConfig()
	assert.Equal(t, 24*time.Hour, cfg.JWTDuration)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestParseEnvError(t *testing.T) {
	var cfg struct {
		Port int `env:"GALVANI_TEST_PORT"`
	}
	t.Setenv("GALVANI_TEST_PORT", "not-an-int")
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
