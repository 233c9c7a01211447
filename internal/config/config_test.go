package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_MissingSecretsIsFatal(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
}

func TestLoad_MissingSingleSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_TOKEN_SECRET")
	assert.NotContains(t, err.Error(), "ACCESS_TOKEN_SECRET,")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shop-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "http://localhost:3000", cfg.App.CORSAllowOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "access-secret", cfg.Auth.AccessTokenSecret)
	assert.Equal(t, "refresh-secret", cfg.Auth.RefreshTokenSecret)
}

func TestLoad_TTLInvariant(t *testing.T) {
	setRequiredSecrets(t)
	// 8 days of access lifetime against 7 days of refresh lifetime.
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "11520")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_DAYS", "7")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shorter than")
}

func TestLoad_ProductionEnv(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
}
