package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SIGNING_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "techstruck", cfg.DBName)
	assert.Equal(t, 120*time.Second, cfg.StateTokenTTL)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("SIGNING_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_MissingSigningSecret(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SIGNING_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIGNING_SECRET")
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_StateTokenTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STATE_TOKEN_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.StateTokenTTL)
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STATE_TOKEN_TTL_SECONDS", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ProviderCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GITHUB_CLIENT_ID", "gh-id")
	t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")
	t.Setenv("GITHUB_REDIRECT_URI", "https://example.com/oauth/github")
	t.Setenv("STACKEXCHANGE_KEY", "se-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gh-id", cfg.Github.ClientID)
	assert.Equal(t, "gh-secret", cfg.Github.ClientSecret)
	assert.Equal(t, "https://example.com/oauth/github", cfg.Github.RedirectURI)
	assert.Equal(t, "se-key", cfg.Stackexchange.Key)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "h",
		DBPort:     "5432",
		DBName:     "d",
	}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}
