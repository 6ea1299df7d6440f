package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CARZY_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.ResendWindow)
	assert.Equal(t, 1500*time.Millisecond, cfg.RedirectDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.SessionKey)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
api:
  base_url: https://api.carzy.example
  timeout: 5s
auth:
  resend_window: 45s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CARZY_CONFIG", path)
	t.Setenv("CARZY_API_BASE_URL", "https://staging.carzy.example")

	cfg, err := Load()
	require.NoError(t, err)

	// Env wins over file, file wins over default.
	assert.Equal(t, "https://staging.carzy.example", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 45*time.Second, cfg.ResendWindow)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_SessionKey(t *testing.T) {
	t.Setenv("CARZY_CONFIG", filepath.Join(t.TempDir(), "missing.yml"))

	t.Setenv("CARZY_SESSION_KEY_HEX", "not-hex")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("CARZY_SESSION_KEY_HEX", "abcd") // too short
	_, err = Load()
	require.Error(t, err)

	t.Setenv("CARZY_SESSION_KEY_HEX", "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.SessionKey, 32)
}
