package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nexus/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range security.GeminiKeyEnvVars {
		t.Setenv(name, "")
	}
	for _, name := range []string{"NEXUS_MODEL", "NEXUS_SEARCH_MODEL", "NEXUS_PROVIDER", "OLLAMA_HOST", "NEXUS_REDIS_URL", "NEXUS_ADDR", "NEXUS_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Model.Provider)
	assert.Equal(t, DefaultClassifyTimeout, cfg.Timeouts.Classify)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
}

func TestLoadFromFile(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TEST_GEMINI", "AIzaFromEnvExpansion")

	path := writeConfig(t, `
api:
  gemini_key: ${TEST_GEMINI}
model:
  name: gemini-2.5-pro
timeouts:
  classify: 5s
  search: 1m
cache:
  enabled: false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "AIzaFromEnvExpansion", cfg.API.GeminiKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model.Name)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Classify)
	assert.Equal(t, time.Minute, cfg.Timeouts.Search)
	assert.Equal(t, DefaultVideoLookupTimeout, cfg.Timeouts.VideoLookup)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromMissingExplicitPath(t *testing.T) {
	isolateEnv(t)
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	isolateEnv(t)
	_, err := LoadFrom(writeConfig(t, "model: [unterminated"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "model:\n  name: from-file\n")
	t.Setenv("NEXUS_MODEL", "from-env")
	t.Setenv("NEXUS_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model.Name)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Cache.RedisURL)
}

func TestValidate(t *testing.T) {
	isolateEnv(t)

	cfg := DefaultConfig()
	assert.True(t, errors.Is(cfg.Validate(), ErrMissingAuth))

	cfg.API.GeminiKey = "AIzaSyA1b2C3d4E5f6G7h8"
	assert.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Model.Provider = "openai"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = *cfg
	bad.Timeouts.Search = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = *cfg
	bad.Cache.Backend = CacheBackendRedis
	bad.Cache.RedisURL = ""
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = *cfg
	bad.RateLimit.RequestsPerMinute = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
	bad.RateLimit.Enabled = false
	assert.NoError(t, bad.Validate())
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.GeminiKey = "AIzaSyA1b2C3d4E5f6G7h8"

	out := cfg.Redacted()
	assert.NotEqual(t, cfg.API.GeminiKey, out.API.GeminiKey)
	assert.Equal(t, "AIzaSyA1b2C3d4E5f6G7h8", cfg.API.GeminiKey, "original must not change")
	assert.Empty(t, out.API.OllamaKey)
}
