package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"nexus/internal/security"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from the default config file and environment variables.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from path (or the default location when
// path is empty) and applies environment overrides. A missing file at the
// default location is not an error; a missing explicit path is.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	loadFromEnv(cfg)

	return cfg, nil
}

// getConfigPath returns the path to the config file.
func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "nexus", "config.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	if runtime.GOOS == "darwin" {
		appSupport := filepath.Join(homeDir, "Library", "Application Support", "nexus", "config.yaml")
		if _, err := os.Stat(appSupport); err == nil {
			return appSupport
		}
	}

	return filepath.Join(homeDir, ".config", "nexus", "config.yaml")
}

// GetConfigPath returns the path to the config file (exported for external use).
func GetConfigPath() string {
	return getConfigPath()
}

// GetConfigDir returns the directory holding the config file and logs.
func GetConfigDir() string {
	path := getConfigPath()
	if path == "" {
		return os.TempDir()
	}
	return filepath.Dir(path)
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Expand environment variables in the config file
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// loadFromEnv applies environment overrides. API keys are not copied here:
// security.GetGeminiKey reads the environment directly so the key source
// can be reported.
func loadFromEnv(cfg *Config) {
	if model := os.Getenv("NEXUS_MODEL"); model != "" {
		cfg.Model.Name = model
	}

	if model := os.Getenv("NEXUS_SEARCH_MODEL"); model != "" {
		cfg.Model.SearchModel = model
	}

	if provider := os.Getenv("NEXUS_PROVIDER"); provider != "" {
		cfg.Model.Provider = strings.ToLower(provider)
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.API.OllamaBaseURL = host
	}

	if redisURL := os.Getenv("NEXUS_REDIS_URL"); redisURL != "" {
		cfg.Cache.RedisURL = redisURL
		cfg.Cache.Backend = CacheBackendRedis
		cfg.Cache.Enabled = true
	}

	if addr := os.Getenv("NEXUS_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	if level := os.Getenv("NEXUS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Grounded search and video lookup need Gemini whatever the classifier is.
	if !security.GetGeminiKey(c.API.GeminiKey, c.API.APIKey).IsSet() {
		return ErrMissingAuth
	}

	switch c.Model.Provider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("%w: unknown model provider %q", ErrInvalidConfig, c.Model.Provider)
	}

	if c.Model.Name == "" || c.Model.SearchModel == "" {
		return fmt.Errorf("%w: model names must not be empty", ErrInvalidConfig)
	}

	if c.Timeouts.Classify <= 0 || c.Timeouts.VideoLookup <= 0 || c.Timeouts.Search <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}

	if c.Cache.Enabled {
		switch c.Cache.Backend {
		case CacheBackendMemory:
			if c.Cache.Capacity < 1 {
				return fmt.Errorf("%w: cache capacity must be at least 1", ErrInvalidConfig)
			}
		case CacheBackendRedis:
			if c.Cache.RedisURL == "" {
				return fmt.Errorf("%w: cache.redis_url is required for the redis backend", ErrInvalidConfig)
			}
		default:
			return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute < 1 || c.RateLimit.TokensPerMinute < 0) {
		return fmt.Errorf("%w: rate_limit.requests_per_minute must be at least 1", ErrInvalidConfig)
	}

	return nil
}

// Redacted returns a copy safe to print, with API keys masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.API.APIKey = maskIfSet(c.API.APIKey)
	out.API.GeminiKey = maskIfSet(c.API.GeminiKey)
	out.API.OllamaKey = maskIfSet(c.API.OllamaKey)
	return &out
}

func maskIfSet(key string) string {
	if key == "" {
		return ""
	}
	return security.MaskKey(key)
}

// Error types for configuration validation.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrMissingAuth   ConfigError = "missing authentication: set NEXUS_GEMINI_KEY or GEMINI_API_KEY, or api.gemini_key in the config file"
	ErrInvalidConfig ConfigError = "invalid configuration"
)
