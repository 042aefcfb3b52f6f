package config

import "time"

// Config represents the main application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Model     ModelConfig     `yaml:"model"`
	Timeouts  TimeoutsConfig  `yaml:"timeouts"`
	Cache     CacheConfig     `yaml:"cache"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`

	// Runtime version information
	Version string `yaml:"-"`
}

// APIConfig holds API-related settings.
type APIConfig struct {
	// Legacy field - for backwards compatibility
	APIKey string `yaml:"api_key,omitempty"`

	GeminiKey string `yaml:"gemini_key,omitempty"`
	OllamaKey string `yaml:"ollama_key,omitempty"` // Optional, for remote Ollama servers with auth

	// Ollama server URL (default: http://localhost:11434)
	OllamaBaseURL string `yaml:"ollama_base_url,omitempty"`

	// Retry configuration for API calls
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig holds retry settings for API calls.
type RetryConfig struct {
	MaxRetries  int           `yaml:"max_retries"`  // Maximum number of retry attempts
	RetryDelay  time.Duration `yaml:"retry_delay"`  // Initial delay between retries
	MaxDelay    time.Duration `yaml:"max_delay"`    // Backoff cap
	HTTPTimeout time.Duration `yaml:"http_timeout"` // HTTP request timeout (Ollama)
}

// ModelConfig holds model-related settings.
type ModelConfig struct {
	// Provider used for intent classification: gemini or ollama.
	// Grounded search and video lookup always use Gemini.
	Provider string `yaml:"provider"`

	Name        string  `yaml:"name"`         // Classifier model
	SearchModel string  `yaml:"search_model"` // Grounded search / video lookup model
	Temperature float32 `yaml:"temperature"`
}

// TimeoutsConfig bounds every adapter call of a turn.
type TimeoutsConfig struct {
	Classify    time.Duration `yaml:"classify"`     // Turn-fatal when exceeded
	VideoLookup time.Duration `yaml:"video_lookup"` // Branch-local degradation when exceeded
	Search      time.Duration `yaml:"search"`       // Branch-local degradation when exceeded
}

// CacheConfig holds lookup cache settings for the secondary adapters.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Backend   string        `yaml:"backend"`    // memory or redis
	Capacity  int           `yaml:"capacity"`   // memory backend only
	TTL       time.Duration `yaml:"ttl"`        // Time to live for cache entries
	RedisURL  string        `yaml:"redis_url"`  // redis://host:6379/0
	KeyPrefix string        `yaml:"key_prefix"` // redis backend only
}

// BreakerConfig holds circuit breaker settings for model clients.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"`
	FailureThreshold uint32        `yaml:"failure_threshold"` // Consecutive failures before opening
	Cooldown         time.Duration `yaml:"cooldown"`          // Open state duration before probing
}

// RateLimitConfig bounds calls to Gemini, shared by every Gemini client.
type RateLimitConfig struct {
	Enabled           bool  `yaml:"enabled"`
	RequestsPerMinute int   `yaml:"requests_per_minute"`
	TokensPerMinute   int64 `yaml:"tokens_per_minute"` // 0 disables token limiting
	BurstSize         int   `yaml:"burst_size"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BodyLimit   int    `yaml:"body_limit"`   // bytes, covers attached images
	CORSOrigins string `yaml:"cors_origins"` // comma-separated; empty disables CORS
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // Logging level: debug, info, warn, error
}

// OutputConfig holds presentation settings shared by the CLI and the chat.
type OutputConfig struct {
	AutoOpen bool `yaml:"auto_open"` // Invoke the primary action automatically
	Markdown bool `yaml:"markdown"`  // Render model text as markdown
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			OllamaBaseURL: DefaultOllamaBaseURL,
			Retry: RetryConfig{
				MaxRetries:  DefaultMaxRetries,
				RetryDelay:  DefaultRetryDelay,
				MaxDelay:    DefaultMaxRetryDelay,
				HTTPTimeout: DefaultHTTPTimeout,
			},
		},
		Model: ModelConfig{
			Provider:    ProviderGemini,
			Name:        DefaultModel,
			SearchModel: DefaultModel,
			Temperature: 0,
		},
		Timeouts: TimeoutsConfig{
			Classify:    DefaultClassifyTimeout,
			VideoLookup: DefaultVideoLookupTimeout,
			Search:      DefaultSearchTimeout,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   CacheBackendMemory,
			Capacity:  DefaultCacheSize,
			TTL:       DefaultCacheTTL,
			KeyPrefix: "nexus:",
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: DefaultBreakerThreshold,
			Cooldown:         DefaultBreakerCooldown,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: DefaultRequestsPerMinute,
			TokensPerMinute:   DefaultTokensPerMinute,
			BurstSize:         DefaultRateLimitBurst,
		},
		Server: ServerConfig{
			Addr:      DefaultServerAddr,
			BodyLimit: DefaultBodyLimit,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			AutoOpen: false,
			Markdown: true,
		},
	}
}
