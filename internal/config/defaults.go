package config

import "time"

// Providers for intent classification.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Default configuration values.
const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultOllamaBaseURL = "http://localhost:11434"

	// Retry settings
	DefaultMaxRetries    = 2
	DefaultRetryDelay    = 1 * time.Second
	DefaultMaxRetryDelay = 10 * time.Second
	DefaultHTTPTimeout   = 60 * time.Second

	// Adapter timeouts
	DefaultClassifyTimeout    = 30 * time.Second
	DefaultVideoLookupTimeout = 20 * time.Second
	DefaultSearchTimeout      = 30 * time.Second

	// Cache settings
	DefaultCacheSize = 500
	DefaultCacheTTL  = 30 * time.Minute

	// Circuit breaker
	DefaultBreakerThreshold = 5
	DefaultBreakerCooldown  = 30 * time.Second

	// Gemini quota
	DefaultRequestsPerMinute = 60
	DefaultTokensPerMinute   = 1000000
	DefaultRateLimitBurst    = 10

	// HTTP API
	DefaultServerAddr = ":8080"
	DefaultBodyLimit  = 10 * 1024 * 1024
)
