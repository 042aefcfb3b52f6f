package client

import (
	"context"
	"fmt"

	"nexus/internal/config"
	"nexus/internal/logging"
	"nexus/internal/security"
)

// Role selects which configured model a client serves.
type Role string

const (
	// RoleClassifier answers the structured intent question.
	RoleClassifier Role = "classifier"
	// RoleSearch answers grounded web-search and video-lookup questions.
	RoleSearch Role = "search"
)

// NewClient creates a client for the given role. Classification follows
// the configured provider; search always uses Gemini because grounding
// needs the Google Search tool.
func NewClient(ctx context.Context, cfg *config.Config, role Role) (Client, error) {
	switch role {
	case RoleSearch:
		logging.Debug("creating client", "role", role, "provider", config.ProviderGemini, "model", cfg.Model.SearchModel)
		return NewGeminiClient(ctx, cfg, cfg.Model.SearchModel)

	case RoleClassifier:
		logging.Debug("creating client", "role", role, "provider", cfg.Model.Provider, "model", cfg.Model.Name)
		switch cfg.Model.Provider {
		case config.ProviderGemini, "":
			return NewGeminiClient(ctx, cfg, cfg.Model.Name)
		case config.ProviderOllama:
			return newOllamaClient(cfg, cfg.Model.Name)
		default:
			return nil, fmt.Errorf("unknown model provider: %s", cfg.Model.Provider)
		}
	}

	return nil, fmt.Errorf("unknown client role: %s", role)
}

// newOllamaClient creates an Ollama client with the given model.
func newOllamaClient(cfg *config.Config, modelName string) (Client, error) {
	// API key is optional for local Ollama
	loadedKey := security.GetAPIKey([]string{"OLLAMA_API_KEY"}, cfg.API.OllamaKey)
	if loadedKey.IsSet() {
		logging.Debug("loaded Ollama API key", "source", loadedKey.Source)
	}

	return NewOllamaClient(OllamaConfig{
		BaseURL:     cfg.API.OllamaBaseURL,
		APIKey:      loadedKey.Value,
		Model:       modelName,
		Temperature: cfg.Model.Temperature,
		HTTPTimeout: cfg.API.Retry.HTTPTimeout,
		Retry: RetryConfig{
			MaxRetries: cfg.API.Retry.MaxRetries,
			RetryDelay: cfg.API.Retry.RetryDelay,
			MaxDelay:   cfg.API.Retry.MaxDelay,
		},
	})
}
