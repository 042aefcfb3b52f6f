package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nexus/internal/logging"
	"nexus/internal/security"

	"github.com/ollama/ollama/api"
	"google.golang.org/genai"
)

// OllamaConfig holds configuration for Ollama API client.
type OllamaConfig struct {
	BaseURL     string        // Default: "http://localhost:11434"
	APIKey      string        // Optional, for remote Ollama servers with auth
	Model       string        // e.g., "llama3.2", "qwen2.5"
	Temperature float32       // Temperature for generation
	HTTPTimeout time.Duration // HTTP request timeout (default: 120s)
	Retry       RetryConfig
}

// OllamaClient classifies with a local model. It cannot ground answers in
// web search, so it only serves the classification role.
type OllamaClient struct {
	client *api.Client
	config OllamaConfig
}

// authTransport adds Authorization header to HTTP requests.
type authTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(reqClone)
}

// NewOllamaClient creates a new Ollama API client.
func NewOllamaClient(config OllamaConfig) (*OllamaClient, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 120 * time.Second
	}
	config.Retry = config.Retry.withDefaults()

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BaseURL: %w", err)
	}

	// Warn if using unencrypted HTTP to a non-localhost host
	if baseURL.Scheme == "http" {
		host := baseURL.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			logging.Warn("Ollama connection uses unencrypted HTTP to remote host",
				"host", host,
				"recommendation", "use HTTPS for remote Ollama servers")
		}
	}

	httpClient := security.NewHTTPClient(config.HTTPTimeout)
	if config.APIKey != "" {
		httpClient.Transport = &authTransport{
			base:   httpClient.Transport,
			apiKey: config.APIKey,
		}
	}

	return &OllamaClient{
		client: api.NewClient(baseURL, httpClient),
		config: config,
	}, nil
}

// Generate sends one non-streaming chat request.
func (c *OllamaClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req.Grounded {
		return nil, ErrGroundingUnsupported
	}

	chatReq, err := c.buildChatRequest(req)
	if err != nil {
		return nil, err
	}

	return withRetry(ctx, c.config.Retry, "ollama", func(ctx context.Context) (*Response, error) {
		out := &Response{}
		var text strings.Builder

		err := c.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			text.WriteString(resp.Message.Content)
			if resp.Done {
				out.InputTokens = resp.PromptEvalCount
				out.OutputTokens = resp.EvalCount
			}
			return nil
		})
		if err != nil {
			return nil, wrapOllamaError(err)
		}

		out.Text = text.String()
		return out, nil
	})
}

func (c *OllamaClient) buildChatRequest(req *Request) (*api.ChatRequest, error) {
	var messages []api.Message
	if req.SystemInstruction != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.SystemInstruction})
	}

	user := api.Message{Role: "user", Content: req.Prompt}
	if req.Image != nil {
		user.Images = []api.ImageData{api.ImageData(req.Image.Data)}
	}
	messages = append(messages, user)

	temperature := c.config.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	chatReq := &api.ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   Ptr(false),
		Options: map[string]any{
			"temperature": temperature,
		},
	}

	if req.Schema != nil {
		format, err := json.Marshal(JSONSchema(req.Schema))
		if err != nil {
			return nil, fmt.Errorf("encode response schema: %w", err)
		}
		chatReq.Format = format
	}

	return chatReq, nil
}

// JSONSchema converts a genai schema to a plain JSON Schema document, which
// is what Ollama's structured output expects.
func JSONSchema(s *genai.Schema) map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{}
	typ := strings.ToLower(string(s.Type))
	if typ != "" {
		if s.Nullable != nil && *s.Nullable {
			out["type"] = []string{typ, "null"}
		} else {
			out["type"] = typ
		}
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = JSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = JSONSchema(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

// wrapOllamaError maps SDK status errors onto APIError so retry decisions
// see the HTTP status, and adds a hint when the server is not running.
func wrapOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{StatusCode: statusErr.StatusCode, Message: statusErr.ErrorMessage}
	}

	if strings.Contains(err.Error(), "connection refused") {
		return fmt.Errorf("Ollama server is not running (start it with: ollama serve): %w", err)
	}

	return err
}

// Model returns the model name.
func (c *OllamaClient) Model() string {
	return c.config.Model
}

// Close closes the client.
func (c *OllamaClient) Close() error {
	return nil
}
