package client

import (
	"context"
	"fmt"
	"strings"

	"nexus/internal/config"
	"nexus/internal/logging"
	"nexus/internal/security"

	"google.golang.org/genai"
)

// GeminiClient wraps the Google Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	retry       RetryConfig
}

// NewGeminiClient creates a Gemini client bound to one model name.
func NewGeminiClient(ctx context.Context, cfg *config.Config, model string) (*GeminiClient, error) {
	// Try GeminiKey first, then legacy APIKey
	loadedKey := security.GetGeminiKey(cfg.API.GeminiKey, cfg.API.APIKey)

	if !loadedKey.IsSet() {
		return nil, fmt.Errorf("Gemini API key required.\n\nGet your free API key at: https://aistudio.google.com/apikey\n\nThen export NEXUS_GEMINI_KEY=<your-api-key>")
	}

	// Log key source for debugging (without exposing the key)
	logging.Debug("loaded Gemini API key",
		"source", loadedKey.Source,
		"model", model)

	if err := security.ValidateKeyFormat(loadedKey.Value); err != nil {
		return nil, fmt.Errorf("invalid Gemini API key: %w", err)
	}

	clientConfig := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     loadedKey.Value,
		HTTPClient: security.NewHTTPClient(cfg.API.Retry.HTTPTimeout),
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: cfg.Model.Temperature,
		retry: RetryConfig{
			MaxRetries: cfg.API.Retry.MaxRetries,
			RetryDelay: cfg.API.Retry.RetryDelay,
			MaxDelay:   cfg.API.Retry.MaxDelay,
		}.withDefaults(),
	}, nil
}

// Generate sends one request and returns the complete answer.
func (c *GeminiClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	contents := []*genai.Content{buildGeminiContent(req)}
	genConfig := c.buildConfig(req)

	return withRetry(ctx, c.retry, "gemini", func(ctx context.Context) (*Response, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genConfig)
		if err != nil {
			return nil, err
		}
		return convertGeminiResponse(resp)
	})
}

func (c *GeminiClient) buildConfig(req *Request) *genai.GenerateContentConfig {
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: Ptr(temperature),
	}

	if req.SystemInstruction != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}

	if req.Schema != nil {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = req.Schema
	}

	if req.Grounded {
		genConfig.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return genConfig
}

// buildGeminiContent packs the prompt and optional image into one user turn.
func buildGeminiContent(req *Request) *genai.Content {
	var parts []*genai.Part
	if req.Prompt != "" {
		parts = append(parts, genai.NewPartFromText(req.Prompt))
	}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	// The API rejects a turn without parts.
	if len(parts) == 0 {
		parts = append(parts, genai.NewPartFromText(" "))
	}
	return genai.NewContentFromParts(parts, genai.RoleUser)
}

func convertGeminiResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	out := &Response{
		Text: resp.Text(),
	}

	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	if meta := resp.Candidates[0].GroundingMetadata; meta != nil {
		for _, chunk := range meta.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			uri := strings.TrimSpace(chunk.Web.URI)
			if uri == "" {
				continue
			}
			out.Citations = append(out.Citations, Citation{
				URI:   uri,
				Title: strings.TrimSpace(chunk.Web.Title),
			})
		}
	}

	return out, nil
}

// Model returns the model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Close closes the client.
func (c *GeminiClient) Close() error {
	// genai.Client doesn't have a Close method
	return nil
}
