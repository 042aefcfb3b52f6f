package client

import (
	"context"

	"google.golang.org/genai"
)

// Client is a single-shot model endpoint: one prompt in, one answer out.
type Client interface {
	// Generate sends one request and waits for the complete answer.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model name.
	Model() string

	// Close releases the underlying connection.
	Close() error
}

// Request describes one model call.
type Request struct {
	// SystemInstruction is passed through the API's native system
	// instruction parameter, not as a user message.
	SystemInstruction string

	// Prompt is the user text. It may be empty when an image is attached.
	Prompt string

	// Image is an optional inline image sent after the prompt.
	Image *Image

	// Schema constrains the answer to JSON matching it.
	Schema *genai.Schema

	// Grounded enables real-time web retrieval (Google Search).
	Grounded bool

	// Temperature overrides the client default when set.
	Temperature *float32
}

// Response is the complete answer to a Request.
type Response struct {
	// Text is the accumulated answer text.
	Text string

	// Citations are the web sources the answer was grounded on, in the
	// order the API returned them. Entries always carry a URI.
	Citations []Citation

	// InputTokens and OutputTokens from API usage metadata, if available.
	InputTokens  int
	OutputTokens int
}

// Citation is one web source backing a grounded answer.
type Citation struct {
	URI   string
	Title string
}

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}
