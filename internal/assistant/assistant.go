// Package assistant runs one turn: classify, then resolve.
package assistant

import (
	"context"
	"strings"
	"time"

	"nexus/internal/client"
	"nexus/internal/intent"
	"nexus/internal/logging"
	"nexus/internal/metrics"
	"nexus/internal/resolver"
	"nexus/internal/response"

	"github.com/google/uuid"
)

// TextFatal is the whole answer when classification fails.
const TextFatal = "Sorry, I encountered an error. Please try again."

// Turn is one user request.
type Turn struct {
	Prompt string
	Image  *client.Image
}

// Classifier decides the branch of a prompt.
type Classifier interface {
	Classify(ctx context.Context, prompt string, image *client.Image) (*intent.Classification, error)
}

// Resolver answers a classified prompt.
type Resolver interface {
	Run(ctx context.Context, prompt string, c *intent.Classification) resolver.Resolution
}

// Assistant is safe for concurrent turns; they share no mutable state.
type Assistant struct {
	classifier Classifier
	resolver   Resolver
	metrics    *metrics.Metrics
}

// New creates an assistant. m may be nil.
func New(c Classifier, r Resolver, m *metrics.Metrics) *Assistant {
	return &Assistant{classifier: c, resolver: r, metrics: m}
}

// Respond runs a turn. It always returns a response; failures become
// plain-sentence answers.
func (a *Assistant) Respond(ctx context.Context, turn Turn) response.Response {
	start := time.Now()
	log := logging.With("turn", uuid.New().String())
	log.Info("turn started", "prompt_len", len(turn.Prompt), "image", turn.Image != nil)

	classification, err := a.classifier.Classify(ctx, turn.Prompt, turn.Image)
	if err != nil {
		log.Error("classification failed", "error", err)
		a.metrics.ObserveTurn("classification", metrics.OutcomeFailed, time.Since(start))
		return response.Text(TextFatal)
	}

	res := a.resolver.Run(ctx, turn.Prompt, classification)

	outcome := metrics.OutcomeOK
	if res.Degraded {
		outcome = metrics.OutcomeDegraded
	}
	elapsed := time.Since(start)
	a.metrics.ObserveTurn(string(res.Kind), outcome, elapsed)
	log.Info("turn finished",
		"branch", res.Kind,
		"outcome", outcome,
		"actions", len(res.Response.Actions),
		"duration", elapsed)

	return res.Response
}

// ImagePrompt adjusts the prompt when an image is attached: it defaults
// to a describe request, and otherwise points at the attachment.
func ImagePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "Describe this image."
	}
	return prompt + " (see attached image)"
}
