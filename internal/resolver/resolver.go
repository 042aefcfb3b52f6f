// Package resolver turns a classification into the user-facing response.
package resolver

import (
	"context"
	"strings"
	"time"

	"nexus/internal/intent"
	"nexus/internal/logging"
	"nexus/internal/response"
	"nexus/internal/search"
)

// Searcher runs a grounded web query.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Result, error)
}

// VideoFinder asks for the top video URL for a query.
type VideoFinder interface {
	FindVideo(ctx context.Context, query string) (string, error)
}

// Options configure a Resolver. Nil adapters make their branches degrade.
type Options struct {
	Searcher      Searcher
	Videos        VideoFinder
	SearchTimeout time.Duration
	VideoTimeout  time.Duration
}

// Resolver is stateless apart from its adapters and safe for concurrent use.
type Resolver struct {
	opts Options
}

// New creates a resolver.
func New(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolution is a resolved turn with the facts needed for metrics.
type Resolution struct {
	Kind     intent.Kind
	Degraded bool // a branch fell back to its degraded response
	Response response.Response
}

// Select returns the first usable branch in priority order, or
// intent.Unrecognized.
func (r *Resolver) Select(c *intent.Classification) intent.Intent {
	if c == nil {
		return intent.Unrecognized{}
	}
	for _, rule := range rules {
		if in, ok := rule.match(c); ok {
			return in
		}
	}
	return intent.Unrecognized{}
}

// Resolve builds the response for prompt.
func (r *Resolver) Resolve(ctx context.Context, prompt string, c *intent.Classification) response.Response {
	return r.Run(ctx, prompt, c).Response
}

// Run is Resolve with the branch and degradation reported alongside.
func (r *Resolver) Run(ctx context.Context, prompt string, c *intent.Classification) Resolution {
	selected := r.Select(c)
	logging.Debug("selected branch", "kind", selected.Kind())

	for _, rule := range rules {
		if rule.kind == selected.Kind() {
			resp, degraded := rule.handle(r, ctx, prompt, selected)
			return Resolution{Kind: rule.kind, Degraded: degraded, Response: resp}
		}
	}

	return Resolution{
		Kind:     intent.KindUnrecognized,
		Degraded: strings.TrimSpace(prompt) != "",
		Response: fallback(prompt),
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
