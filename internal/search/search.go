// Package search runs grounded web queries: free-text answers with sources,
// and the single-URL video lookup.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nexus/internal/cache"
	"nexus/internal/client"
	"nexus/internal/logging"
	"nexus/internal/metrics"
	"nexus/internal/response"
)

// Cache namespaces.
const (
	namespaceSearch = "search"
	namespaceVideo  = "video"
)

// Result is a grounded answer.
type Result struct {
	Text    string            `json:"text"`
	Sources []response.Source `json:"sources,omitempty"`
}

// Searcher answers queries with web retrieval enabled.
type Searcher struct {
	client  client.Client
	cache   cache.Store
	metrics *metrics.Metrics
}

// NewSearcher creates a searcher. store and m may be nil.
func NewSearcher(c client.Client, store cache.Store, m *metrics.Metrics) *Searcher {
	return &Searcher{client: c, cache: store, metrics: m}
}

// Search sends query as the prompt with grounding enabled.
func (s *Searcher) Search(ctx context.Context, query string) (*Result, error) {
	key := cache.Key(namespaceSearch, query)
	if cached, ok := lookup(ctx, s.cache, s.metrics, namespaceSearch, key); ok {
		var result Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	start := time.Now()
	resp, err := s.client.Generate(ctx, &client.Request{Prompt: query, Grounded: true})
	s.metrics.ObserveAdapter("search", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("grounded search: %w", err)
	}

	result := &Result{
		Text:    resp.Text,
		Sources: Sources(resp.Citations),
	}

	if strings.TrimSpace(result.Text) != "" || len(result.Sources) > 0 {
		if data, err := json.Marshal(result); err == nil {
			store(ctx, s.cache, key, string(data))
		}
	}

	return result, nil
}

// Sources converts citations, dropping entries without a URI and repeats
// of one already seen. A missing title falls back to the URI.
func Sources(citations []client.Citation) []response.Source {
	var out []response.Source
	seen := make(map[string]bool, len(citations))
	for _, c := range citations {
		uri := strings.TrimSpace(c.URI)
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = uri
		}
		out = append(out, response.Source{URI: uri, Title: title})
	}
	return out
}

func lookup(ctx context.Context, store cache.Store, m *metrics.Metrics, namespace, key string) (string, bool) {
	if store == nil {
		return "", false
	}
	value, ok, err := store.Get(ctx, key)
	if err != nil {
		logging.Warn("cache read failed", "namespace", namespace, "error", err)
		return "", false
	}
	m.ObserveCache(namespace, ok)
	return value, ok
}

func store(ctx context.Context, s cache.Store, key, value string) {
	if s == nil {
		return
	}
	if err := s.Set(ctx, key, value); err != nil {
		logging.Warn("cache write failed", "key", key, "error", err)
	}
}
