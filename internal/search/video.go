package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nexus/internal/cache"
	"nexus/internal/client"
	"nexus/internal/metrics"
	"nexus/internal/video"
)

// VideoPrompt is the lookup question for query.
func VideoPrompt(query string) string {
	return fmt.Sprintf(`Search for a YouTube video about "%s". Return ONLY the full raw URL of the top video result, like "https://www.youtube.com/watch?v=...". Do not add any other text.`, query)
}

// VideoFinder asks a grounded model for the top video URL.
type VideoFinder struct {
	client  client.Client
	cache   cache.Store
	metrics *metrics.Metrics
}

// NewVideoFinder creates a finder. store and m may be nil.
func NewVideoFinder(c client.Client, store cache.Store, m *metrics.Metrics) *VideoFinder {
	return &VideoFinder{client: c, cache: store, metrics: m}
}

// FindVideo returns the model's trimmed answer, which should be a single URL.
// Only answers that contain a video id are cached.
func (f *VideoFinder) FindVideo(ctx context.Context, query string) (string, error) {
	key := cache.Key(namespaceVideo, query)
	if cached, ok := lookup(ctx, f.cache, f.metrics, namespaceVideo, key); ok {
		return cached, nil
	}

	start := time.Now()
	resp, err := f.client.Generate(ctx, &client.Request{Prompt: VideoPrompt(query), Grounded: true})
	f.metrics.ObserveAdapter("video_lookup", err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("video lookup: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if _, ok := video.ExtractID(text); ok {
		store(ctx, f.cache, key, text)
	}
	return text, nil
}
