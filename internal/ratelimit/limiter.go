// Package ratelimit keeps model calls under a requests-per-minute and
// tokens-per-minute quota.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"nexus/internal/config"
)

// imageTokens is what Gemini bills for one inline image.
const imageTokens = 258

// Limiter provides rate limiting for API requests.
type Limiter struct {
	requestBucket *TokenBucket
	tokenBucket   *TokenBucket // nil when tokens are not limited
	mu            sync.Mutex

	// Statistics
	totalRequests int64
	waitedTotal   time.Duration
	totalTokens   int64
}

// NewLimiter creates a limiter from cfg. A zero TokensPerMinute leaves
// token usage unlimited.
func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = config.DefaultRequestsPerMinute
	}

	// Burst size determines max tokens in bucket
	burst := float64(cfg.BurstSize)
	if burst < 1 {
		burst = 1
	}

	l := &Limiter{
		requestBucket: NewTokenBucket(burst, float64(rpm)/60.0),
	}
	if cfg.TokensPerMinute > 0 {
		// Token bucket burst is a percentage of per-minute limit
		l.tokenBucket = NewTokenBucket(float64(cfg.TokensPerMinute)/10.0, float64(cfg.TokensPerMinute)/60.0)
	}
	return l
}

// Acquire blocks until a request slot and estimatedTokens of capacity are
// available, or ctx is done.
func (l *Limiter) Acquire(ctx context.Context, estimatedTokens int64) error {
	waited, err := l.requestBucket.Wait(ctx, 1)
	if err != nil {
		return err
	}

	if l.tokenBucket != nil && estimatedTokens > 0 {
		w, err := l.tokenBucket.Wait(ctx, float64(estimatedTokens))
		waited += w
		if err != nil {
			l.requestBucket.Return(1)
			return err
		}
	}

	l.mu.Lock()
	l.totalRequests++
	l.waitedTotal += waited
	l.mu.Unlock()
	return nil
}

// Settle replaces the estimate with the tokens a call actually used.
// Calls without usage metadata keep the estimate.
func (l *Limiter) Settle(estimatedTokens, actualTokens int64) {
	if actualTokens <= 0 {
		actualTokens = estimatedTokens
	}

	l.mu.Lock()
	l.totalTokens += actualTokens
	l.mu.Unlock()

	if l.tokenBucket == nil {
		return
	}
	switch diff := actualTokens - estimatedTokens; {
	case diff > 0:
		l.tokenBucket.Charge(float64(diff))
	case diff < 0:
		l.tokenBucket.Return(float64(-diff))
	}
}

// Release gives back the estimate of a call that never reached the model.
func (l *Limiter) Release(estimatedTokens int64) {
	l.requestBucket.Return(1)
	if l.tokenBucket != nil && estimatedTokens > 0 {
		l.tokenBucket.Return(float64(estimatedTokens))
	}
}

// Stats returns rate limiter statistics.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{
		TotalRequests:     l.totalRequests,
		TotalTokens:       l.totalTokens,
		Waited:            l.waitedTotal,
		AvailableRequests: l.requestBucket.Available(),
	}
	if l.tokenBucket != nil {
		s.AvailableTokens = l.tokenBucket.Available()
	}
	return s
}

// Stats holds rate limiter statistics.
type Stats struct {
	TotalRequests     int64
	TotalTokens       int64
	Waited            time.Duration
	AvailableRequests float64
	AvailableTokens   float64
}

// EstimateTokens estimates the number of tokens for a message.
// This is a rough estimate based on character count.
func EstimateTokens(message string) int64 {
	// Rough estimate: ~4 characters per token
	return int64(len(message) / 4)
}
