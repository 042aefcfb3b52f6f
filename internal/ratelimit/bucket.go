package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket implements a token bucket rate limiter. The balance may go
// negative after Charge, in which case callers wait for it to refill.
type TokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket with the given parameters.
// maxTokens is the maximum number of tokens the bucket can hold.
// refillRate is the number of tokens added per second.
func NewTokenBucket(maxTokens float64, refillRate float64) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// refill adds tokens based on elapsed time since last refill.
func (b *TokenBucket) refill() {
	now := b.now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now
}

// Wait blocks until tokens can be consumed or ctx is done. A request larger
// than the bucket waits for a full bucket.
func (b *TokenBucket) Wait(ctx context.Context, tokens float64) (time.Duration, error) {
	var waited time.Duration
	for {
		b.mu.Lock()
		b.refill()

		need := min(tokens, b.maxTokens)
		if b.tokens >= need {
			b.tokens -= tokens
			b.mu.Unlock()
			return waited, nil
		}

		// Calculate wait time for required tokens
		deficit := need - b.tokens
		waitTime := time.Duration(deficit / b.refillRate * float64(time.Second))
		b.mu.Unlock()

		if waitTime < 10*time.Millisecond {
			waitTime = 10 * time.Millisecond
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return waited, ctx.Err()
		case <-timer.C:
			waited += waitTime
		}
	}
}

// Charge removes tokens without waiting, possibly leaving a debt.
func (b *TokenBucket) Charge(tokens float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	b.tokens -= tokens
}

// Available returns the current number of available tokens.
func (b *TokenBucket) Available() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill()
	return b.tokens
}

// Return returns tokens back to the bucket.
// This is useful when a request is cancelled or fails and the tokens should be released.
func (b *TokenBucket) Return(tokens float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += tokens
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
}
