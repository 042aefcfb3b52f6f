package ratelimit

import (
	"context"
	"errors"

	"nexus/internal/client"
	"nexus/internal/logging"
)

// LimitedClient is a client.Client that waits for quota before each call.
type LimitedClient struct {
	inner   client.Client
	limiter *Limiter
}

// Limit wraps inner with limiter.
func Limit(inner client.Client, limiter *Limiter) *LimitedClient {
	return &LimitedClient{inner: inner, limiter: limiter}
}

func (c *LimitedClient) Generate(ctx context.Context, req *client.Request) (*client.Response, error) {
	estimate := estimateRequest(req)
	if err := c.limiter.Acquire(ctx, estimate); err != nil {
		logging.Debug("rate limit wait aborted", "model", c.inner.Model(), "error", err)
		return nil, err
	}

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, client.ErrGroundingUnsupported) {
			c.limiter.Release(estimate)
		}
		return nil, err
	}

	c.limiter.Settle(estimate, int64(resp.InputTokens+resp.OutputTokens))
	return resp, nil
}

func (c *LimitedClient) Model() string {
	return c.inner.Model()
}

func (c *LimitedClient) Close() error {
	return c.inner.Close()
}

// Limiter exposes the shared limiter.
func (c *LimitedClient) Limiter() *Limiter {
	return c.limiter
}

func estimateRequest(req *client.Request) int64 {
	n := EstimateTokens(req.SystemInstruction) + EstimateTokens(req.Prompt)
	if req.Image != nil {
		n += imageTokens
	}
	return n
}
