package robustness

import (
	"context"

	"nexus/internal/client"
)

// GuardedClient is a client.Client whose calls pass through a breaker.
type GuardedClient struct {
	inner   client.Client
	breaker *CircuitBreaker
}

// Guard wraps inner with breaker.
func Guard(inner client.Client, breaker *CircuitBreaker) *GuardedClient {
	return &GuardedClient{inner: inner, breaker: breaker}
}

func (g *GuardedClient) Generate(ctx context.Context, req *client.Request) (*client.Response, error) {
	var resp *client.Response
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		resp, err = g.inner.Generate(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (g *GuardedClient) Model() string {
	return g.inner.Model()
}

func (g *GuardedClient) Close() error {
	return g.inner.Close()
}

// Breaker exposes the guarding breaker.
func (g *GuardedClient) Breaker() *CircuitBreaker {
	return g.breaker
}
