package robustness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus/internal/client"
	"nexus/internal/logging"

	"github.com/sony/gobreaker"
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// State is the breaker position as reported to callers.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	}
	return "unknown"
}

// Settings configure a breaker.
type Settings struct {
	Name             string
	FailureThreshold uint32        // Consecutive failures before opening
	Cooldown         time.Duration // Open duration before a probe is allowed

	// OnStateChange is called after every transition.
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker guards a model client. After FailureThreshold consecutive
// failures calls fail fast with ErrCircuitOpen until Cooldown passes.
// Cancellation by the caller is not counted as a failure.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker creates a breaker backed by gobreaker.
func NewCircuitBreaker(s Settings) *CircuitBreaker {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	cooldown := s.Cooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	return &CircuitBreaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        s.Name,
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logging.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
				if s.OnStateChange != nil {
					s.OnStateChange(name, convertState(from), convertState(to))
				}
			},
		}),
	}
}

// Execute runs fn under the breaker.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	var passthrough error

	_, err := b.cb.Execute(func() (interface{}, error) {
		err := fn(ctx)
		if err != nil && !countsAsFailure(ctx, err) {
			passthrough = err
			return nil, nil
		}
		return nil, err
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, b.cb.Name())
	}
	if err != nil {
		return err
	}
	return passthrough
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() State {
	return convertState(b.cb.State())
}

// Name returns the breaker name.
func (b *CircuitBreaker) Name() string {
	return b.cb.Name()
}

func countsAsFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, client.ErrGroundingUnsupported) {
		return false
	}
	return true
}

func convertState(s gobreaker.State) State {
	switch s {
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	}
	return StateClosed
}
