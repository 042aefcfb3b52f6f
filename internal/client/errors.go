package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrGroundingUnsupported is returned by providers without web retrieval.
	ErrGroundingUnsupported = errors.New("provider does not support grounded requests")

	// ErrEmptyResponse is returned when the model produced no candidates at all.
	ErrEmptyResponse = errors.New("model returned no candidates")
)

// APIError represents an API error with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryableError reports whether a failed call is worth repeating.
// Typed checks come first; the string fallback handles untyped errors from
// the SDKs, which embed the HTTP status in the message.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// The caller gave up or the turn deadline passed; retrying cannot help.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, ErrGroundingUnsupported) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	msg := strings.ToLower(err.Error())
	patterns := []string{
		"429",
		"500",
		"502",
		"503",
		"504",
		"connection refused",
		"connection reset",
		"unavailable",
		"resource_exhausted",
		"rate limit",
		"tls handshake",
		"unexpected eof",
	}
	for _, pattern := range patterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// shortReason condenses an error for retry log lines.
func shortReason(err error) string {
	if err == nil {
		return "API error"
	}
	reason := err.Error()
	switch {
	case strings.Contains(reason, "429"):
		return "rate limit"
	case strings.Contains(reason, "connection"):
		return "connection error"
	case strings.Contains(reason, "timeout"):
		return "timeout"
	case len(reason) > 50:
		return reason[:47] + "..."
	}
	return reason
}
