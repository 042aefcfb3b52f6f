package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexus/internal/client"
	"nexus/internal/logging"
	"nexus/internal/metrics"
)

// ErrClassification wraps every classifier failure. It is turn-fatal.
var ErrClassification = errors.New("intent classification failed")

// Classifier asks the model which branch a prompt belongs to.
type Classifier struct {
	client  client.Client
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewClassifier creates a classifier. A zero timeout leaves only the
// caller's deadline in effect; m may be nil.
func NewClassifier(c client.Client, timeout time.Duration, m *metrics.Metrics) *Classifier {
	return &Classifier{client: c, timeout: timeout, metrics: m}
}

// Classify sends one request with the fixed instruction and schema and
// parses the answer.
func (c *Classifier) Classify(ctx context.Context, prompt string, image *client.Image) (*Classification, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.Generate(ctx, &client.Request{
		SystemInstruction: Instruction,
		Prompt:            prompt,
		Image:             image,
		Schema:            Schema(),
	})
	c.metrics.ObserveAdapter("classify", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	if strings.TrimSpace(resp.Text) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrClassification)
	}

	classification, err := Parse([]byte(resp.Text))
	if err != nil {
		logging.Debug("unparseable classifier output", "output", resp.Text, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	logging.Debug("classified prompt", "model", c.client.Model(), "branches", classification.Present())
	return classification, nil
}
