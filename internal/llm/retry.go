package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"cv-optimizer-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retrying struct {
	base Client
}

// WithRetry wraps a client with a single bounded retry on transient
// failures. Non-transient errors surface immediately.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retrying{base: base}
}

func (r retrying) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.base.Generate(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Warn("llm.retry", map[string]any{"error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Generate(ctx, prompt)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "http status 5"), strings.Contains(msg, "server_error"):
		return true
	case strings.Contains(msg, "timeout"):
		return true
	case strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "eof"):
		return true
	}
	return false
}
