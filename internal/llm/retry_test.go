package llm

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetryRetriesTransientErrors(t *testing.T) {
	calls := 0
	client := WithRetry(Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection reset by peer")
		}
		return "ok", nil
	}))

	out, err := client.Generate(context.Background(), "p")
	if err != nil || out != "ok" {
		t.Fatalf("got %q, %v", out, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetryDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	client := WithRetry(Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("invalid api key")
	}))

	if _, err := client.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
