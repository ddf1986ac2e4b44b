package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitFor(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	var slept time.Duration
	sleep = func(d time.Duration) { slept = d }

	if err := WaitFor(context.Background(), 3*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected to sleep 3s, slept %s", slept)
	}

	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("expected zero duration to return immediately, got %v", err)
	}
}

func TestWaitForCancelled(t *testing.T) {
	original := sleep
	t.Cleanup(func() { sleep = original })

	release := make(chan struct{})
	sleep = func(time.Duration) { <-release }
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt int
		expect  time.Duration
	}{
		{attempt: 0, expect: 0},
		{attempt: 1, expect: time.Second},
		{attempt: 2, expect: 2 * time.Second},
		{attempt: 3, expect: 4 * time.Second},
		{attempt: 5, expect: 10 * time.Second},
	}

	for _, tt := range tests {
		if got := Backoff(time.Second, 10*time.Second, tt.attempt); got != tt.expect {
			t.Fatalf("attempt %d: expected %s, got %s", tt.attempt, tt.expect, got)
		}
	}
}
