package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/streamkit/status"
)

func TestDo_SucceedsOnFirstAttempt(t *testing.T) {
	cfg := Default()
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	cfg := Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", status.Unavailable("backend")
		}
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_ExceedsMaxAttempts(t *testing.T) {
	cfg := Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
	callCount := 0
	testErr := status.Unavailable("backend")

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", testErr
	})

	if !errors.Is(err, testErr) {
		t.Errorf("expected testErr, got %v", err)
	}
	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Errorf("expected ErrMaxAttemptsExceeded in the chain, got %v", err)
	}
	if status.CodeOf(err) != status.CodeUnavailable {
		t.Errorf("expected UNAVAILABLE through the wrap, got %v", status.CodeOf(err))
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	cfg := Config{
		MaxAttempts:    5,
		InitialBackoff: time.Millisecond,
	}
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", status.NotFound("topic", "t1")
	})

	if status.CodeOf(err) != status.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", callCount)
	}
}

func TestDo_RespectsContext(t *testing.T) {
	cfg := Config{
		MaxAttempts:    10,
		InitialBackoff: 100 * time.Millisecond,
		BackoffFactor:  2.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	callCount := 0
	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", status.Unavailable("backend")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if callCount >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", callCount)
	}
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			attempts = append(attempts, attempt)
		},
	}

	_, _ = Do(context.Background(), cfg, func() (string, error) {
		return "", status.Unavailable("backend")
	})

	if len(attempts) != 2 {
		t.Fatalf("expected 2 retry callbacks, got %d", len(attempts))
	}
	if attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("expected attempts [1 2], got %v", attempts)
	}
}

func TestNone_NeverRetries(t *testing.T) {
	callCount := 0
	_, err := Do(context.Background(), None(), func() (string, error) {
		callCount++
		return "", status.Unavailable("backend")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Errorf("expected the bare error from a single-attempt policy, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestDoFunc(t *testing.T) {
	callCount := 0
	err := DoFunc(context.Background(), Config{MaxAttempts: 2, InitialBackoff: time.Millisecond}, func() error {
		callCount++
		if callCount < 2 {
			return status.Unavailable("backend")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls, got %d", callCount)
	}
}

func TestCalculateBackoff_Caps(t *testing.T) {
	cfg := Config{
		InitialBackoff: time.Second,
		MaxBackoff:     2 * time.Second,
		BackoffFactor:  10.0,
	}
	if got := calculateBackoff(5, cfg); got > cfg.MaxBackoff {
		t.Errorf("backoff %v exceeds cap %v", got, cfg.MaxBackoff)
	}
}
