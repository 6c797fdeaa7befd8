package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, BackoffFactor: 2.0}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "success", nil
	})
	if err != nil || result != "success" {
		t.Errorf("Retry() = %q, %v", result, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary error")
		}
		return "success", nil
	})
	if err != nil || result != "success" {
		t.Errorf("Retry() = %q, %v", result, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_ExceedsMaxAttempts(t *testing.T) {
	calls := 0
	testErr := errors.New("persistent error")
	_, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		return "", testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("expected testErr, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	testErr := errors.New("bad request")
	err := RetryFunc(context.Background(), fastRetry(5), func() error {
		calls++
		return Permanent(testErr)
	})
	if err != testErr {
		t.Errorf("expected the unwrapped error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, InitialBackoff: time.Second}
	calls := 0
	_, err := Retry(ctx, cfg, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var attempts []int
	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) {
		attempts = append(attempts, attempt)
	}
	_ = RetryFunc(context.Background(), cfg, func() error { return errors.New("fail") })
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 10}
	if got := calculateBackoff(1, cfg); got != time.Second {
		t.Errorf("attempt 1 backoff = %v", got)
	}
	if got := calculateBackoff(4, cfg); got != 3*time.Second {
		t.Errorf("backoff should be capped, got %v", got)
	}
}
