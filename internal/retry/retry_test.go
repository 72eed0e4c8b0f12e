package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return false }

func TestDo_RetriesOnRetryableError(t *testing.T) {
	attempts := 0
	var retried []int
	cfg := Config{
		MaxAttempts: 3,
		OnRetry:     func(attempt int, err error, delay time.Duration) { retried = append(retried, attempt) },
	}
	_, err := Do(context.Background(), cfg, IsRetryable, func() (int, error) {
		attempts++
		return 0, testNetError{timeout: true}
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", retried)
	}
}

func TestDo_NoRetryOnNonRetryable(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), Config{MaxAttempts: 3}, IsRetryable, func() (struct{}, error) {
		attempts++
		return struct{}{}, errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), Config{MaxAttempts: 3}, nil, func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", testNetError{timeout: true}
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "ok" || attempts != 2 {
		t.Fatalf("got %q after %d attempts, want ok after 2", got, attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	_, err := Do(ctx, Config{MaxAttempts: 3}, IsRetryable, func() (int, error) {
		attempts++
		return 0, testNetError{timeout: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", attempts)
	}
}

func TestDo_CanceledDuringWaitKeepsLastError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}
	cfg.OnRetry = func(int, error, time.Duration) { cancel() }

	want := testNetError{timeout: true}
	_, err := Do(ctx, cfg, IsRetryable, func() (int, error) { return 0, want })
	if err != want {
		t.Fatalf("expected last call error, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, true},
		{testNetError{timeout: true}, true},
		{testNetError{}, false},
		{errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestBackoffDelay(t *testing.T) {
	if delay := backoffDelay(0, time.Second, 1); delay != 0 {
		t.Fatalf("expected zero delay, got %v", delay)
	}
	for attempt := 1; attempt <= 6; attempt++ {
		if d := backoffDelay(100*time.Millisecond, 300*time.Millisecond, attempt); d < 0 || d > 300*time.Millisecond {
			t.Errorf("attempt %d: delay %v outside [0, 300ms]", attempt, d)
		}
	}
}
