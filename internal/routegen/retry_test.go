package routegen

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBusy = errors.New("busy")

func TestRetryPolicySucceedsAfterRetryable(t *testing.T) {
	calls := 0
	var slept []time.Duration
	p := RetryPolicy{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
		Retryable:   func(err error) bool { return errors.Is(err, errBusy) },
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}
	err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
	if len(slept) != 2 || slept[0] != 5*time.Second {
		t.Fatalf("sleeps: want=[5s 5s] got=%v", slept)
	}
}

func TestRetryPolicyExhausted(t *testing.T) {
	calls := 0
	p := RetryPolicy{MaxAttempts: 3, Retryable: func(error) bool { return true }, Sleep: noSleep}
	err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		return errBusy
	})
	if calls != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Fatalf("want max retries exceeded, got %v", err)
	}
	if !errors.Is(err, errBusy) {
		t.Fatalf("last error must stay in the chain, got %v", err)
	}
	if KindOf(err) != KindProviderRateLimited {
		t.Fatalf("kind: want=%s got=%s", KindProviderRateLimited, KindOf(err))
	}
}

func TestRetryPolicyNonRetryablePropagatesImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("bad request")
	p := RetryPolicy{MaxAttempts: 5, Retryable: func(err error) bool { return errors.Is(err, errBusy) }, Sleep: noSleep}
	err := p.Do(context.Background(), func(context.Context, int) error {
		calls++
		return fatal
	})
	if calls != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
	if err != fatal {
		t.Fatalf("err: want=%v got=%v", fatal, err)
	}
}

func TestRetryPolicyStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := RetryPolicy{MaxAttempts: 5, Delay: time.Hour, Retryable: func(error) bool { return true }}
	err := p.Do(ctx, func(context.Context, int) error {
		calls++
		cancel()
		return errBusy
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
}
