package routegen

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy retries fn while Retryable says so, sleeping Delay between
// attempts. MaxAttempts counts every call, including the first.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
	// Sleep defaults to a context-aware timer.
	Sleep   func(ctx context.Context, d time.Duration) error
	OnRetry func(attempt int, err error)
}

func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		last = err
		if attempt == maxAttempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	return newError(KindProviderRateLimited, "retry", errors.Join(ErrMaxRetriesExceeded, last), "gave up after %d attempts", maxAttempts)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
