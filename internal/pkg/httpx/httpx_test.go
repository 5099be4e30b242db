package httpx

import (
	"context"
	"fmt"
	"testing"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestStatusCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("send: %w", statusErr(429))
	if got := StatusCode(err); got != 429 {
		t.Fatalf("StatusCode: want=429 got=%d", got)
	}
	if !IsRateLimited(err) {
		t.Fatalf("IsRateLimited: want=true")
	}
	if IsRateLimited(statusErr(500)) {
		t.Fatalf("IsRateLimited(500): want=false")
	}
	if StatusCode(context.Canceled) != 0 {
		t.Fatalf("StatusCode(plain): want=0")
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(fmt.Errorf("x: %w", context.DeadlineExceeded)) {
		t.Fatalf("deadline should count as timeout")
	}
	if IsTimeout(statusErr(429)) {
		t.Fatalf("429 is not a timeout")
	}
}
