package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
)

type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// StatusCode returns the HTTP status carried anywhere in err's chain, or 0.
func StatusCode(err error) int {
	var sc HTTPStatusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatusCode()
	}
	return 0
}

func IsRateLimited(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
