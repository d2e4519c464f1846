package middleware

import (
	"net/http"
	"time"
)

// DefaultRequestTimeout applies when a non-positive timeout is configured
const DefaultRequestTimeout = 30 * time.Second

// Timeout bounds handler run time; the request context is cancelled and
// a 503 is returned once it expires.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request Timeout")
	}
}
