package gemini

import (
	"net/http"
	"time"
)

// retryable reports whether an upstream status is a transient failure worth
// retrying: rate limiting or a temporary server error. Everything else is
// fatal on the first occurrence.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// backoff returns the delay before retrying after the given 0-indexed
// attempt: 1s, 2s, 4s, 8s, ...
func backoff(attempt int) time.Duration {
	return time.Second << uint(attempt)
}

// decide maps the outcome of one failed attempt to the next action. It
// returns true with a backoff delay when the attempt should be retried,
// false when the failure must be surfaced to the caller.
func decide(attempt, maxRetries, status int) (time.Duration, bool) {
	if retryable(status) && attempt < maxRetries-1 {
		return backoff(attempt), true
	}
	return 0, false
}
