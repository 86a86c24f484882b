package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned before any network call when no API key is configured.
	ErrMissingAPIKey = errors.New("gemini API key is missing")

	// ErrEmptyResponse is returned when the API answered successfully but the
	// response carried no candidates or no content parts.
	ErrEmptyResponse = errors.New("gemini response contained no generated content")

	// ErrRetriesExhausted is returned when every allowed attempt hit a transient status.
	ErrRetriesExhausted = errors.New("gemini call failed after max retries")

	// ErrMalformedOutput is returned when the model produced text that is not valid JSON.
	ErrMalformedOutput = errors.New("gemini returned malformed JSON output")
)

// StatusError reports a fatal, non-retryable HTTP status from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini API returned status %d: %s", e.StatusCode, e.Body)
}
