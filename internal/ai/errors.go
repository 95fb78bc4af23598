package ai

import (
	"errors"
	"fmt"
)

// Upstream failure taxonomy. Handlers map each class to a distinct HTTP
// status, so orchestration code matches with errors.Is / errors.As and
// never inspects provider-specific payloads.
var (
	// ErrNotConfigured: no API key present. Surfaced before any upstream
	// call and never retried.
	ErrNotConfigured = errors.New("ai: api key not configured")

	// ErrBadAPIKey: key contains whitespace/newlines (usually a mangled
	// .env entry) and would be rejected upstream.
	ErrBadAPIKey = errors.New("ai: api key malformed")

	ErrAuth        = errors.New("ai: upstream authentication failed")
	ErrRateLimited = errors.New("ai: upstream rate limit exceeded")
	ErrReadTimeout = errors.New("ai: upstream read timeout")
	ErrConnection  = errors.New("ai: upstream connection failed")
)

// APIStatusError is any other non-2xx upstream response.
type APIStatusError struct {
	Status  int
	Message string
}

func (e *APIStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ai: upstream api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ai: upstream api error %d", e.Status)
}
