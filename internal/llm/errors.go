package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider failures are typed so the retry layer can tell transient faults
// apart from permanent ones.

// ErrProviderUnavailable wraps network faults and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRateLimit reports a 429. RetryAfter carries the server's backoff hint
// when one was sent, zero otherwise.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports a response cut off at the MaxTokens limit.
// Content holds the truncated output for diagnosis.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "response truncated at the max token limit"
}

// ErrInvalidResponse reports model output that failed JSON parsing or schema
// validation. Content holds the offending output.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("model returned invalid content: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
