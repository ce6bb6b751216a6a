package llmclient

import (
	"context"
	"time"
)

// RetryConfig governs the transport-level rate-limit retry every
// provider applies internally — retries are scoped to rate-limit
// responses only; any other transport error propagates immediately.
type RetryConfig struct {
	MaxAttempts  int
	BackoffBase  time.Duration
	RetryAfter   time.Duration // not read by withRateLimitRetry; a rateLimitError's own retryAfter overrides BackoffBase*(attempt+1)
}

// DefaultRetryConfig matches the documented contract: up to 3 attempts,
// 5s*(attempt+1) backoff absent a Retry-After header.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BackoffBase: 5 * time.Second,
	}
}

// rateLimitError is returned by a provider's complete method when the
// response indicates rate limiting, carrying an optional server-supplied
// Retry-After duration.
type rateLimitError struct {
	err        error
	retryAfter time.Duration
}

func (e *rateLimitError) Error() string { return e.err.Error() }
func (e *rateLimitError) Unwrap() error { return e.err }

func newRateLimitError(err error, retryAfter time.Duration) error {
	return &rateLimitError{err: err, retryAfter: retryAfter}
}

func asRateLimitError(err error) (*rateLimitError, bool) {
	rl, ok := err.(*rateLimitError)
	return rl, ok
}

// withRateLimitRetry runs call up to cfg.MaxAttempts times, retrying only
// when call returns a *rateLimitError. Any other error propagates on the
// first attempt.
func withRateLimitRetry(ctx context.Context, cfg RetryConfig, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		text, err := call()
		if err == nil {
			return text, nil
		}

		rl, ok := asRateLimitError(err)
		if !ok {
			return "", err
		}
		lastErr = rl.err

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := cfg.BackoffBase * time.Duration(attempt+1)
		if rl.retryAfter > 0 {
			wait = rl.retryAfter
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", lastErr
}
