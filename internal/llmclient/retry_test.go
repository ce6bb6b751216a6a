package llmclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRateLimitRetryRetriesOnlyRateLimitErrors(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond}

	attempts := 0
	text, err := withRateLimitRetry(context.Background(), cfg, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", newRateLimitError(errors.New("429"), 0)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, attempts)
}

func TestWithRateLimitRetryPropagatesNonRateLimitErrorImmediately(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond}

	attempts := 0
	_, err := withRateLimitRetry(context.Background(), cfg, func() (string, error) {
		attempts++
		return "", NewFatalError(errors.New("bad request"))
	})

	assert.ErrorContains(t, err, "bad request")
	assert.Equal(t, 1, attempts)
}

func TestWithRateLimitRetryGivesUpAfterMaxAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 2, BackoffBase: time.Millisecond}

	attempts := 0
	_, err := withRateLimitRetry(context.Background(), cfg, func() (string, error) {
		attempts++
		return "", newRateLimitError(errors.New("still limited"), 0)
	})

	assert.ErrorContains(t, err, "still limited")
	assert.Equal(t, 2, attempts)
}
