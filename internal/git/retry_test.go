package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/optionbook/internal/retry"
)

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	pol := retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	path, err := withRetry(context.Background(), "clone", "u", pol, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "/tmp/x", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", path)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	pol := retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 5)
	calls := 0
	_, err := withRetry(context.Background(), "clone", "u", pol, func() (string, error) {
		calls++
		return "", &AuthError{Op: "clone", URL: "u", Err: errors.New("denied")}
	})
	var auth *AuthError
	require.ErrorAs(t, err, &auth)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_Exhausted(t *testing.T) {
	pol := retry.NewPolicy(retry.BackoffLinear, time.Millisecond, 2*time.Millisecond, 2)
	calls := 0
	_, err := withRetry(context.Background(), "clone", "u", pol, func() (string, error) {
		calls++
		return "", errors.New("timeout")
	})
	require.ErrorContains(t, err, "failed after 2 retries")
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NoRetriesConfigured(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), "clone", "u", retry.DefaultPolicy(), func() (string, error) {
		calls++
		return "", errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

func TestWithRetry_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pol := retry.NewPolicy(retry.BackoffFixed, time.Hour, time.Hour, 1)
	_, err := withRetry(ctx, "clone", "u", pol, func() (string, error) {
		cancel()
		return "", errors.New("flaky")
	})
	require.ErrorIs(t, err, context.Canceled)
}
