package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/retry"
)

// withRetry runs fn until it succeeds, fails permanently or the policy is exhausted.
func withRetry(ctx context.Context, op, url string, pol retry.Policy, fn func() (string, error)) (string, error) {
	if pol.MaxRetries <= 0 {
		return fn()
	}
	var lastErr error
	for attempt := 0; attempt <= pol.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("Retrying git operation", slog.String("operation", op), logfields.URL(url), slog.Int("attempt", attempt))
		}
		path, err := fn()
		if err == nil {
			return path, nil
		}
		lastErr = err
		if isPermanentGitError(err) {
			return "", err
		}
		if attempt == pol.MaxRetries {
			break
		}
		t := time.NewTimer(pol.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return "", fmt.Errorf("git %s failed after %d retries: %w", op, pol.MaxRetries, lastErr)
}

func isPermanentGitError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var (
		authErr     *AuthError
		notFoundErr *NotFoundError
		protoErr    *UnsupportedProtocolError
	)
	if errors.As(err, &authErr) || errors.As(err, &notFoundErr) || errors.As(err, &protoErr) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return !nerr.Timeout()
	}
	return false
}
