package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Backoff bounds a poll: the condition runs at most MaxAttempts times with
// Interval between attempts.
type Backoff struct {
	Interval    time.Duration
	MaxAttempts int
}

// Timeout is the longest a poll with this backoff can wait between attempts in total.
func (b Backoff) Timeout() time.Duration {
	if b.MaxAttempts < 1 {
		return 0
	}

	return time.Duration(b.MaxAttempts-1) * b.Interval
}

// CheckFunc reports whether the awaited condition holds.
// Returning (false, nil) or an error wrapped with Retry asks for another
// attempt; any other error stops the poll immediately and is returned unchanged.
type CheckFunc func(ctx context.Context) (bool, error)

type retryError struct {
	err error
}

func (e *retryError) Error() string { return e.err.Error() }

func (e *retryError) Unwrap() error { return e.err }

// Retry marks err as worth another attempt. If the budget runs out while the
// latest attempt failed this way, err is joined into the exhaustion error.
func Retry(err error) error {
	if err == nil {
		return nil
	}

	return &retryError{err: err}
}

// Poll runs check until it returns true, returns an error, the attempt budget
// is spent, or ctx is cancelled. An exhausted budget yields ErrAttemptsExhausted.
func Poll(ctx context.Context, backoff Backoff, check CheckFunc) error {
	attempts := max(backoff.MaxAttempts, 1)

	var lastErr error

	err := wait.ExponentialBackoffWithContext(ctx, wait.Backoff{
		Duration: backoff.Interval,
		Factor:   1,
		Steps:    attempts,
	}, func(ctx context.Context) (bool, error) {
		done, err := check(ctx)

		var retry *retryError
		if errors.As(err, &retry) {
			lastErr = retry.err

			return false, nil
		}

		lastErr = nil

		return done, err
	})
	if err == nil {
		return nil
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("polling cancelled: %w", ctxErr)
	}

	if wait.Interrupted(err) {
		if lastErr != nil {
			return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, lastErr)
		}

		return fmt.Errorf("%w after %d attempts", ErrAttemptsExhausted, attempts)
	}

	return err
}
