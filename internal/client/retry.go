package client

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/rileysklar/BookNook/pkg/e"
)

const defaultMaxAttempts = 3

// Retrier reruns a failing operation with doubling backoff: 1s after the
// first failure, 2s after the second, 4s after the third. Exhaustion is
// reported as *e.MaxRetriesError wrapping the last failure.
type Retrier struct {
	MaxAttempts int
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewRetrier(maxAttempts int, logger *slog.Logger) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Retrier{
		MaxAttempts: maxAttempts,
		logger:      logger,
		sleep:       sleepCtx,
	}
}

// WithSleeper swaps the backoff wait. Tests inject a fake to assert the
// exact schedule without real time passing.
func (r *Retrier) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *Retrier {
	r.sleep = sleep
	return r
}

// Do runs op until it succeeds or MaxAttempts is exhausted. Context
// cancellation during a backoff wait aborts with the context error:
// callers treat that as teardown, not failure.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var last error

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", e.ErrCanceled, err)
		}

		last = op(ctx)
		if last == nil {
			return nil
		}

		r.logger.Warn("attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.MaxAttempts),
			slog.Any("error", last),
		)

		if attempt == r.MaxAttempts {
			break
		}

		wait := time.Duration(1<<(attempt-1)) * time.Second
		if err := r.sleep(ctx, wait); err != nil {
			return fmt.Errorf("%w: %w", e.ErrCanceled, err)
		}
	}

	return &e.MaxRetriesError{Attempts: r.MaxAttempts, Last: last}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
