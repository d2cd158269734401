package service

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
)

// ActivityDequeuer is the draining half of the activity pipeline.
type ActivityDequeuer interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.Activity, error)
}

// ActivityRecorder drains queued activities into Postgres in the
// background. A record that keeps failing is dropped with an error log:
// the feed is best-effort and must never wedge the queue.
type ActivityRecorder struct {
	logger *slog.Logger
	queue  ActivityDequeuer
	repo   ActivityRepository
}

func NewActivityRecorder(logger *slog.Logger, queue ActivityDequeuer, repo ActivityRepository) *ActivityRecorder {
	return &ActivityRecorder{
		logger: logger,
		queue:  queue,
		repo:   repo,
	}
}

func (r *ActivityRecorder) Run(ctx context.Context) {
	r.logger.Info("activityRecorder STARTED")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("activityRecorder STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		act, err := r.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrActivityQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			r.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		r.insertWithRetry(ctx, act)
	}
}

func (r *ActivityRecorder) insertWithRetry(ctx context.Context, act domain.Activity) {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			r.logger.Info("stop retries due to context cancel")
			return
		}

		err := r.repo.Insert(ctx, &act)
		if err == nil {
			return
		}

		r.logger.Warn("activity insert failed",
			slog.Int("attempt", attempt),
			slog.String("activity_type", string(act.ActivityType)),
			slog.String("user_id", act.UserID),
			slog.Any("error", err),
		)

		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	r.logger.Error("activity dropped after retries",
		slog.String("activity_type", string(act.ActivityType)),
		slog.String("user_id", act.UserID),
	)
}
