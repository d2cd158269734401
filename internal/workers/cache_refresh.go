package workers

import (
	"context"
	"time"

	"log/slog"

	"github.com/rileysklar/BookNook/internal/domain"
)

type LibraryLister interface {
	ListActive(ctx context.Context) ([]*domain.Library, error)
}

type LibraryCacheWriter interface {
	SetActive(ctx context.Context, libraries []domain.Library, ttl time.Duration) error
}

// CacheRefresher re-primes the active-library cache on a fixed interval so
// the unfiltered list endpoint stays warm between invalidations. Refresh
// failures are logged and retried on the next tick.
type CacheRefresher struct {
	logger   *slog.Logger
	repo     LibraryLister
	cache    LibraryCacheWriter
	interval time.Duration
	ttl      time.Duration
}

func NewCacheRefresher(
	logger *slog.Logger,
	repo LibraryLister,
	cache LibraryCacheWriter,
	interval, ttl time.Duration,
) *CacheRefresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CacheRefresher{
		logger:   logger,
		repo:     repo,
		cache:    cache,
		interval: interval,
		ttl:      ttl,
	}
}

func (w *CacheRefresher) Run(ctx context.Context) {
	w.logger.Info("cacheRefresher STARTED", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cacheRefresher STOPPED")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *CacheRefresher) refresh(ctx context.Context) {
	libs, err := w.repo.ListActive(ctx)
	if err != nil {
		w.logger.Warn("cache refresh list failed", slog.Any("error", err))
		return
	}

	out := make([]domain.Library, 0, len(libs))
	for _, l := range libs {
		out = append(out, *l)
	}

	if err := w.cache.SetActive(ctx, out, w.ttl); err != nil {
		w.logger.Warn("cache refresh write failed", slog.Any("error", err))
	}
}
