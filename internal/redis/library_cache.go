package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rileysklar/BookNook/internal/domain"
)

type LibraryCacheService interface {
	GetActive(ctx context.Context) ([]domain.Library, bool, error)
	SetActive(ctx context.Context, libraries []domain.Library, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// LibraryCache holds the full active-library collection as one JSON blob.
// The unfiltered read path is by far the hottest query; geo-filtered reads
// bypass the cache and hit PostGIS directly.
type LibraryCache struct {
	client *goredis.Client
	key    string
}

func NewLibraryCache(r *Redis) *LibraryCache {
	return &LibraryCache{
		client: r.Client,
		key:    "libraries:active",
	}
}

// GetActive returns the cached collection. The bool distinguishes a cache
// miss from a cached empty collection.
func (c *LibraryCache) GetActive(ctx context.Context) ([]domain.Library, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var libraries []domain.Library
	if err := json.Unmarshal(data, &libraries); err != nil {
		return nil, false, err
	}

	return libraries, true, nil
}

func (c *LibraryCache) SetActive(ctx context.Context, libraries []domain.Library, ttl time.Duration) error {
	b, err := json.Marshal(libraries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}

// Invalidate drops the cached collection; the next read repopulates it.
// Called after every successful mutation.
func (c *LibraryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
