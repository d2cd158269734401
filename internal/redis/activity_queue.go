package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
)

// ActivityQueue decouples activity recording from the request path:
// handlers LPush and return, the recorder drains with BRPop. A full or
// down queue loses the activity, never the mutation.
type ActivityQueue struct {
	client *redis.Client
	key    string
}

func NewActivityQueue(client *redis.Client, key string) *ActivityQueue {
	return &ActivityQueue{client: client, key: key}
}

func (q *ActivityQueue) Enqueue(ctx context.Context, activity domain.Activity) error {
	b, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

func (q *ActivityQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.Activity, error) {
	var act domain.Activity

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return act, e.ErrActivityQueueEmpty
		}
		return act, err
	}
	if len(res) < 2 {
		return act, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &act); err != nil {
		return act, err
	}
	return act, nil
}
