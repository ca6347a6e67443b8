package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceKey = "presence"

// PresenceCache stores last-seen timestamps per client id in a shared
// Redis hash. Entries are written without locking; concurrent
// heartbeats for the same id are last-writer-wins, which is acceptable
// for an advisory count.
type PresenceCache interface {
	Touch(ctx context.Context, clientID string, at time.Time) error
	GetAll(ctx context.Context) (map[string]time.Time, error)
	Remove(ctx context.Context, clientIDs ...string) error
}

type presenceCache struct {
	client *redis.Client
}

// NewPresenceCache creates a new presence cache
func NewPresenceCache(client *redis.Client) PresenceCache {
	return &presenceCache{client: client}
}

func (c *presenceCache) Touch(ctx context.Context, clientID string, at time.Time) error {
	return c.client.HSet(ctx, presenceKey, clientID, at.UnixMilli()).Err()
}

func (c *presenceCache) GetAll(ctx context.Context) (map[string]time.Time, error) {
	data, err := c.client.HGetAll(ctx, presenceKey).Result()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]time.Time, len(data))
	for id, raw := range data {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		seen[id] = time.UnixMilli(ms)
	}
	return seen, nil
}

func (c *presenceCache) Remove(ctx context.Context, clientIDs ...string) error {
	if len(clientIDs) == 0 {
		return nil
	}
	return c.client.HDel(ctx, presenceKey, clientIDs...).Err()
}
