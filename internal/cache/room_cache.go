package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"gamehub/internal/model"
)

// RoomCache handles Redis operations for room records
type RoomCache interface {
	SetInfo(ctx context.Context, gameID string, info *model.RoomInfo) error
	GetInfo(ctx context.Context, gameID string) (*model.RoomInfo, error)
	Delete(ctx context.Context, gameID string) error
	ListGameIDs(ctx context.Context) ([]string, error)
}

type roomCache struct {
	client *redis.Client
}

// NewRoomCache creates a new room cache
func NewRoomCache(client *redis.Client) RoomCache {
	return &roomCache{client: client}
}

func (c *roomCache) key(gameID string) string {
	return fmt.Sprintf("room:%s", gameID)
}

func (c *roomCache) SetInfo(ctx context.Context, gameID string, info *model.RoomInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(gameID), data, 0).Err()
}

func (c *roomCache) GetInfo(ctx context.Context, gameID string) (*model.RoomInfo, error) {
	data, err := c.client.Get(ctx, c.key(gameID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var info model.RoomInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *roomCache) Delete(ctx context.Context, gameID string) error {
	return c.client.Del(ctx, c.key(gameID)).Err()
}

// ListGameIDs scans for room:* record keys and returns the game ids.
// Player hash keys (room:*:players) are filtered out. Used only by the
// cleanup sweep.
func (c *roomCache) ListGameIDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, "room:*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			if strings.HasSuffix(key, ":players") {
				continue
			}
			ids = append(ids, strings.TrimPrefix(key, "room:"))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids, nil
}
