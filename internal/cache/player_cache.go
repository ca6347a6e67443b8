package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gamehub/internal/model"
)

// PlayerCache handles Redis operations for room memberships, stored as
// a hash of userId -> membership JSON under room:<gameId>:players.
type PlayerCache interface {
	SetMembership(ctx context.Context, gameID, userID string, m *model.Membership) error
	GetMembership(ctx context.Context, gameID, userID string) (*model.Membership, error)
	GetAll(ctx context.Context, gameID string) (model.PlayerMap, error)
	Delete(ctx context.Context, gameID string) error
}

type playerCache struct {
	client *redis.Client
}

// NewPlayerCache creates a new player cache
func NewPlayerCache(client *redis.Client) PlayerCache {
	return &playerCache{client: client}
}

func (c *playerCache) key(gameID string) string {
	return fmt.Sprintf("room:%s:players", gameID)
}

func (c *playerCache) SetMembership(ctx context.Context, gameID, userID string, m *model.Membership) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.HSet(ctx, c.key(gameID), userID, data).Err()
}

func (c *playerCache) GetMembership(ctx context.Context, gameID, userID string) (*model.Membership, error) {
	data, err := c.client.HGet(ctx, c.key(gameID), userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m model.Membership
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *playerCache) GetAll(ctx context.Context, gameID string) (model.PlayerMap, error) {
	data, err := c.client.HGetAll(ctx, c.key(gameID)).Result()
	if err != nil {
		return nil, err
	}
	players := make(model.PlayerMap, len(data))
	for id, jsonStr := range data {
		var m model.Membership
		if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
			continue
		}
		players[id] = m
	}
	return players, nil
}

func (c *playerCache) Delete(ctx context.Context, gameID string) error {
	return c.client.Del(ctx, c.key(gameID)).Err()
}
