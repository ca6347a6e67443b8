package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreCache handles Redis ZSET operations for per-session scores.
// The ZSET mirrors the persisted score rows and gives leaderboard
// reads their ordering without a database sort.
type ScoreCache interface {
	SetScore(ctx context.Context, gameID, sessionID, userID string, score int) error
	GetRanking(ctx context.Context, gameID, sessionID string) ([]RankedScore, error)
}

// RankedScore is a single ZSET entry, best score first.
type RankedScore struct {
	UserID string
	Score  int
}

type scoreCache struct {
	client *redis.Client
}

// NewScoreCache creates a new score cache
func NewScoreCache(client *redis.Client) ScoreCache {
	return &scoreCache{client: client}
}

func (c *scoreCache) key(gameID, sessionID string) string {
	return fmt.Sprintf("scores:%s:%s", gameID, sessionID)
}

func (c *scoreCache) SetScore(ctx context.Context, gameID, sessionID, userID string, score int) error {
	return c.client.ZAdd(ctx, c.key(gameID, sessionID), redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
}

func (c *scoreCache) GetRanking(ctx context.Context, gameID, sessionID string) ([]RankedScore, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(gameID, sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	ranking := make([]RankedScore, len(results))
	for i, z := range results {
		ranking[i] = RankedScore{
			UserID: z.Member.(string),
			Score:  int(z.Score),
		}
	}
	return ranking, nil
}
