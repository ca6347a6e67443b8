package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gamehub/internal/bus"
	"gamehub/internal/cache"
	"gamehub/internal/model"
)

// presenceWindow is how recently a client must have heartbeat to count
// as online.
const presenceWindow = 5 * time.Minute

// PresenceService tracks a best-effort online-user count in a shared
// store. Stale entries are evicted lazily while counting, never by a
// timer. The count is advisory and must not be used for authorization.
type PresenceService struct {
	cache     cache.PresenceCache
	publisher bus.Publisher
	now       func() time.Time
}

// NewPresenceService creates a new presence service
func NewPresenceService(cache cache.PresenceCache, publisher bus.Publisher) *PresenceService {
	return &PresenceService{
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

// Heartbeat records the client as seen now, then recomputes and
// broadcasts the online count.
func (s *PresenceService) Heartbeat(ctx context.Context, clientID string) (int, error) {
	if err := s.cache.Touch(ctx, clientID, s.now()); err != nil {
		return 0, fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return s.Count(ctx)
}

// Count evicts stale entries, counts the remainder and broadcasts the
// result on the global channel.
func (s *PresenceService) Count(ctx context.Context) (int, error) {
	seen, err := s.cache.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read presence: %w", err)
	}

	cutoff := s.now().Add(-presenceWindow)
	var stale []string
	count := 0
	for id, at := range seen {
		if at.Before(cutoff) {
			stale = append(stale, id)
			continue
		}
		count++
	}

	if len(stale) > 0 {
		if err := s.cache.Remove(ctx, stale...); err != nil {
			logrus.Warn("failed to evict stale presence entries: ", err)
		}
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, model.GlobalChannel, model.EventUserCount,
			model.UserCountPayload{Count: count})
		if err != nil {
			logrus.Warn("failed to publish user count: ", err)
		}
	}

	return count, nil
}
