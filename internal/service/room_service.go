package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gamehub/internal/bus"
	"gamehub/internal/cache"
	"gamehub/internal/model"
	"gamehub/internal/repository"
)

// RoomService coordinates room membership, host succession and scored
// sessions. All state lives in the room cache and the score
// repository; concurrent requests on the same room are not serialized,
// so operations are read-then-write sequences that converge through
// repeated players-update broadcasts rather than through locking.
type RoomService struct {
	roomCache   cache.RoomCache
	playerCache cache.PlayerCache
	scoreCache  cache.ScoreCache
	scoreRepo   repository.ScoreRepo
	userRepo    repository.UserRepo
	publisher   bus.Publisher
	now         func() time.Time
}

// NewRoomService creates a new room service
func NewRoomService(
	roomCache cache.RoomCache,
	playerCache cache.PlayerCache,
	scoreCache cache.ScoreCache,
	scoreRepo repository.ScoreRepo,
	userRepo repository.UserRepo,
	publisher bus.Publisher,
) *RoomService {
	return &RoomService{
		roomCache:   roomCache,
		playerCache: playerCache,
		scoreCache:  scoreCache,
		scoreRepo:   scoreRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Join adds the user to the room, creating the room (and making the
// user host) when no record exists for the game id. Repeated joins by
// the same user refresh joined_at.
func (s *RoomService) Join(ctx context.Context, gameID, userID string) error {
	info, err := s.roomCache.GetInfo(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if info == nil {
		info = &model.RoomInfo{HostUID: userID, CreatedAt: s.now()}
		if err := s.roomCache.SetInfo(ctx, gameID, info); err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		s.publish(ctx, model.GameChannel(gameID), model.EventBecomeHost,
			model.BecomeHostPayload{GameID: gameID})
	}

	m := &model.Membership{JoinedAt: s.now(), Exited: false}
	if err := s.playerCache.SetMembership(ctx, gameID, userID, m); err != nil {
		return fmt.Errorf("failed to save membership: %w", err)
	}

	players, err := s.playerCache.GetAll(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	s.publish(ctx, model.GameChannel(gameID), model.EventPlayersUpdate,
		model.PlayersUpdatePayload{GameID: gameID, Players: players})
	s.publish(ctx, model.GameChannel(gameID), model.EventRoomInfo,
		model.RoomInfoPayload{RoomInfo: info})

	return nil
}

// Leave marks the caller's membership as exited. The membership row is
// preserved; only the cleanup sweep removes it. When the host leaves,
// host ownership transfers to the eligible member that joined
// earliest.
func (s *RoomService) Leave(ctx context.Context, gameID, userID string) error {
	info, err := s.roomCache.GetInfo(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}
	if info == nil {
		return ErrRoomNotFound
	}

	m, err := s.playerCache.GetMembership(ctx, gameID, userID)
	if err != nil {
		return fmt.Errorf("failed to get membership: %w", err)
	}
	if m != nil {
		m.Exited = true
		if err := s.playerCache.SetMembership(ctx, gameID, userID, m); err != nil {
			return fmt.Errorf("failed to save membership: %w", err)
		}
	}

	if info.HostUID == userID {
		players, err := s.playerCache.GetAll(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		if successor := nextHost(players, userID); successor != "" {
			info.HostUID = successor
			if err := s.roomCache.SetInfo(ctx, gameID, info); err != nil {
				return fmt.Errorf("failed to transfer host: %w", err)
			}
			s.publish(ctx, model.GameChannel(gameID), model.EventBecomeHost,
				model.BecomeHostPayload{GameID: gameID, UserID: successor})
		}
		// No eligible successor leaves the room hostless until the
		// next join recreates it or cleanup reclaims it.
	}

	players, err := s.playerCache.GetAll(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	s.publish(ctx, model.GameChannel(gameID), model.EventPlayersUpdate,
		model.PlayersUpdatePayload{GameID: gameID, Players: players})

	return nil
}

// StartGame creates a scored session for every active member. Only the
// recorded host may start a session. Score rows are written in a
// single batch so a mid-write failure cannot leave a half-created
// session.
func (s *RoomService) StartGame(ctx context.Context, gameID, userID string) (string, []string, error) {
	info, err := s.roomCache.GetInfo(ctx, gameID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get room: %w", err)
	}
	if info == nil {
		return "", nil, ErrRoomNotFound
	}
	if info.HostUID != userID {
		return "", nil, ErrNotHost
	}

	sessionID := uuid.New().String()

	players, err := s.playerCache.GetAll(ctx, gameID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list players: %w", err)
	}

	participants := players.ActiveIDs("")
	sort.Slice(participants, func(i, j int) bool {
		pi, pj := players[participants[i]], players[participants[j]]
		if !pi.JoinedAt.Equal(pj.JoinedAt) {
			return pi.JoinedAt.Before(pj.JoinedAt)
		}
		return participants[i] < participants[j]
	})

	entries := make([]*model.ScoreEntry, len(participants))
	for i, id := range participants {
		entries[i] = &model.ScoreEntry{
			GameCode:  gameID,
			SessionID: sessionID,
			UserID:    id,
			Score:     0,
			CreatedAt: s.now(),
		}
	}
	if err := s.scoreRepo.InsertAll(ctx, entries); err != nil {
		return "", nil, fmt.Errorf("failed to create session scores: %w", err)
	}

	for _, id := range participants {
		if err := s.scoreCache.SetScore(ctx, gameID, sessionID, id, 0); err != nil {
			logrus.WithFields(logrus.Fields{"gameId": gameID, "sessionId": sessionID}).
				Warn("failed to seed score ranking: ", err)
			break
		}
	}

	s.publish(ctx, model.GameChannel(gameID), model.EventGameStarted,
		model.GameStartedPayload{GameID: gameID, SessionID: sessionID})

	return sessionID, participants, nil
}

// UpdateScore overwrites the caller's score for the session and
// broadcasts the new value. Scores are not validated against previous
// values; the last writer wins.
func (s *RoomService) UpdateScore(ctx context.Context, gameID, sessionID, userID string, score int) error {
	if err := s.scoreRepo.SetScore(ctx, gameID, sessionID, userID, score); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	if err := s.scoreCache.SetScore(ctx, gameID, sessionID, userID, score); err != nil {
		logrus.WithFields(logrus.Fields{"gameId": gameID, "sessionId": sessionID}).
			Warn("failed to update score ranking: ", err)
	}

	s.publish(ctx, model.ScoresChannel(gameID, sessionID), model.EventScoreUpdate,
		model.ScoreUpdatePayload{
			GameID:    gameID,
			SessionID: sessionID,
			UserID:    userID,
			Score:     score,
		})

	return nil
}

// Leaderboard returns the session's scores ordered best first, with
// profile fields attached. Ordering comes from the score ranking cache
// when populated, otherwise from the repository sort. Profile lookups
// are best effort and degrade to defaults.
func (s *RoomService) Leaderboard(ctx context.Context, gameID, sessionID string) ([]*model.LeaderboardRow, error) {
	entries, err := s.scoreRepo.GetBySession(ctx, gameID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	byUser := make(map[string]*model.ScoreEntry, len(entries))
	for _, e := range entries {
		byUser[e.UserID] = e
	}

	ordered := entries
	if ranking, err := s.scoreCache.GetRanking(ctx, gameID, sessionID); err == nil && len(ranking) > 0 {
		ordered = make([]*model.ScoreEntry, 0, len(ranking))
		for _, r := range ranking {
			if e, ok := byUser[r.UserID]; ok {
				ordered = append(ordered, e)
			}
		}
	} else if err != nil {
		logrus.WithField("gameId", gameID).Warn("score ranking unavailable, using stored order: ", err)
	}

	rows := make([]*model.LeaderboardRow, len(ordered))
	for i, e := range ordered {
		row := &model.LeaderboardRow{
			UserID:      e.UserID,
			Score:       e.Score,
			Exited:      e.Exited,
			DisplayName: e.UserID,
		}
		if user, err := s.userRepo.GetByID(ctx, e.UserID); err != nil {
			logrus.WithField("userId", e.UserID).Warn("failed to enrich leaderboard row: ", err)
		} else if user != nil {
			if user.DisplayName != "" {
				row.DisplayName = user.DisplayName
			}
			row.GameplayID = user.GameplayID
		}
		rows[i] = row
	}
	return rows, nil
}

// CleanupRooms deletes every room whose membership map is empty or
// fully exited, together with the membership hash. This sweep is the
// only mechanism that reclaims room storage. It can race with a
// concurrent Join recreating the room; the next sweep picks that up.
func (s *RoomService) CleanupRooms(ctx context.Context) (checked, cleaned int, err error) {
	gameIDs, err := s.roomCache.ListGameIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list rooms: %w", err)
	}

	for _, gameID := range gameIDs {
		checked++
		players, err := s.playerCache.GetAll(ctx, gameID)
		if err != nil {
			logrus.WithField("gameId", gameID).Warn("cleanup skipping room: ", err)
			continue
		}
		if !players.AllExited() {
			continue
		}
		if err := s.roomCache.Delete(ctx, gameID); err != nil {
			logrus.WithField("gameId", gameID).Warn("cleanup failed to delete room: ", err)
			continue
		}
		if err := s.playerCache.Delete(ctx, gameID); err != nil {
			logrus.WithField("gameId", gameID).Warn("cleanup failed to delete players: ", err)
			continue
		}
		cleaned++
	}
	return checked, cleaned, nil
}

// nextHost picks the replacement host: the non-exited member with the
// earliest join time, ties broken by lowest user id. The previous
// implementation depended on hash iteration order; this rule is
// deterministic.
func nextHost(players model.PlayerMap, leaving string) string {
	var (
		best   string
		bestAt time.Time
	)
	for id, m := range players {
		if id == leaving || m.Exited {
			continue
		}
		if best == "" || m.JoinedAt.Before(bestAt) || (m.JoinedAt.Equal(bestAt) && id < best) {
			best = id
			bestAt = m.JoinedAt
		}
	}
	return best
}

// publish sends an event and logs on failure. Broadcasts are not part
// of the primary mutation: a failed publish leaves clients to converge
// on the next update instead of failing the request.
func (s *RoomService) publish(ctx context.Context, channel, event string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, channel, event, payload); err != nil {
		logrus.WithFields(logrus.Fields{"channel": channel, "event": event}).
			Warn("failed to publish event: ", err)
	}
}
