package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gamehub/internal/cache"
	"gamehub/internal/model"
)

// In-memory fakes for the Redis and Mongo layers. They implement the
// same interfaces the services consume so flows can be exercised
// end to end without a running store.

type fakeRoomCache struct {
	mu    sync.Mutex
	rooms map[string]model.RoomInfo
}

func newFakeRoomCache() *fakeRoomCache {
	return &fakeRoomCache{rooms: make(map[string]model.RoomInfo)}
}

func (f *fakeRoomCache) SetInfo(_ context.Context, gameID string, info *model.RoomInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[gameID] = *info
	return nil
}

func (f *fakeRoomCache) GetInfo(_ context.Context, gameID string) (*model.RoomInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.rooms[gameID]
	if !ok {
		return nil, nil
	}
	out := info
	return &out, nil
}

func (f *fakeRoomCache) Delete(_ context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, gameID)
	return nil
}

func (f *fakeRoomCache) ListGameIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.rooms))
	for id := range f.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakePlayerCache struct {
	mu      sync.Mutex
	players map[string]model.PlayerMap
}

func newFakePlayerCache() *fakePlayerCache {
	return &fakePlayerCache{players: make(map[string]model.PlayerMap)}
}

func (f *fakePlayerCache) SetMembership(_ context.Context, gameID, userID string, m *model.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.players[gameID] == nil {
		f.players[gameID] = model.PlayerMap{}
	}
	f.players[gameID][userID] = *m
	return nil
}

func (f *fakePlayerCache) GetMembership(_ context.Context, gameID, userID string) (*model.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.players[gameID][userID]
	if !ok {
		return nil, nil
	}
	out := m
	return &out, nil
}

func (f *fakePlayerCache) GetAll(_ context.Context, gameID string) (model.PlayerMap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := model.PlayerMap{}
	for id, m := range f.players[gameID] {
		out[id] = m
	}
	return out, nil
}

func (f *fakePlayerCache) Delete(_ context.Context, gameID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.players, gameID)
	return nil
}

type fakeScoreCache struct {
	mu     sync.Mutex
	scores map[string]map[string]int // channel key -> userID -> score
}

func newFakeScoreCache() *fakeScoreCache {
	return &fakeScoreCache{scores: make(map[string]map[string]int)}
}

func (f *fakeScoreCache) SetScore(_ context.Context, gameID, sessionID, userID string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := gameID + "/" + sessionID
	if f.scores[key] == nil {
		f.scores[key] = make(map[string]int)
	}
	f.scores[key][userID] = score
	return nil
}

func (f *fakeScoreCache) GetRanking(_ context.Context, gameID, sessionID string) ([]cache.RankedScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byUser := f.scores[gameID+"/"+sessionID]
	ranking := make([]cache.RankedScore, 0, len(byUser))
	for id, s := range byUser {
		ranking = append(ranking, cache.RankedScore{UserID: id, Score: s})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking, nil
}

type fakeScoreRepo struct {
	mu        sync.Mutex
	entries   []*model.ScoreEntry
	insertErr error
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{}
}

func (f *fakeScoreRepo) InsertAll(_ context.Context, entries []*model.ScoreEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeScoreRepo) SetScore(_ context.Context, gameID, sessionID, userID string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.GameCode == gameID && e.SessionID == sessionID && e.UserID == userID {
			e.Score = score
			return nil
		}
	}
	return errors.New("score row not found")
}

func (f *fakeScoreRepo) GetBySession(_ context.Context, gameID, sessionID string) ([]*model.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.ScoreEntry
	for _, e := range f.entries {
		if e.GameCode == gameID && e.SessionID == sessionID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (f *fakeScoreRepo) GetByUser(_ context.Context, userID string, limit int) ([]*model.ScoreEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.ScoreEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id, displayName, gameplayID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	if displayName != "" {
		u.DisplayName = displayName
	}
	if gameplayID != "" {
		u.GameplayID = gameplayID
	}
	return nil
}

type fakeGameRepo struct {
	games   []*model.Game
	listErr error
}

func (f *fakeGameRepo) List(_ context.Context) ([]*model.Game, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.games, nil
}

func (f *fakeGameRepo) GetByCode(_ context.Context, code string) (*model.Game, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	for _, g := range f.games {
		if g.Code == code {
			return g, nil
		}
	}
	return nil, nil
}

type publishedEvent struct {
	Channel string
	Event   string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, channel, event string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Channel: channel, Event: event, Payload: payload})
	return nil
}

func (f *fakePublisher) byName(event string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type fakePresenceCache struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func newFakePresenceCache() *fakePresenceCache {
	return &fakePresenceCache{seen: make(map[string]time.Time)}
}

func (f *fakePresenceCache) Touch(_ context.Context, clientID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[clientID] = at
	return nil
}

func (f *fakePresenceCache) GetAll(_ context.Context) (map[string]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Time, len(f.seen))
	for id, at := range f.seen {
		out[id] = at
	}
	return out, nil
}

func (f *fakePresenceCache) Remove(_ context.Context, clientIDs ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range clientIDs {
		delete(f.seen, id)
	}
	return nil
}
