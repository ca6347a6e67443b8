package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamehub/internal/model"
)

type mockRoomCoordinator struct {
	mock.Mock
}

func (m *mockRoomCoordinator) Join(ctx context.Context, gameID, userID string) error {
	args := m.Called(ctx, gameID, userID)
	return args.Error(0)
}

func (m *mockRoomCoordinator) Leave(ctx context.Context, gameID, userID string) error {
	args := m.Called(ctx, gameID, userID)
	return args.Error(0)
}

func (m *mockRoomCoordinator) StartGame(ctx context.Context, gameID, userID string) (string, []string, error) {
	args := m.Called(ctx, gameID, userID)
	var players []string
	if args.Get(1) != nil {
		players = args.Get(1).([]string)
	}
	return args.String(0), players, args.Error(2)
}

func (m *mockRoomCoordinator) UpdateScore(ctx context.Context, gameID, sessionID, userID string, score int) error {
	args := m.Called(ctx, gameID, sessionID, userID, score)
	return args.Error(0)
}

func (m *mockRoomCoordinator) Leaderboard(ctx context.Context, gameID, sessionID string) ([]*model.LeaderboardRow, error) {
	args := m.Called(ctx, gameID, sessionID)
	var rows []*model.LeaderboardRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]*model.LeaderboardRow)
	}
	return rows, args.Error(1)
}

func (m *mockRoomCoordinator) CleanupRooms(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

type mockPresenceTracker struct {
	mock.Mock
}

func (m *mockPresenceTracker) Heartbeat(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *mockPresenceTracker) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context, code string) []*model.Game {
	args := m.Called(ctx, code)
	return args.Get(0).([]*model.Game)
}

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) Login(ctx context.Context, username string) (*model.LoginResponse, error) {
	args := m.Called(ctx, username)
	var resp *model.LoginResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*model.LoginResponse)
	}
	return resp, args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) UpdateProfile(ctx context.Context, userID, displayName, gameplayID string) error {
	args := m.Called(ctx, userID, displayName, gameplayID)
	return args.Error(0)
}

func (m *mockProfiles) History(ctx context.Context, userID string, limit int) ([]*model.HistoryRow, error) {
	args := m.Called(ctx, userID, limit)
	var rows []*model.HistoryRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]*model.HistoryRow)
	}
	return rows, args.Error(1)
}
