package handler

import (
	"context"

	"gamehub/internal/model"
)

// RoomCoordinator is the room/session surface the handlers call.
// Implemented by service.RoomService.
type RoomCoordinator interface {
	Join(ctx context.Context, gameID, userID string) error
	Leave(ctx context.Context, gameID, userID string) error
	StartGame(ctx context.Context, gameID, userID string) (string, []string, error)
	UpdateScore(ctx context.Context, gameID, sessionID, userID string, score int) error
	Leaderboard(ctx context.Context, gameID, sessionID string) ([]*model.LeaderboardRow, error)
	CleanupRooms(ctx context.Context) (checked, cleaned int, err error)
}

// PresenceTracker is the heartbeat surface. Implemented by
// service.PresenceService.
type PresenceTracker interface {
	Heartbeat(ctx context.Context, clientID string) (int, error)
	Count(ctx context.Context) (int, error)
}

// Catalog lists playable games. Implemented by service.GameService.
type Catalog interface {
	List(ctx context.Context, code string) []*model.Game
}

// Accounts is the login surface. Implemented by service.AuthService.
type Accounts interface {
	Login(ctx context.Context, username string) (*model.LoginResponse, error)
}

// Profiles is the user profile/history surface. Implemented by
// service.UserService.
type Profiles interface {
	UpdateProfile(ctx context.Context, userID, displayName, gameplayID string) error
	History(ctx context.Context, userID string, limit int) ([]*model.HistoryRow, error)
}
