package model

import "fmt"

// Event names published on the room, score and global channels. These
// are part of the wire contract with browser clients and must not
// change without a coordinated client update.
const (
	EventBecomeHost    = "become-host"
	EventPlayersUpdate = "players-update"
	EventRoomInfo      = "room-info"
	EventGameStarted   = "game-started"
	EventError         = "error"
	EventScoreUpdate   = "score-update"
	EventUserCount     = "user-count"
)

// GlobalChannel carries presence counts for the whole deployment.
const GlobalChannel = "global"

// GameChannel names the per-room channel.
func GameChannel(gameID string) string {
	return fmt.Sprintf("game-%s", gameID)
}

// ScoresChannel names the per-session score channel.
func ScoresChannel(gameID, sessionID string) string {
	return fmt.Sprintf("scores-%s-%s", gameID, sessionID)
}

// BecomeHostPayload is sent when a user becomes host, either on room
// creation (UserID empty) or on host succession (UserID set to the
// new host).
type BecomeHostPayload struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId,omitempty"`
}

// PlayersUpdatePayload carries the full membership map after a join
// or leave.
type PlayersUpdatePayload struct {
	GameID  string    `json:"gameId"`
	Players PlayerMap `json:"players"`
}

// RoomInfoPayload carries the room record to a joining user.
type RoomInfoPayload struct {
	RoomInfo *RoomInfo `json:"roomInfo"`
}

// GameStartedPayload announces a new scored session.
type GameStartedPayload struct {
	GameID    string `json:"gameId"`
	SessionID string `json:"sessionId"`
}

// ScoreUpdatePayload announces a score overwrite.
type ScoreUpdatePayload struct {
	GameID    string `json:"gameId"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Score     int    `json:"score"`
}

// ErrorPayload carries a user-visible failure message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// UserCountPayload carries the advisory online-user count.
type UserCountPayload struct {
	Count int `json:"count"`
}
