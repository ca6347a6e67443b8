package model

import "time"

// ScoreEntry is one row of the leaderboards collection: a single
// player's score within a single session. Rows are inserted at zero
// when the session starts and overwritten (never accumulated) by
// score updates.
type ScoreEntry struct {
	GameCode  string    `json:"game_code" bson:"game_code"`
	SessionID string    `json:"session_id" bson:"session_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Score     int       `json:"score" bson:"score"`
	Exited    bool      `json:"exited" bson:"exited"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// LeaderboardRow is a score entry enriched with profile fields for
// display. Enrichment is best effort: DisplayName and GameplayID fall
// back to defaults when the user lookup fails.
type LeaderboardRow struct {
	UserID      string `json:"user_id"`
	Score       int    `json:"score"`
	Exited      bool   `json:"exited"`
	DisplayName string `json:"display_name"`
	GameplayID  string `json:"gameplay_id"`
}

// HistoryRow is one entry of a user's play history.
type HistoryRow struct {
	GameCode  string    `json:"game_code"`
	SessionID string    `json:"session_id"`
	Score     int       `json:"score"`
	Exited    bool      `json:"exited"`
	CreatedAt time.Time `json:"created_at"`
	GameName  string    `json:"game_name"`
}
