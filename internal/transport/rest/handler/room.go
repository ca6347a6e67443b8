package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"gamehub/internal/transport/rest/middleware"
)

// RoomHandler handles room and score endpoints
type RoomHandler struct {
	rooms RoomCoordinator
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms RoomCoordinator) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// RoomRequest is the request body for join and leave
type RoomRequest struct {
	GameID string `json:"gameId"`
}

// Join handles POST /v1/room/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "gameId is required")
		return
	}

	if err := h.rooms.Join(r.Context(), req.GameID, userID); err != nil {
		logrus.WithField("gameId", req.GameID).Error("join failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Leave handles POST /v1/room/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "gameId is required")
		return
	}

	if err := h.rooms.Leave(r.Context(), req.GameID, userID); err != nil {
		logrus.WithField("gameId", req.GameID).Error("leave failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// StartGame handles POST /v1/start-game
func (h *RoomHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "gameId is required")
		return
	}

	sessionID, players, err := h.rooms.StartGame(r.Context(), req.GameID, userID)
	if err != nil {
		logrus.WithField("gameId", req.GameID).Error("start game failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"sessionId": sessionID,
		"players":   players,
	})
}

// UpdateScoreRequest is the request body for update-score
type UpdateScoreRequest struct {
	GameID    string `json:"gameId"`
	SessionID string `json:"sessionId"`
	Score     *int   `json:"score"`
}

// UpdateScore handles POST /v1/update-score
func (h *RoomHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.GameID == "" || req.SessionID == "" || req.Score == nil {
		writeError(w, http.StatusBadRequest, "gameId, sessionId and score are required")
		return
	}

	if err := h.rooms.UpdateScore(r.Context(), req.GameID, req.SessionID, userID, *req.Score); err != nil {
		logrus.WithField("gameId", req.GameID).Error("update score failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Leaderboard handles GET /v1/leaderboard
func (h *RoomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	sessionID := r.URL.Query().Get("sessionId")

	if gameID == "" || sessionID == "" {
		writeError(w, http.StatusBadRequest, "gameId and sessionId are required")
		return
	}

	rows, err := h.rooms.Leaderboard(r.Context(), gameID, sessionID)
	if err != nil {
		logrus.WithField("gameId", gameID).Error("leaderboard failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": rows})
}

// Cleanup handles GET /v1/cron/cleanup-rooms
func (h *RoomHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	checked, cleaned, err := h.rooms.CleanupRooms(r.Context())
	if err != nil {
		logrus.Error("room cleanup failed: ", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"roomsChecked": checked,
		"roomsCleaned": cleaned,
	})
}
