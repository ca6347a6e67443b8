package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// PresenceHandler handles the heartbeat endpoints
type PresenceHandler struct {
	presence PresenceTracker
}

// NewPresenceHandler creates a new presence handler
func NewPresenceHandler(presence PresenceTracker) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// HeartbeatRequest is the request body for a presence heartbeat
type HeartbeatRequest struct {
	UserID string `json:"userId"`
}

// Heartbeat handles POST /v1/presence
func (h *PresenceHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	count, err := h.presence.Heartbeat(r.Context(), req.UserID)
	if err != nil {
		logrus.Error("presence heartbeat failed: ", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Count handles GET /v1/presence
func (h *PresenceHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.presence.Count(r.Context())
	if err != nil {
		logrus.Error("presence count failed: ", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
