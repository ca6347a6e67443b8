package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"gamehub/internal/transport/rest/middleware"
)

const historyLimit = 50

// UserHandler handles profile and history endpoints
type UserHandler struct {
	profiles Profiles
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles Profiles) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// UpdateProfileRequest is the request body for a profile update
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	GameplayID  string `json:"gameplay_id"`
}

// Update handles POST /v1/user/update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DisplayName == "" && req.GameplayID == "" {
		writeError(w, http.StatusBadRequest, "no data provided")
		return
	}

	if err := h.profiles.UpdateProfile(r.Context(), userID, req.DisplayName, req.GameplayID); err != nil {
		logrus.WithField("userId", userID).Error("profile update failed: ", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// History handles GET /v1/user/history
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	rows, err := h.profiles.History(r.Context(), userID, historyLimit)
	if err != nil {
		logrus.WithField("userId", userID).Error("history failed: ", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": rows})
}
