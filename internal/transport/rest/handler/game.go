package handler

import "net/http"

// GameHandler handles the game catalog endpoint
type GameHandler struct {
	catalog Catalog
}

// NewGameHandler creates a new game handler
func NewGameHandler(catalog Catalog) *GameHandler {
	return &GameHandler{catalog: catalog}
}

// List handles GET /v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("gameId")
	games := h.catalog.List(r.Context(), code)
	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}
