package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"gamehub/internal/service"
	"gamehub/internal/transport/rest/handler"
	"gamehub/internal/transport/rest/middleware"
	"gamehub/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	RoomService     *service.RoomService
	PresenceService *service.PresenceService
	GameService     *service.GameService
	UserService     *service.UserService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	roomHandler := handler.NewRoomHandler(c.RoomService)
	presenceHandler := handler.NewPresenceHandler(c.PresenceService)
	gameHandler := handler.NewGameHandler(c.GameService)
	userHandler := handler.NewUserHandler(c.UserService)
	wsHandler := ws.NewHandler(c.WSHub)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games", gameHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/presence", presenceHandler.Heartbeat).Methods("POST", "OPTIONS")
	v1.HandleFunc("/presence", presenceHandler.Count).Methods("GET", "OPTIONS")
	v1.HandleFunc("/cron/cleanup-rooms", roomHandler.Cleanup).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	authed := v1.NewRoute().Subrouter()
	authed.Use(authMW.RequireUser)

	authed.HandleFunc("/room/join", roomHandler.Join).Methods("POST", "OPTIONS")
	authed.HandleFunc("/room/leave", roomHandler.Leave).Methods("POST", "OPTIONS")
	authed.HandleFunc("/start-game", roomHandler.StartGame).Methods("POST", "OPTIONS")
	authed.HandleFunc("/update-score", roomHandler.UpdateScore).Methods("POST", "OPTIONS")
	authed.HandleFunc("/leaderboard", roomHandler.Leaderboard).Methods("GET", "OPTIONS")
	authed.HandleFunc("/user/history", userHandler.History).Methods("GET", "OPTIONS")
	authed.HandleFunc("/user/update", userHandler.Update).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	authed.HandleFunc("/ws/{channel}", wsHandler.Serve).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
