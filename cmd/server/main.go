package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gamehub/internal/bus"
	"gamehub/internal/cache"
	"gamehub/internal/config"
	"gamehub/internal/repository"
	"gamehub/internal/service"
	"gamehub/internal/transport/rest"
	"gamehub/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logrus.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logrus.Fatal("Failed to ping MongoDB: ", err)
	}
	logrus.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logrus.Fatal("Failed to ping Redis: ", err)
	}
	logrus.Info("Connected to Redis")

	// Event bus and WebSocket hub
	eventBus := bus.NewRedisBus(rdb)
	wsHub := ws.NewHub(eventBus)

	// Repositories
	scoreRepo := repository.NewScoreRepo(db)
	userRepo := repository.NewUserRepo(db)
	gameRepo := repository.NewGameRepo(db)

	// Caches
	roomCache := cache.NewRoomCache(rdb)
	playerCache := cache.NewPlayerCache(rdb)
	scoreCache := cache.NewScoreCache(rdb)
	presenceCache := cache.NewPresenceCache(rdb)

	// Services
	authSvc := service.NewAuthService(userRepo)
	roomSvc := service.NewRoomService(roomCache, playerCache, scoreCache, scoreRepo, userRepo, eventBus)
	presenceSvc := service.NewPresenceService(presenceCache, eventBus)
	gameSvc := service.NewGameService(gameRepo)
	userSvc := service.NewUserService(userRepo, scoreRepo, gameRepo)

	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		RoomService:     roomSvc,
		PresenceService: presenceSvc,
		GameService:     gameSvc,
		UserService:     userSvc,
		WSHub:           wsHub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logrus.Infof("Server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("ListenAndServe: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	logrus.Info("Server exited")
}
