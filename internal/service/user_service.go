package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"gamehub/internal/model"
	"gamehub/internal/repository"
)

// UserService handles profile updates and play history.
type UserService struct {
	userRepo  repository.UserRepo
	scoreRepo repository.ScoreRepo
	gameRepo  repository.GameRepo
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo, scoreRepo repository.ScoreRepo, gameRepo repository.GameRepo) *UserService {
	return &UserService{
		userRepo:  userRepo,
		scoreRepo: scoreRepo,
		gameRepo:  gameRepo,
	}
}

// UpdateProfile sets the caller's display name and/or gameplay id.
func (s *UserService) UpdateProfile(ctx context.Context, userID, displayName, gameplayID string) error {
	if err := s.userRepo.UpdateProfile(ctx, userID, displayName, gameplayID); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// History returns the caller's most recent score rows with game names
// attached. Name lookups degrade to the game code.
func (s *UserService) History(ctx context.Context, userID string, limit int) ([]*model.HistoryRow, error) {
	entries, err := s.scoreRepo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	names := make(map[string]string)
	rows := make([]*model.HistoryRow, len(entries))
	for i, e := range entries {
		name, ok := names[e.GameCode]
		if !ok {
			name = e.GameCode
			if game, err := s.gameRepo.GetByCode(ctx, e.GameCode); err != nil {
				logrus.WithField("gameCode", e.GameCode).Warn("failed to resolve game name: ", err)
			} else if game != nil {
				name = game.Name
			}
			names[e.GameCode] = name
		}
		rows[i] = &model.HistoryRow{
			GameCode:  e.GameCode,
			SessionID: e.SessionID,
			Score:     e.Score,
			Exited:    e.Exited,
			CreatedAt: e.CreatedAt,
			GameName:  name,
		}
	}
	return rows, nil
}
