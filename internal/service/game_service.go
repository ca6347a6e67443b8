package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"gamehub/internal/model"
	"gamehub/internal/repository"
)

// fallbackGames is served when the catalog database is unreachable so
// the lobby list keeps working without it.
var fallbackGames = []*model.Game{
	{ID: 1, Code: "ttt", Name: "Tic Tac Toe", Description: "Classic game of X and O. Be the first to get three in a row."},
	{ID: 2, Code: "rps", Name: "Rock Paper Scissors", Description: "Quick game of chance. Rock beats scissors, scissors beats paper, paper beats rock."},
	{ID: 3, Code: "quiz", Name: "Quick Quiz", Description: "Test your knowledge against friends with random trivia questions."},
	{ID: 4, Code: "mem", Name: "Memory Match", Description: "Find matching pairs of cards. The player with the most pairs wins."},
}

// GameService serves the game catalog.
type GameService struct {
	gameRepo repository.GameRepo
}

// NewGameService creates a new game service
func NewGameService(gameRepo repository.GameRepo) *GameService {
	return &GameService{gameRepo: gameRepo}
}

// List returns the catalog, optionally filtered to one game code. A
// failed read falls back to the built-in list rather than erroring.
func (s *GameService) List(ctx context.Context, code string) []*model.Game {
	if code != "" {
		game, err := s.gameRepo.GetByCode(ctx, code)
		if err != nil {
			logrus.Warn("game catalog unreachable, using fallback: ", err)
			return filterGames(fallbackGames, code)
		}
		if game == nil {
			return []*model.Game{}
		}
		return []*model.Game{game}
	}

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		logrus.Warn("game catalog unreachable, using fallback: ", err)
		return fallbackGames
	}
	return games
}

func filterGames(games []*model.Game, code string) []*model.Game {
	out := []*model.Game{}
	for _, g := range games {
		if g.Code == code {
			out = append(out, g)
		}
	}
	return out
}
