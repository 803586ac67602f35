// internal/services/player_service.go
// Player roster management and teammate history lookups

package services

import (
	"context"
	"fmt"
	"log"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// PlayerService handles player-related business logic.
type PlayerService struct {
	playerRepo  *repositories.PlayerRepository
	historyRepo *repositories.HistoryRepository
	logger      *log.Logger
}

// NewPlayerService creates a new player service.
func NewPlayerService(
	playerRepo *repositories.PlayerRepository,
	historyRepo *repositories.HistoryRepository,
	logger *log.Logger,
) *PlayerService {
	return &PlayerService{
		playerRepo:  playerRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// GetByID retrieves a player by ID.
func (s *PlayerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, id)
}

// List retrieves the full league roster, ranked by seasonal points.
func (s *PlayerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.playerRepo.List(ctx)
}

// Register adds a new player to the league.
func (s *PlayerService) Register(ctx context.Context, nickname string, division models.Division) (*models.Player, error) {
	player := &models.Player{
		Nickname: nickname,
		Division: division,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// UpdateProfile updates a player's nickname/division.
func (s *PlayerService) UpdateProfile(ctx context.Context, playerID int, nickname string, division models.Division) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if nickname != "" {
		player.Nickname = nickname
	}
	if division != "" {
		player.Division = division
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	return player, nil
}

// TeammateHistory returns every teammate a player has been paired with
// across past tournaments, most-frequent first.
func (s *PlayerService) TeammateHistory(ctx context.Context, playerID int) ([]*models.TeamHistory, error) {
	return s.historyRepo.ListByPlayerID(ctx, playerID)
}
