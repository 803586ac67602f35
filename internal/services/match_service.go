// internal/services/match_service.go
// Thin match-facing API over StationAllocator and ScoringEngine

package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// MatchService exposes the per-match operations a live event needs:
// reading the bracket, starting a match at a station, and reporting a
// score. The actual bracket-advancement logic lives in
// StationAllocator and ScoringEngine; this type just adds caching and
// broadcast plumbing around them.
type MatchService struct {
	repos        *repositories.Container
	cache        *CacheService
	stations     *StationAllocator
	scoring      *ScoringEngine
	notification *NotificationService
	logger       *log.Logger

	// broadcaster is wired after construction once the websocket hub
	// exists; see Broadcaster's doc comment for why.
	broadcaster Broadcaster
}

// SetBroadcaster wires the websocket hub that receives match_updated
// events. A nil broadcaster (websockets disabled) is a silent no-op.
func (s *MatchService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// NewMatchService creates a new match service.
func NewMatchService(
	repos *repositories.Container,
	cache *CacheService,
	stations *StationAllocator,
	scoring *ScoringEngine,
	notification *NotificationService,
	logger *log.Logger,
) *MatchService {
	return &MatchService{
		repos:        repos,
		cache:        cache,
		stations:     stations,
		scoring:      scoring,
		notification: notification,
		logger:       logger,
	}
}

// GetByID fetches a single match.
func (s *MatchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return s.repos.Match.GetByID(ctx, id)
}

// GetByTournamentID lists every match in a tournament, in bracket
// build/scheduling order.
func (s *MatchService) GetByTournamentID(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	return s.repos.Match.GetByTournamentID(ctx, tournamentID)
}

// StartMatch assigns a station and transitions a match to InProgress.
func (s *MatchService) StartMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	match, err := s.stations.StartMatch(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(fmt.Sprintf("tournament_matches_%d", tournamentID))
	if s.broadcaster != nil {
		s.broadcaster.BroadcastTournamentUpdate(
			strconv.Itoa(tournamentID), "match_updated", matchUpdatePayload(match, false),
		)
	}
	return match, nil
}

// ScoreMatch reports a result and advances the bracket.
func (s *MatchService) ScoreMatch(ctx context.Context, tournamentID, matchID, team1Score, team2Score int) (*models.Match, error) {
	match, err := s.scoring.ScoreMatch(ctx, tournamentID, matchID, team1Score, team2Score)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(fmt.Sprintf("tournament_matches_%d", tournamentID))
	return match, nil
}
