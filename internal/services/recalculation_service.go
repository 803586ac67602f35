// internal/services/recalculation_service.go
// Manual recalculation and final-place override for completed
// tournaments

package services

import (
	"context"
	"database/sql"
	"log"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// RecalculationService reverses a tournament's previously applied
// seasonal points and teammate-history increments and reruns
// settlement, for operators correcting a mis-scored bracket after the
// fact. Final places are never reset by recalculation — they are
// either what CompletionPipeline already assigned or an operator's
// explicit UpdateTeamPlace override.
type RecalculationService struct {
	repos      *repositories.Container
	completion *CompletionPipeline
	analytics  *AnalyticsService
	logger     *log.Logger
}

// NewRecalculationService creates a new recalculation service.
func NewRecalculationService(repos *repositories.Container, completion *CompletionPipeline, analytics *AnalyticsService, logger *log.Logger) *RecalculationService {
	return &RecalculationService{repos: repos, completion: completion, analytics: analytics, logger: logger}
}

// RecalculateTournament undoes a Completed tournament's seasonal
// points and teammate-history contributions and reruns steps 2-5 of
// settlement from the preserved final places.
func (s *RecalculationService) RecalculateTournament(ctx context.Context, tournamentID int) error {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return ErrTournamentNotFound
	}
	if tournament.Status != models.StatusCompleted {
		return ErrInvalidState
	}

	teams, err := s.repos.Team.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}
	matches, err := s.repos.Match.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.reversePointsTx(ctx, tx, teams); err != nil {
		return err
	}
	if err := s.reverseHistoryTx(ctx, tx, teams); err != nil {
		return err
	}
	if err := s.completion.settleTx(ctx, tx, tournamentID, teams, matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.analytics.LogEvent(ctx, "tournament_recalculated", map[string]interface{}{
		"tournament_id": tournamentID,
	})
	s.logger.Printf("recalculated tournament %d", tournamentID)
	return nil
}

// reversePointsTx subtracts each team's previously credited seasonal
// points from its players, floored at zero, then zeroes every team's
// points_earned so seasonalPointsTx starts clean.
func (s *RecalculationService) reversePointsTx(ctx context.Context, tx *sql.Tx, teams []*models.Team) error {
	for _, t := range teams {
		if t.PointsEarned == 0 {
			continue
		}
		if err := s.repos.Player.AdjustSeasonalPoints(ctx, tx, t.Player1ID, -t.PointsEarned); err != nil {
			return err
		}
		if t.Player2ID != nil {
			if err := s.repos.Player.AdjustSeasonalPoints(ctx, tx, *t.Player2ID, -t.PointsEarned); err != nil {
				return err
			}
		}
		t.PointsEarned = 0
	}
	if len(teams) == 0 {
		return nil
	}
	return s.repos.Team.ClearPointsEarned(ctx, tx, teams[0].TournamentID)
}

// reverseHistoryTx undoes the directed TeamHistory increment this
// tournament's pairing contributed, deleting the row outright if this
// was the only time the two players were ever paired.
func (s *RecalculationService) reverseHistoryTx(ctx context.Context, tx *sql.Tx, teams []*models.Team) error {
	for _, t := range teams {
		if t.IsGhostTeam || t.Player2ID == nil || t.FinalPlace == nil {
			continue
		}
		p1, p2 := t.Player1ID, *t.Player2ID
		place := float64(*t.FinalPlace)
		if err := s.reverseDirectedHistoryTx(ctx, tx, p1, p2, place); err != nil {
			return err
		}
		if err := s.reverseDirectedHistoryTx(ctx, tx, p2, p1, place); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecalculationService) reverseDirectedHistoryTx(ctx context.Context, tx *sql.Tx, playerID, teammateID int, place float64) error {
	h, err := s.repos.History.GetTx(ctx, tx, playerID, teammateID)
	if err != nil || h == nil {
		return err
	}
	if h.TimesPaired <= 1 {
		return s.repos.History.DeleteTx(ctx, tx, h.ID)
	}
	n := h.TimesPaired
	h.AveragePlace = (h.AveragePlace*float64(n) - place) / float64(n-1)
	h.TimesPaired = n - 1
	return s.repos.History.UpsertTx(ctx, tx, h)
}

// UpdateTeamPlace writes a manual final-place override with no
// cascade; the caller is expected to invoke RecalculateTournament
// afterward to refresh derived seasonal points and cash.
func (s *RecalculationService) UpdateTeamPlace(ctx context.Context, teamID, newPlace int) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	place := newPlace
	if err := s.repos.Team.UpdateFinalPlace(ctx, tx, teamID, &place); err != nil {
		return err
	}
	return tx.Commit()
}
