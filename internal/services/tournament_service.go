// internal/services/tournament_service.go
// Tournament lifecycle: creation, player registration, and the
// generate-teams / generate-matches transitions that hand off to the
// bracket engine

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/config"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// TournamentService owns the lifecycle of a single recurring event:
// creation, the registration window, and the one-way handoff into
// team formation and bracket generation. Live scoring is handled by
// MatchService/ScoringEngine once a bracket exists.
type TournamentService struct {
	repos        *repositories.Container
	cache        *CacheService
	notification *NotificationService
	analytics    *AnalyticsService
	recalc       *RecalculationService
	teamFormer   *TeamFormer
	bracket      *BracketBuilder
	defaults     config.TournamentDefaults
	logger       *log.Logger
}

// NewTournamentService creates a new tournament service.
func NewTournamentService(
	repos *repositories.Container,
	cache *CacheService,
	notification *NotificationService,
	analytics *AnalyticsService,
	recalc *RecalculationService,
	teamFormer *TeamFormer,
	bracket *BracketBuilder,
	defaults config.TournamentDefaults,
	logger *log.Logger,
) *TournamentService {
	return &TournamentService{
		repos:        repos,
		cache:        cache,
		notification: notification,
		analytics:    analytics,
		recalc:       recalc,
		teamFormer:   teamFormer,
		bracket:      bracket,
		defaults:     defaults,
		logger:       logger,
	}
}

// Create opens a new tournament for the given date and registers its
// initial player list, each with one ace-pot buy-in.
func (s *TournamentService) Create(ctx context.Context, date time.Time, playerIDs []int) (*models.Tournament, error) {
	if len(playerIDs) < 2 {
		return nil, ErrInsufficientParticipants
	}

	t := &models.Tournament{
		TournamentDate: date,
		Status:         models.StatusRegistrationOpen,
		StationCount:   s.defaults.StationCount,
		EntryFee:       s.defaults.EntryFee,
		AcePotBuyIn:    s.defaults.AcePotBuyIn,
	}
	if err := s.repos.Tournament.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	buyIns := make(map[int]int, len(playerIDs))
	for _, id := range playerIDs {
		buyIns[id] = 1
	}
	if err := s.RegisterPlayers(ctx, t.ID, buyIns); err != nil {
		return nil, err
	}

	s.analytics.LogEvent(ctx, "tournament_created", map[string]interface{}{
		"tournament_id": t.ID,
		"player_count":  len(playerIDs),
	})

	return t, nil
}

// RegisterPlayers appends players to a tournament's pool and records
// their combined buy-ins as a single ace-pot contribution.
func (s *TournamentService) RegisterPlayers(ctx context.Context, tournamentID int, buyIns map[int]int) error {
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	total := 0
	for playerID, count := range buyIns {
		if count < 1 {
			count = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO registrations (tournament_id, player_id, buy_ins, registered_at) VALUES (?, ?, ?, NOW())`,
			tournamentID, playerID, count,
		); err != nil {
			return fmt.Errorf("failed to register player %d: %w", playerID, err)
		}
		total += count
	}

	if total > 0 {
		balance, err := s.repos.AcePot.CurrentBalanceTx(ctx, tx)
		if err != nil {
			return err
		}
		entry := &models.AcePotEntry{
			TournamentID: &tournamentID,
			EntryType:    models.AcePotContribution,
			Amount:       float64(total),
			BalanceAfter: balance + float64(total),
			Description:  fmt.Sprintf("%d buy-in(s) collected at registration", total),
		}
		if err := s.repos.AcePot.AppendTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID fetches a tournament, caching the lookup briefly since it is
// read far more often than it changes.
func (s *TournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	var t models.Tournament
	cacheKey := fmt.Sprintf("tournament_%d", id)
	if err := s.cache.Get(cacheKey, &t); err == nil {
		return &t, nil
	}

	tournament, err := s.repos.Tournament.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey, tournament, 30*time.Second)
	return tournament, nil
}

// List returns every tournament, most recent first.
func (s *TournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.repos.Tournament.List(ctx)
}

// AcePotLedger returns the full ace-pot ledger across every tournament,
// newest first.
func (s *TournamentService) AcePotLedger(ctx context.Context) ([]*models.AcePotEntry, error) {
	return s.repos.AcePot.List(ctx)
}

// Teams lists a tournament's teams in seed order.
func (s *TournamentService) Teams(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	return s.repos.Team.GetByTournamentID(ctx, tournamentID)
}

// TournamentAudit is the full team/match dump an operator reads to
// verify a completion pipeline run before trusting it.
type TournamentAudit struct {
	Tournament *models.Tournament `json:"tournament"`
	Teams      []*AuditTeam       `json:"teams"`
	Matches    []*models.Match    `json:"matches"`
}

// AuditTeam carries a team's roster nicknames alongside its derived
// placement, since the raw Team model only stores player ids.
type AuditTeam struct {
	*models.Team
	Player1Nickname string  `json:"player1_nickname"`
	Player2Nickname *string `json:"player2_nickname,omitempty"`
}

// Audit assembles the complete team/match state of a tournament for
// operator review, independent of the derived seasonal-points and
// ace-pot side effects those teams/matches already produced.
func (s *TournamentService) Audit(ctx context.Context, tournamentID int) (*TournamentAudit, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.repos.Team.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	matches, err := s.repos.Match.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	auditTeams := make([]*AuditTeam, 0, len(teams))
	for _, t := range teams {
		at := &AuditTeam{Team: t, Player1Nickname: "Unknown"}
		if p1, err := s.repos.Player.GetByID(ctx, t.Player1ID); err == nil {
			at.Player1Nickname = p1.Nickname
		}
		if t.Player2ID != nil {
			if p2, err := s.repos.Player.GetByID(ctx, *t.Player2ID); err == nil {
				at.Player2Nickname = &p2.Nickname
			}
		}
		auditTeams = append(auditTeams, at)
	}

	return &TournamentAudit{Tournament: tournament, Teams: auditTeams, Matches: matches}, nil
}

// GenerateTeams draws the registered pool into random doubles teams.
func (s *TournamentService) GenerateTeams(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusRegistrationOpen {
		return nil, ErrInvalidState
	}
	teams, err := s.teamFormer.FormTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	s.analytics.LogEvent(ctx, "teams_formed", map[string]interface{}{
		"tournament_id": tournamentID,
		"team_count":    len(teams),
	})
	return teams, nil
}

// GenerateMatches builds the double-elimination bracket from the
// tournament's current teams and moves it into InProgress.
func (s *TournamentService) GenerateMatches(ctx context.Context, tournamentID int, stations *int) ([]*models.Match, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusRegistrationOpen {
		return nil, ErrInvalidState
	}

	teams, err := s.repos.Team.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 4 {
		return nil, ErrInvalidInput
	}

	matches, err := s.bracket.Build(ctx, tournamentID, teams)
	if err != nil {
		return nil, err
	}

	stationCount := tournament.StationCount
	if stations != nil {
		stationCount = *stations
	}
	if err := s.repos.Tournament.StartTournament(ctx, tournamentID, stationCount); err != nil {
		return nil, fmt.Errorf("failed to start tournament: %w", err)
	}
	s.cache.Delete(fmt.Sprintf("tournament_%d", tournamentID))

	s.notification.NotifyBracketGenerated(tournament, len(teams))
	s.analytics.LogEvent(ctx, "bracket_generated", map[string]interface{}{
		"tournament_id": tournamentID,
		"team_count":    len(teams),
		"match_count":   len(matches),
	})
	return matches, nil
}

// UpdateStatus applies an operator-driven status change.
func (s *TournamentService) UpdateStatus(ctx context.Context, tournamentID int, status models.TournamentStatus) error {
	if err := s.repos.Tournament.UpdateStatus(ctx, tournamentID, status); err != nil {
		return err
	}
	s.cache.Delete(fmt.Sprintf("tournament_%d", tournamentID))
	return nil
}

// Delete removes a tournament and its bracket. If the tournament had
// already completed, its seasonal-points and teammate-history
// contributions are reversed first, mirroring RecalculationService's
// reversal step so deleting a completed event never leaves stale
// league-wide totals behind.
func (s *TournamentService) Delete(ctx context.Context, tournamentID int) error {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}

	if tournament.Status == models.StatusCompleted {
		teams, err := s.repos.Team.GetByTournamentID(ctx, tournamentID)
		if err != nil {
			return err
		}
		tx, err := s.repos.BeginTx(ctx)
		if err != nil {
			return err
		}
		if err := s.recalc.reversePointsTx(ctx, tx, teams); err != nil {
			tx.Rollback()
			return err
		}
		if err := s.recalc.reverseHistoryTx(ctx, tx, teams); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE matches SET winner_advances_to_match_id = NULL, loser_advances_to_match_id = NULL WHERE tournament_id = ?`,
		tournamentID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, tournamentID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.cache.Delete(fmt.Sprintf("tournament_%d", tournamentID))
	return nil
}
