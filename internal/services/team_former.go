// internal/services/team_former.go
// Random pairing of registered players into doubles teams

package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/utils"
)

// TeamFormer draws registered players without replacement and pairs them
// two at a time into teams. An odd player out becomes a one-player ghost
// team, which plays its matches like any other team.
type TeamFormer struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewTeamFormer creates a new team former.
func NewTeamFormer(repos *repositories.Container, logger *log.Logger) *TeamFormer {
	return &TeamFormer{repos: repos, logger: logger}
}

// FormTeams draws the tournament's registered players into randomly
// paired teams, seeded 1..T in the order generated. Any existing teams
// for the tournament are purged first, matching the "generate-teams
// purges existing teams/matches" reset semantics.
func (f *TeamFormer) FormTeams(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	players, err := f.repos.Registration.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registered players: %w", err)
	}
	if len(players) < 2 {
		return nil, ErrInvalidInput
	}

	shuffled := make([]*models.Player, len(players))
	copy(shuffled, players)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := utils.RandomInt(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	tx, err := f.repos.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := f.purgeExistingTx(ctx, tx, tournamentID); err != nil {
		return nil, err
	}

	teams := make([]*models.Team, 0, (len(shuffled)+1)/2)
	seed := 1
	for i := 0; i+1 < len(shuffled); i += 2 {
		t := &models.Team{
			TournamentID: tournamentID,
			Player1ID:    shuffled[i].ID,
			Player2ID:    &shuffled[i+1].ID,
			IsGhostTeam:  false,
			SeedNumber:   seed,
		}
		if err := f.repos.Team.CreateTx(ctx, tx, t); err != nil {
			return nil, fmt.Errorf("failed to create team: %w", err)
		}
		teams = append(teams, t)
		seed++
	}
	if len(shuffled)%2 == 1 {
		last := shuffled[len(shuffled)-1]
		t := &models.Team{
			TournamentID: tournamentID,
			Player1ID:    last.ID,
			IsGhostTeam:  true,
			SeedNumber:   seed,
		}
		if err := f.repos.Team.CreateTx(ctx, tx, t); err != nil {
			return nil, fmt.Errorf("failed to create ghost team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	f.logger.Printf("formed %d teams for tournament %d", len(teams), tournamentID)

	return teams, nil
}

// purgeExistingTx removes any teams and matches already generated for
// this tournament (and the advancement edges among them) before a fresh
// draw, self-referential FKs nulled first to avoid constraint violations.
func (f *TeamFormer) purgeExistingTx(ctx context.Context, tx *sql.Tx, tournamentID int) error {
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
	return nil
}
