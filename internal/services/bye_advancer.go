// internal/services/bye_advancer.go
// Automatic completion of bracket matches that can never receive a
// second team

package services

import (
	"context"
	"database/sql"
	"log"

	"tournament-planner/internal/repositories"
)

// ByeAutoAdvancer is the single mechanism that completes a one-team
// match once no upstream match can still deliver its missing opponent,
// and propagates the lone team forward. BracketBuilder relies on it to
// resolve every first-round bye within the same transaction that built
// the graph; ScoringEngine relies on it after every score report,
// since completing one match can free up the next bye in the chain.
type ByeAutoAdvancer struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewByeAutoAdvancer creates a new bye advancer.
func NewByeAutoAdvancer(repos *repositories.Container, logger *log.Logger) *ByeAutoAdvancer {
	return &ByeAutoAdvancer{repos: repos, logger: logger}
}

// RunTx sweeps every pending/scheduled single-team match for a
// tournament and auto-completes the ones no longer waiting on an
// upstream feed, entirely within the caller's transaction. Completing
// a match can make its own downstream match eligible, so the sweep
// repeats until a full pass advances nothing — the bracket graph is
// acyclic, so this always terminates.
func (a *ByeAutoAdvancer) RunTx(ctx context.Context, tx *sql.Tx, tournamentID int) error {
	for {
		advanced, err := a.sweep(ctx, tx, tournamentID)
		if err != nil {
			return err
		}
		if !advanced {
			return nil
		}
	}
}

func (a *ByeAutoAdvancer) sweep(ctx context.Context, tx *sql.Tx, tournamentID int) (bool, error) {
	candidates, err := a.repos.Match.ListPendingWithSingleTeamTx(ctx, tx, tournamentID)
	if err != nil {
		return false, err
	}

	advancedAny := false
	for _, m := range candidates {
		soleTeam, ok := m.SoleTeam()
		if !ok {
			continue
		}

		feeds, err := a.repos.Match.CountFeedsTx(ctx, tx, m.ID)
		if err != nil {
			return false, err
		}
		if feeds > 0 {
			continue
		}

		if err := a.repos.Match.AutoCompleteByeTx(ctx, tx, m.ID, soleTeam); err != nil {
			return false, err
		}
		if m.WinnerAdvancesToMatch != nil {
			if err := a.repos.Match.AssignSlotTx(ctx, tx, *m.WinnerAdvancesToMatch, soleTeam); err != nil {
				return false, err
			}
		}

		a.logger.Printf("auto-advanced bye in match %d (team %d)", m.ID, soleTeam)
		advancedAny = true
	}

	return advancedAny, nil
}
