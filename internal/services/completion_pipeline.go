// internal/services/completion_pipeline.go
// Tournament completion: final places, teammate history, seasonal
// points, cash payout and ace-pot resolution

package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// CompletionPipeline runs the five-step settlement that turns a
// finished bracket into final placings and league-wide rewards. Every
// step runs in one transaction; RecalculationService reruns steps 2-5
// after resetting a tournament's derived state.
type CompletionPipeline struct {
	repos        *repositories.Container
	notification *NotificationService
	logger       *log.Logger
}

// NewCompletionPipeline creates a new completion pipeline.
func NewCompletionPipeline(repos *repositories.Container, notification *NotificationService, logger *log.Logger) *CompletionPipeline {
	return &CompletionPipeline{repos: repos, notification: notification, logger: logger}
}

// Complete runs all five settlement steps for a tournament that has no
// matches left to play.
func (p *CompletionPipeline) Complete(ctx context.Context, tournamentID int) error {
	teams, err := p.repos.Team.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}
	matches, err := p.repos.Match.GetByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}

	tx, err := p.repos.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := p.assignFinalPlacesTx(ctx, tx, teams, matches); err != nil {
		return err
	}
	if err := p.settleTx(ctx, tx, tournamentID, teams, matches); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if err := p.repos.Tournament.UpdateStatus(ctx, tournamentID, models.StatusCompleted); err != nil {
		return err
	}

	acePotPaid := false
	for _, t := range teams {
		if t.FinalPlace != nil && *t.FinalPlace == 1 {
			acePotPaid = teamUndefeated(t, matches)
		}
	}
	tournament, err := p.repos.Tournament.GetByID(ctx, tournamentID)
	if err == nil {
		p.notification.NotifyTournamentCompleted(tournament, acePotPaid)
	}

	p.logger.Printf("completed tournament %d, settled %d teams", tournamentID, len(teams))
	return nil
}

// settleTx runs steps 2 through 5 against an already-placed team set.
// RecalculationService calls this directly after resetting derived
// state, skipping the step-1 placement since final_place is preserved
// across a recalculation.
func (p *CompletionPipeline) settleTx(ctx context.Context, tx *sql.Tx, tournamentID int, teams []*models.Team, matches []*models.Match) error {
	if err := p.teammateHistoryTx(ctx, tx, teams); err != nil {
		return err
	}
	if err := p.seasonalPointsTx(ctx, tx, teams, matches); err != nil {
		return err
	}
	if err := p.cashPayoutTx(ctx, tx, tournamentID, teams); err != nil {
		return err
	}
	if err := p.acePotTx(ctx, tx, tournamentID, teams, matches); err != nil {
		return err
	}
	return nil
}

// assignFinalPlacesTx assigns 1st/2nd from the terminal championship
// match and 3rd onward in the reverse order teams were eliminated.
func (p *CompletionPipeline) assignFinalPlacesTx(ctx context.Context, tx *sql.Tx, teams []*models.Team, matches []*models.Match) error {
	teamByID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	var terminal *models.Match
	for _, m := range matches {
		if m.RoundType == models.RoundChampionship && m.Status == models.MatchCompleted {
			if terminal == nil || m.MatchOrder > terminal.MatchOrder {
				terminal = m
			}
		}
	}
	if terminal == nil || terminal.WinnerTeamID == nil || terminal.LoserTeamID == nil {
		return fmt.Errorf("no completed championship match to place a champion from")
	}

	placed := make(map[int]bool)
	if err := p.placeTeamTx(ctx, tx, teamByID, *terminal.WinnerTeamID, 1, placed); err != nil {
		return err
	}
	if err := p.placeTeamTx(ctx, tx, teamByID, *terminal.LoserTeamID, 2, placed); err != nil {
		return err
	}

	placeCounter := 3
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.RoundType == models.RoundChampionship || m.Status != models.MatchCompleted || m.LoserTeamID == nil {
			continue
		}
		if placed[*m.LoserTeamID] {
			continue
		}
		t := teamByID[*m.LoserTeamID]
		if t == nil || t.IsGhostTeam {
			placed[*m.LoserTeamID] = true
			continue
		}
		if err := p.placeTeamTx(ctx, tx, teamByID, *m.LoserTeamID, placeCounter, placed); err != nil {
			return err
		}
		placeCounter++
	}
	return nil
}

func (p *CompletionPipeline) placeTeamTx(ctx context.Context, tx *sql.Tx, teamByID map[int]*models.Team, teamID, place int, placed map[int]bool) error {
	t := teamByID[teamID]
	placed[teamID] = true
	if t == nil || t.IsGhostTeam {
		return nil
	}
	placeCopy := place
	t.FinalPlace = &placeCopy
	return p.repos.Team.UpdateFinalPlace(ctx, tx, teamID, &placeCopy)
}

// teammateHistoryTx upserts the directed pairing rows for every
// non-ghost, fully placed team.
func (p *CompletionPipeline) teammateHistoryTx(ctx context.Context, tx *sql.Tx, teams []*models.Team) error {
	for _, t := range teams {
		if t.IsGhostTeam || t.Player2ID == nil || t.FinalPlace == nil {
			continue
		}
		p1, p2 := t.Player1ID, *t.Player2ID
		if err := p.upsertDirectedHistoryTx(ctx, tx, p1, p2, float64(*t.FinalPlace)); err != nil {
			return err
		}
		if err := p.upsertDirectedHistoryTx(ctx, tx, p2, p1, float64(*t.FinalPlace)); err != nil {
			return err
		}
	}
	return nil
}

func (p *CompletionPipeline) upsertDirectedHistoryTx(ctx context.Context, tx *sql.Tx, playerID, teammateID int, place float64) error {
	h, err := p.repos.History.GetTx(ctx, tx, playerID, teammateID)
	if err != nil {
		return err
	}
	if h == nil {
		h = &models.TeamHistory{PlayerID: playerID, TeammateID: teammateID, TimesPaired: 0, AveragePlace: 0}
	}
	h.AveragePlace = (h.AveragePlace*float64(h.TimesPaired) + place) / float64(h.TimesPaired+1)
	h.TimesPaired++
	return p.repos.History.UpsertTx(ctx, tx, h)
}

// seasonalPointsTx computes and credits each team's seasonal points.
func (p *CompletionPipeline) seasonalPointsTx(ctx context.Context, tx *sql.Tx, teams []*models.Team, matches []*models.Match) error {
	for _, t := range teams {
		wins, undefeated := teamRecord(t, matches)
		points := 1 + wins
		if t.FinalPlace != nil && *t.FinalPlace <= 4 {
			points += 2
		}
		if undefeated {
			points += 3
		}

		if err := p.repos.Team.UpdatePointsEarned(ctx, tx, t.ID, points); err != nil {
			return err
		}
		if err := p.repos.Player.AdjustSeasonalPoints(ctx, tx, t.Player1ID, points); err != nil {
			return err
		}
		if t.Player2ID != nil {
			if err := p.repos.Player.AdjustSeasonalPoints(ctx, tx, *t.Player2ID, points); err != nil {
				return err
			}
		}
		t.PointsEarned = points
	}
	return nil
}

// teamRecord counts a team's non-bye wins and reports whether it lost
// no completed non-bye match.
func teamRecord(t *models.Team, matches []*models.Match) (wins int, undefeated bool) {
	undefeated = true
	for _, m := range matches {
		if m.Status != models.MatchCompleted || m.Team2ID == nil {
			continue // bye matches never count toward wins or losses
		}
		if m.WinnerTeamID != nil && *m.WinnerTeamID == t.ID {
			wins++
		}
		if m.LoserTeamID != nil && *m.LoserTeamID == t.ID {
			undefeated = false
		}
	}
	return wins, undefeated
}

func teamUndefeated(t *models.Team, matches []*models.Match) bool {
	_, undefeated := teamRecord(t, matches)
	return undefeated
}

// cashPayoutTx distributes the 1st/2nd place cash prizes drawn from
// the registration pot.
func (p *CompletionPipeline) cashPayoutTx(ctx context.Context, tx *sql.Tx, tournamentID int, teams []*models.Team) error {
	registrations, err := p.repos.Registration.CountByTournamentID(ctx, tournamentID)
	if err != nil {
		return err
	}
	pot := float64(5 * registrations)

	var first, second float64
	if pot <= 60 {
		second = 20
		first = pot - 20
	} else {
		second = 40
		if pot-40 < second {
			second = pot - 40
		}
		first = pot - second
	}

	for _, t := range teams {
		if t.FinalPlace == nil {
			continue
		}
		var prize float64
		switch *t.FinalPlace {
		case 1:
			prize = first
		case 2:
			prize = second
		default:
			continue
		}
		if err := p.payTeamCashTx(ctx, tx, t, prize); err != nil {
			return err
		}
	}
	return nil
}

func (p *CompletionPipeline) payTeamCashTx(ctx context.Context, tx *sql.Tx, t *models.Team, amount float64) error {
	members := 1
	if t.Player2ID != nil {
		members = 2
	}
	share := amount / float64(members)
	if err := p.repos.Player.AdjustSeasonalCash(ctx, tx, t.Player1ID, share); err != nil {
		return err
	}
	if t.Player2ID != nil {
		if err := p.repos.Player.AdjustSeasonalCash(ctx, tx, *t.Player2ID, share); err != nil {
			return err
		}
	}
	return nil
}

// acePotTx pays the rolling ace-pot balance to an undefeated champion.
func (p *CompletionPipeline) acePotTx(ctx context.Context, tx *sql.Tx, tournamentID int, teams []*models.Team, matches []*models.Match) error {
	var champion *models.Team
	for _, t := range teams {
		if t.FinalPlace != nil && *t.FinalPlace == 1 {
			champion = t
		}
	}

	balance, err := p.repos.AcePot.CurrentBalanceTx(ctx, tx)
	if err != nil {
		return err
	}

	paid := 0.0
	if champion != nil && teamUndefeated(champion, matches) && balance > 0 {
		paid = balance
		if err := p.payTeamCashTx(ctx, tx, champion, paid); err != nil {
			return err
		}
		entry := &models.AcePotEntry{
			TournamentID: &tournamentID,
			EntryType:    models.AcePotPayout,
			Amount:       -paid,
			BalanceAfter: 0,
			Description:  fmt.Sprintf("Paid out to %s, undefeated champion", p.championNames(ctx, champion)),
		}
		if err := p.repos.AcePot.AppendTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	return p.repos.Tournament.UpdateAcePotPayoutTx(ctx, tx, tournamentID, paid)
}

// championNames resolves a champion team's player nicknames for the
// ace-pot payout ledger description. Falls back gracefully if a lookup
// fails; the ledger entry's amount and balance are authoritative either
// way.
func (p *CompletionPipeline) championNames(ctx context.Context, champion *models.Team) string {
	names := make([]string, 0, 2)
	if p1, err := p.repos.Player.GetByID(ctx, champion.Player1ID); err == nil {
		names = append(names, p1.Nickname)
	}
	if champion.Player2ID != nil {
		if p2, err := p.repos.Player.GetByID(ctx, *champion.Player2ID); err == nil {
			names = append(names, p2.Nickname)
		}
	}
	if len(names) == 0 {
		return "champion"
	}
	return strings.Join(names, " & ")
}
