// internal/services/scoring_engine.go
// Live match scoring and deterministic bracket advancement

package services

import (
	"context"
	"database/sql"
	"log"
	"strconv"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// ScoringEngine applies a reported score to a match, advances the
// winner and loser along the bracket graph, and triggers tournament
// completion once no work remains. Every effect of one call — the
// score write, the rollback of a prior result on re-score, the slot
// fill, any bye cascade, and a championship reset — happens inside one
// transaction.
type ScoringEngine struct {
	repos        *repositories.Container
	byeAdvancer  *ByeAutoAdvancer
	notification *NotificationService
	analytics    *AnalyticsService
	logger       *log.Logger

	// completionPipeline is wired after construction by the service
	// container to avoid an import cycle between this file and
	// completion_pipeline.go; Container.NewContainer sets it once both
	// exist.
	completionPipeline *CompletionPipeline

	// broadcaster is wired after construction once the websocket hub
	// exists; see Broadcaster's doc comment for why.
	broadcaster Broadcaster
}

// SetBroadcaster wires the websocket hub that receives match_updated
// events. A nil broadcaster (websockets disabled) is a silent no-op.
func (e *ScoringEngine) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

// NewScoringEngine creates a new scoring engine.
func NewScoringEngine(repos *repositories.Container, notification *NotificationService, analytics *AnalyticsService, logger *log.Logger) *ScoringEngine {
	return &ScoringEngine{
		repos:        repos,
		byeAdvancer:  NewByeAutoAdvancer(repos, logger),
		notification: notification,
		analytics:    analytics,
		logger:       logger,
	}
}

// SetCompletionPipeline wires the completion pipeline invoked once a
// tournament has no matches left to play.
func (e *ScoringEngine) SetCompletionPipeline(p *CompletionPipeline) {
	e.completionPipeline = p
}

// ScoreMatch records a result for a match and advances the bracket.
func (e *ScoringEngine) ScoreMatch(ctx context.Context, tournamentID, matchID, team1Score, team2Score int) (*models.Match, error) {
	tournament, err := e.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, ErrTournamentNotFound
	}
	if tournament.Status != models.StatusRegistrationOpen && tournament.Status != models.StatusInProgress {
		return nil, ErrInvalidTournamentStatus
	}

	tx, err := e.repos.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := e.repos.Match.GetByIDTx(ctx, tx, matchID)
	if err != nil {
		return nil, ErrMatchNotFound
	}
	if match.TournamentID != tournamentID {
		return nil, ErrMatchNotFound
	}
	if match.RoundType == models.RoundChampionship && (match.Stage == models.StageGroupA || match.Stage == models.StageGroupB) {
		return nil, ErrUnscoreableMatch
	}
	if match.Status != models.MatchInPlay && match.Status != models.MatchCompleted {
		return nil, ErrInvalidState
	}
	if team1Score < 0 || team2Score < 0 {
		return nil, ErrInvalidScores
	}
	if team1Score == team2Score {
		return nil, ErrTieDisallowed
	}

	var prevWinner, prevLoser *int
	wasRescore := match.Status == models.MatchCompleted
	if wasRescore {
		prevWinner, prevLoser = match.WinnerTeamID, match.LoserTeamID
	}

	var winnerID, loserID int
	if team1Score > team2Score {
		winnerID, loserID = *match.Team1ID, *match.Team2ID
	} else {
		winnerID, loserID = *match.Team2ID, *match.Team1ID
	}

	if err := e.repos.Match.RecordScoreTx(ctx, tx, matchID, team1Score, team2Score, winnerID, loserID, nil); err != nil {
		return nil, err
	}
	if err := e.repos.Match.UpdateStation(ctx, tx, matchID, nil); err != nil {
		return nil, err
	}

	winnerChanged := wasRescore && prevWinner != nil && *prevWinner != winnerID
	if winnerChanged {
		if match.WinnerAdvancesToMatch != nil {
			if err := e.repos.Match.ClearSlotTx(ctx, tx, *match.WinnerAdvancesToMatch, *prevWinner); err != nil {
				return nil, err
			}
		}
		if match.LoserAdvancesToMatch != nil && prevLoser != nil {
			if err := e.repos.Match.ClearSlotTx(ctx, tx, *match.LoserAdvancesToMatch, *prevLoser); err != nil {
				return nil, err
			}
		}
	}

	if !wasRescore || winnerChanged {
		if match.WinnerAdvancesToMatch != nil {
			if err := e.advanceTeamTx(ctx, tx, *match.WinnerAdvancesToMatch, winnerID); err != nil {
				return nil, err
			}
		}
		if match.LoserAdvancesToMatch != nil {
			if err := e.advanceTeamTx(ctx, tx, *match.LoserAdvancesToMatch, loserID); err != nil {
				return nil, err
			}
		}
	}

	if err := e.byeAdvancer.RunTx(ctx, tx, tournamentID); err != nil {
		return nil, err
	}

	complete := false
	if match.RoundType == models.RoundChampionship {
		feeders, err := e.repos.Match.ListFeedersTx(ctx, tx, matchID)
		if err != nil {
			return nil, err
		}
		if len(feeders) == 0 {
			// Dynamically created Game 2: whoever wins it ends the event.
			complete = true
		} else {
			wbWon := false
			for _, f := range feeders {
				if f.RoundType == models.RoundWinners && f.WinnerTeamID != nil && *f.WinnerTeamID == winnerID {
					wbWon = true
				}
			}
			if wbWon {
				complete = true
			} else if err := e.createBracketResetTx(ctx, tx, tournamentID, matchID, winnerID, loserID); err != nil {
				return nil, err
			}
		}
	} else {
		hasWork, err := e.repos.Match.HasRemainingWorkTx(ctx, tx, tournamentID)
		if err != nil {
			return nil, err
		}
		complete = !hasWork
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated, err := e.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	e.notification.NotifyMatchResult(updated)
	if e.broadcaster != nil {
		e.broadcaster.BroadcastTournamentUpdate(
			strconv.Itoa(tournamentID), "match_updated", matchUpdatePayload(updated, wasRescore),
		)
	}
	e.analytics.LogEvent(ctx, "match_scored", map[string]interface{}{
		"tournament_id": tournamentID,
		"match_id":      matchID,
		"team1_score":   team1Score,
		"team2_score":   team2Score,
		"is_rescore":    wasRescore,
	})

	if complete && e.completionPipeline != nil {
		if err := e.completionPipeline.Complete(ctx, tournamentID); err != nil {
			return nil, err
		}
		e.analytics.LogEvent(ctx, "tournament_completed", map[string]interface{}{
			"tournament_id": tournamentID,
		})
	}

	return updated, nil
}

// advanceTeamTx fills the next empty slot of a downstream match, team1
// preferred, promoting it from Pending to Scheduled once both slots are
// occupied.
func (e *ScoringEngine) advanceTeamTx(ctx context.Context, tx *sql.Tx, targetMatchID, teamID int) error {
	target, err := e.repos.Match.GetByIDTx(ctx, tx, targetMatchID)
	if err != nil {
		return err
	}
	if target.TeamInSlot(teamID) != models.SlotNone {
		return nil
	}
	if err := e.repos.Match.AssignSlotTx(ctx, tx, targetMatchID, teamID); err != nil {
		return err
	}
	target.AssignSlot(teamID)
	if target.TeamCount() == 2 && target.Status == models.MatchPending {
		_, err := tx.ExecContext(ctx,
			`UPDATE matches SET status = ?, updated_at = NOW() WHERE id = ?`,
			models.MatchScheduled, targetMatchID)
		return err
	}
	return nil
}

// createBracketResetTx builds the dynamic Championship Game 2 once the
// losers-bracket finalist beats the winners-bracket finalist in the
// first championship match.
func (e *ScoringEngine) createBracketResetTx(ctx context.Context, tx *sql.Tx, tournamentID, firstChampionshipID, winnerID, loserID int) error {
	order, err := e.repos.Match.NextMatchOrderTx(ctx, tx, tournamentID)
	if err != nil {
		return err
	}
	first, err := e.repos.Match.GetByIDTx(ctx, tx, firstChampionshipID)
	if err != nil {
		return err
	}
	game2 := &models.Match{
		TournamentID: tournamentID,
		Stage:        first.Stage,
		RoundType:    models.RoundChampionship,
		RoundNumber:  first.RoundNumber + 1,
		MatchOrder:   order,
		Team1ID:      &winnerID,
		Team2ID:      &loserID,
	}
	return e.repos.Match.CreateScheduledTx(ctx, tx, game2)
}
