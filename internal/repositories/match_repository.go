// internal/repositories/match_repository.go
// Match data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

const matchColumns = `
	id, tournament_id, stage, round_type, round_number, match_order,
	team1_id, team2_id, team1_score, team2_score, score_details,
	winner_team_id, loser_team_id, status,
	winner_advances_to_match_id, loser_advances_to_match_id,
	station_assignment, created_at, updated_at
`

// MatchRepository handles match data access.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func scanMatch(row interface {
	Scan(dest ...interface{}) error
}) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Stage, &m.RoundType, &m.RoundNumber, &m.MatchOrder,
		&m.Team1ID, &m.Team2ID, &m.Team1Score, &m.Team2Score, &m.ScoreDetails,
		&m.WinnerTeamID, &m.LoserTeamID, &m.Status,
		&m.WinnerAdvancesToMatch, &m.LoserAdvancesToMatch,
		&m.StationAssignment, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateTx inserts a bracket match within the builder's caller-managed
// transaction. BracketBuilder writes the whole bracket graph atomically
// so self-referential advancement ids can be back-filled in a second pass.
func (r *MatchRepository) CreateTx(ctx context.Context, tx *sql.Tx, m *models.Match) error {
	query := `
		INSERT INTO matches (
			tournament_id, stage, round_type, round_number, match_order,
			team1_id, team2_id, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := tx.ExecContext(ctx, query,
		m.TournamentID, m.Stage, m.RoundType, m.RoundNumber, m.MatchOrder,
		m.Team1ID, m.Team2ID, m.Status,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	return nil
}

// SetMatchOrderTx assigns a match's position in the tournament-wide
// scheduling order, computed once by BracketBuilder after every match
// exists.
func (r *MatchRepository) SetMatchOrderTx(ctx context.Context, tx *sql.Tx, matchID, order int) error {
	_, err := tx.ExecContext(ctx, `UPDATE matches SET match_order = ? WHERE id = ?`, order, matchID)
	return err
}

// SetAdvancementTx wires a match's winner/loser destination edges once
// every match in the bracket has an id to point at.
func (r *MatchRepository) SetAdvancementTx(ctx context.Context, tx *sql.Tx, matchID int, winnerAdvancesTo, loserAdvancesTo *int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE matches SET winner_advances_to_match_id = ?, loser_advances_to_match_id = ? WHERE id = ?`,
		winnerAdvancesTo, loserAdvancesTo, matchID,
	)
	return err
}

func (r *MatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

// GetByIDTx reads a match within a transaction, used by ScoringEngine to
// take a consistent snapshot before applying a score and its advancement.
func (r *MatchRepository) GetByIDTx(ctx context.Context, tx *sql.Tx, id int) (*models.Match, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ? FOR UPDATE`, id)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

// GetByTournamentID returns every match for a tournament in bracket build
// order (the order match_order was assigned in).
func (r *MatchRepository) GetByTournamentID(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE tournament_id = ? ORDER BY match_order`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// ListInProgress returns every in-progress match for a tournament, used by
// StationAllocator to compute the set of stations currently in use.
func (r *MatchRepository) ListInProgress(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE tournament_id = ? AND status = ?`, tournamentID, models.MatchInPlay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// ListPendingWithSingleTeam returns Pending or Scheduled matches with
// exactly one team slot filled. It does not check whether an upstream
// feed can still deliver a second team; CountFeedsTx answers that.
func (r *MatchRepository) ListPendingWithSingleTeam(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = ? AND status IN (?, ?)
		AND ((team1_id IS NULL) != (team2_id IS NULL))
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID, models.MatchPending, models.MatchScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// ListPendingWithSingleTeamTx is the transaction-scoped twin of
// ListPendingWithSingleTeam, used by ByeAutoAdvancer so it can see
// matches inserted earlier in the same uncommitted transaction.
func (r *MatchRepository) ListPendingWithSingleTeamTx(ctx context.Context, tx *sql.Tx, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = ? AND status IN (?, ?)
		AND ((team1_id IS NULL) != (team2_id IS NULL))
	`
	rows, err := tx.QueryContext(ctx, query, tournamentID, models.MatchPending, models.MatchScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// CountFeedsTx counts how many other matches still point at matchID as
// their winner or loser destination and have not yet completed — used by
// ByeAutoAdvancer to decide whether a single-team match can be
// auto-completed yet, or must wait on a sibling feed.
func (r *MatchRepository) CountFeedsTx(ctx context.Context, tx *sql.Tx, matchID int) (int, error) {
	query := `
		SELECT COUNT(*) FROM matches
		WHERE (winner_advances_to_match_id = ? OR loser_advances_to_match_id = ?)
		AND status != ?
	`
	var count int
	err := tx.QueryRowContext(ctx, query, matchID, matchID, models.MatchCompleted).Scan(&count)
	return count, err
}

// HasRemainingWorkTx reports whether any match still needs to be played:
// anything Scheduled or InProgress, or Pending with a team slot already
// filled (a bye still waiting on ByeAutoAdvancer or a genuine bracket
// stall). ScoringEngine checks this after every non-championship
// completion to decide whether the tournament just finished.
func (r *MatchRepository) HasRemainingWorkTx(ctx context.Context, tx *sql.Tx, tournamentID int) (bool, error) {
	query := `
		SELECT COUNT(*) FROM matches
		WHERE tournament_id = ?
		AND (status IN (?, ?) OR (status = ? AND (team1_id IS NOT NULL OR team2_id IS NOT NULL)))
	`
	var count int
	err := tx.QueryRowContext(ctx, query, tournamentID, models.MatchScheduled, models.MatchInPlay, models.MatchPending).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFeedersTx returns every match that advances into matchID (as
// either a winner or loser destination) — used by ScoringEngine to tell
// a bracket-built Championship match (fed by a winners-bracket finalist
// and a losers-bracket finalist) apart from a dynamically created
// bracket-reset game, which has no feeders at all.
func (r *MatchRepository) ListFeedersTx(ctx context.Context, tx *sql.Tx, matchID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE winner_advances_to_match_id = ? OR loser_advances_to_match_id = ?
	`
	rows, err := tx.QueryContext(ctx, query, matchID, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// NextMatchOrderTx returns the next free match_order value for a
// tournament, used to slot a dynamically created bracket-reset game
// after every statically built match.
func (r *MatchRepository) NextMatchOrderTx(ctx context.Context, tx *sql.Tx, tournamentID int) (int, error) {
	var max sql.NullInt64
	err := tx.QueryRowContext(ctx, `SELECT MAX(match_order) FROM matches WHERE tournament_id = ?`, tournamentID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

// CreateScheduledTx inserts a match with both team slots already filled
// and status Scheduled — the shape of a dynamically created bracket-reset
// Championship Game 2, which needs no further advancement wiring of its
// own.
func (r *MatchRepository) CreateScheduledTx(ctx context.Context, tx *sql.Tx, m *models.Match) error {
	query := `
		INSERT INTO matches (
			tournament_id, stage, round_type, round_number, match_order,
			team1_id, team2_id, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := tx.ExecContext(ctx, query,
		m.TournamentID, m.Stage, m.RoundType, m.RoundNumber, m.MatchOrder,
		m.Team1ID, m.Team2ID, models.MatchScheduled,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	return nil
}

func scanMatches(rows *sql.Rows) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// AssignSlotTx fills an empty team slot on a downstream match (the
// advancement write of ScoringEngine/ByeAutoAdvancer), team1-preferred.
func (r *MatchRepository) AssignSlotTx(ctx context.Context, tx *sql.Tx, matchID, teamID int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE matches SET team2_id = CASE WHEN team1_id IS NOT NULL THEN COALESCE(team2_id, ?) ELSE team2_id END, team1_id = COALESCE(team1_id, ?) WHERE id = ?`,
		teamID, teamID, matchID,
	)
	return err
}

// ClearSlotTx removes a team from whichever slot holds it, the rollback
// half of a re-score that changes a prior winner.
func (r *MatchRepository) ClearSlotTx(ctx context.Context, tx *sql.Tx, matchID, teamID int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE matches SET team1_id = IF(team1_id = ?, NULL, team1_id), team2_id = IF(team2_id = ?, NULL, team2_id) WHERE id = ?`,
		teamID, teamID, matchID,
	)
	return err
}

// RecordScoreTx writes a final score and marks a match completed, setting
// the winner/loser team ids derived by the caller.
func (r *MatchRepository) RecordScoreTx(ctx context.Context, tx *sql.Tx, matchID int, team1Score, team2Score int, winnerTeamID, loserTeamID int, details *models.ScoreDetails) error {
	query := `
		UPDATE matches SET
			team1_score = ?, team2_score = ?, winner_team_id = ?, loser_team_id = ?,
			score_details = ?, status = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query, team1Score, team2Score, winnerTeamID, loserTeamID, details, models.MatchCompleted, matchID)
	return err
}

// ResetToPendingTx clears a match's recorded score, winner and loser and
// sets its status to Scheduled. ScoringEngine's re-score path does not
// use it: it overwrites the score with RecordScoreTx instead.
func (r *MatchRepository) ResetToPendingTx(ctx context.Context, tx *sql.Tx, matchID int) error {
	query := `
		UPDATE matches SET
			team1_score = NULL, team2_score = NULL, winner_team_id = NULL, loser_team_id = NULL,
			score_details = NULL, status = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query, models.MatchScheduled, matchID)
	return err
}

// AutoCompleteByeTx completes a single-team match by forfeit, the action
// ByeAutoAdvancer takes once a match can no longer receive a second team.
// The bye team is credited a 1-0 score, oriented to whichever slot it
// actually occupies, rather than left with a NULL score.
func (r *MatchRepository) AutoCompleteByeTx(ctx context.Context, tx *sql.Tx, matchID, soleTeamID int) error {
	query := `
		UPDATE matches SET
			team1_score = CASE WHEN team1_id = ? THEN 1 ELSE 0 END,
			team2_score = CASE WHEN team2_id = ? THEN 1 ELSE 0 END,
			winner_team_id = ?, loser_team_id = NULL, status = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := tx.ExecContext(ctx, query, soleTeamID, soleTeamID, soleTeamID, models.MatchCompleted, matchID)
	return err
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id int, status models.MatchStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE matches SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return err
}

// UpdateStation assigns or clears (on completion) a match's station number.
func (r *MatchRepository) UpdateStation(ctx context.Context, tx *sql.Tx, id int, station *int) error {
	_, err := tx.ExecContext(ctx, `UPDATE matches SET station_assignment = ? WHERE id = ?`, station, id)
	return err
}
