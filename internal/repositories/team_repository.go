// internal/repositories/team_repository.go
// Team data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// TeamRepository handles team data access.
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a single team. Pairing writes every team for a tournament
// in one transaction; callers pass tx via CreateTx for that path.
func (r *TeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, player1_id, player2_id, is_ghost_team, seed_number, points_earned, created_at)
		VALUES (?, ?, ?, ?, ?, 0, NOW())
	`
	result, err := r.db.ExecContext(ctx, query, t.TournamentID, t.Player1ID, t.Player2ID, t.IsGhostTeam, t.SeedNumber)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

// CreateTx inserts a team within a caller-managed transaction, used by
// TeamFormer to write the whole pairing atomically.
func (r *TeamRepository) CreateTx(ctx context.Context, tx *sql.Tx, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, player1_id, player2_id, is_ghost_team, seed_number, points_earned, created_at)
		VALUES (?, ?, ?, ?, ?, 0, NOW())
	`
	result, err := tx.ExecContext(ctx, query, t.TournamentID, t.Player1ID, t.Player2ID, t.IsGhostTeam, t.SeedNumber)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, player1_id, player2_id, is_ghost_team, seed_number,
			final_place, points_earned, created_at
		FROM teams WHERE id = ?
	`
	var t models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.Player1ID, &t.Player2ID, &t.IsGhostTeam, &t.SeedNumber,
		&t.FinalPlace, &t.PointsEarned, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByTournamentID returns every team for a tournament ordered by seed,
// the order BracketBuilder reads for sequential bye placement.
func (r *TeamRepository) GetByTournamentID(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT id, tournament_id, player1_id, player2_id, is_ghost_team, seed_number,
			final_place, points_earned, created_at
		FROM teams WHERE tournament_id = ? ORDER BY seed_number
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Player1ID, &t.Player2ID, &t.IsGhostTeam,
			&t.SeedNumber, &t.FinalPlace, &t.PointsEarned, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, nil
}

// UpdateFinalPlace sets or clears (manual override) a team's placement.
func (r *TeamRepository) UpdateFinalPlace(ctx context.Context, tx *sql.Tx, teamID int, place *int) error {
	_, err := tx.ExecContext(ctx, `UPDATE teams SET final_place = ? WHERE id = ?`, place, teamID)
	return err
}

// UpdatePointsEarned sets the seasonal points this team earned in this
// tournament, used by both CompletionPipeline and RecalculationService.
func (r *TeamRepository) UpdatePointsEarned(ctx context.Context, tx *sql.Tx, teamID, points int) error {
	_, err := tx.ExecContext(ctx, `UPDATE teams SET points_earned = ? WHERE id = ?`, points, teamID)
	return err
}

// ClearPointsEarned zeroes points_earned for every team in a tournament,
// the first step of a recalculation pass.
func (r *TeamRepository) ClearPointsEarned(ctx context.Context, tx *sql.Tx, tournamentID int) error {
	_, err := tx.ExecContext(ctx, `UPDATE teams SET points_earned = 0 WHERE tournament_id = ?`, tournamentID)
	return err
}
