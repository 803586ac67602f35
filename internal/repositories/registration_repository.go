// internal/repositories/registration_repository.go
// Tournament registration (player pool) data access

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// RegistrationRepository handles the per-tournament player pool.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create registers a player into a tournament's pool.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (tournament_id, player_id, buy_ins, registered_at)
		VALUES (?, ?, ?, NOW())
	`
	result, err := r.db.ExecContext(ctx, query, reg.TournamentID, reg.PlayerID, reg.BuyIns)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = int(id)
	return nil
}

// GetByTournamentID retrieves every player registered for a tournament,
// ordered by registration time (the order TeamFormer draws from).
func (r *RegistrationRepository) GetByTournamentID(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.nickname, p.division, p.seasonal_points, p.seasonal_cash, p.created_at, p.updated_at
		FROM players p
		JOIN registrations r ON p.id = r.player_id
		WHERE r.tournament_id = ?
		ORDER BY r.registered_at
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Nickname, &p.Division, &p.SeasonalPoints, &p.SeasonalCash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		players = append(players, &p)
	}
	return players, nil
}

// CountByTournamentID returns the number of registered players, used to
// size the cash payout pot.
func (r *RegistrationRepository) CountByTournamentID(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE tournament_id = ?`, tournamentID).Scan(&count)
	return count, err
}

// TotalBuyInsByTournamentID sums ace-pot buy-ins collected at registration.
func (r *RegistrationRepository) TotalBuyInsByTournamentID(ctx context.Context, tournamentID int) (int, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT SUM(buy_ins) FROM registrations WHERE tournament_id = ?`, tournamentID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// Delete removes a player from a tournament's pool (before teams are formed).
func (r *RegistrationRepository) Delete(ctx context.Context, tournamentID, playerID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE tournament_id = ? AND player_id = ?`, tournamentID, playerID)
	return err
}
