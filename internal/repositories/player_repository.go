// internal/repositories/player_repository.go
// Player data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// PlayerRepository handles registered-player data access.
type PlayerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (nickname, division, seasonal_points, seasonal_cash, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`
	result, err := r.db.ExecContext(ctx, query, p.Nickname, p.Division, p.SeasonalPoints, p.SeasonalCash)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, nickname, division, seasonal_points, seasonal_cash, created_at, updated_at
		FROM players WHERE id = ?
	`
	var p models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Nickname, &p.Division, &p.SeasonalPoints, &p.SeasonalCash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT id, nickname, division, seasonal_points, seasonal_cash, created_at, updated_at
		FROM players ORDER BY seasonal_points DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
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

func (r *PlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `UPDATE players SET nickname = ?, division = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, p.Nickname, p.Division, p.ID)
	return err
}

// AdjustSeasonalPoints applies a signed delta to a player's running
// seasonal point total, never letting it go negative.
func (r *PlayerRepository) AdjustSeasonalPoints(ctx context.Context, tx *sql.Tx, playerID, delta int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET seasonal_points = GREATEST(0, seasonal_points + ?), updated_at = NOW() WHERE id = ?`,
		delta, playerID)
	return err
}

// AdjustSeasonalCash applies a signed delta to a player's running cash
// total from tournament payouts.
func (r *PlayerRepository) AdjustSeasonalCash(ctx context.Context, tx *sql.Tx, playerID int, delta float64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE players SET seasonal_cash = seasonal_cash + ?, updated_at = NOW() WHERE id = ?`,
		delta, playerID)
	return err
}
