// internal/repositories/history_repository.go
// Cross-tournament teammate pairing history data access

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// HistoryRepository handles teammate pairing history data access.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// GetTx reads one directed pairing row, or nil if the pair has never been
// recorded before.
func (r *HistoryRepository) GetTx(ctx context.Context, tx *sql.Tx, playerID, teammateID int) (*models.TeamHistory, error) {
	query := `
		SELECT id, player_id, teammate_id, times_paired, average_place
		FROM team_history WHERE player_id = ? AND teammate_id = ? FOR UPDATE
	`
	var h models.TeamHistory
	err := tx.QueryRowContext(ctx, query, playerID, teammateID).Scan(
		&h.ID, &h.PlayerID, &h.TeammateID, &h.TimesPaired, &h.AveragePlace,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// UpsertTx inserts a new directed pairing row or updates an existing one
// to the running-mean place CompletionPipeline computed.
func (r *HistoryRepository) UpsertTx(ctx context.Context, tx *sql.Tx, h *models.TeamHistory) error {
	if h.ID == 0 {
		query := `
			INSERT INTO team_history (player_id, teammate_id, times_paired, average_place)
			VALUES (?, ?, ?, ?)
		`
		result, err := tx.ExecContext(ctx, query, h.PlayerID, h.TeammateID, h.TimesPaired, h.AveragePlace)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		h.ID = int(id)
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE team_history SET times_paired = ?, average_place = ? WHERE id = ?`,
		h.TimesPaired, h.AveragePlace, h.ID,
	)
	return err
}

// DeleteTx removes a directed pairing row entirely — used by
// RecalculationService when reversing a tournament's only pairing of two
// players (times_paired would otherwise drop to zero).
func (r *HistoryRepository) DeleteTx(ctx context.Context, tx *sql.Tx, id int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM team_history WHERE id = ?`, id)
	return err
}

// ListByPlayerID returns every teammate a player has been paired with,
// ordered by times paired — the basis of a player's detail view.
func (r *HistoryRepository) ListByPlayerID(ctx context.Context, playerID int) ([]*models.TeamHistory, error) {
	query := `
		SELECT id, player_id, teammate_id, times_paired, average_place
		FROM team_history WHERE player_id = ? ORDER BY times_paired DESC
	`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]*models.TeamHistory, 0)
	for rows.Next() {
		var h models.TeamHistory
		if err := rows.Scan(&h.ID, &h.PlayerID, &h.TeammateID, &h.TimesPaired, &h.AveragePlace); err != nil {
			return nil, err
		}
		history = append(history, &h)
	}
	return history, nil
}
