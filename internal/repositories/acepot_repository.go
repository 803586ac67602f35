// internal/repositories/acepot_repository.go
// Ace-pot ledger data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// AcePotRepository handles the append-only ace-pot ledger.
type AcePotRepository struct {
	db *sql.DB
}

// NewAcePotRepository creates a new ace-pot repository.
func NewAcePotRepository(db *sql.DB) *AcePotRepository {
	return &AcePotRepository{db: db}
}

// CurrentBalanceTx returns the most recent balance_after, or zero if the
// ledger is empty (the pot has never been contributed to).
func (r *AcePotRepository) CurrentBalanceTx(ctx context.Context, tx *sql.Tx) (float64, error) {
	var balance sql.NullFloat64
	err := tx.QueryRowContext(ctx, `SELECT balance_after FROM ace_pot_entries ORDER BY id DESC LIMIT 1`).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance.Float64, nil
}

// AppendTx records one ledger line and returns it with its id populated.
func (r *AcePotRepository) AppendTx(ctx context.Context, tx *sql.Tx, e *models.AcePotEntry) error {
	query := `
		INSERT INTO ace_pot_entries (tournament_id, entry_type, amount, balance_after, description, recorded_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`
	result, err := tx.ExecContext(ctx, query, e.TournamentID, e.EntryType, e.Amount, e.BalanceAfter, e.Description)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)
	return nil
}

// ListByTournamentID returns the ledger lines recorded against a single
// tournament (its contribution and, if earned, its payout line).
func (r *AcePotRepository) ListByTournamentID(ctx context.Context, tournamentID int) ([]*models.AcePotEntry, error) {
	query := `
		SELECT id, tournament_id, entry_type, amount, balance_after, description, recorded_at
		FROM ace_pot_entries WHERE tournament_id = ? ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.AcePotEntry, 0)
	for rows.Next() {
		var e models.AcePotEntry
		if err := rows.Scan(&e.ID, &e.TournamentID, &e.EntryType, &e.Amount, &e.BalanceAfter, &e.Description, &e.RecordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// List returns the full ledger across every tournament, newest first.
func (r *AcePotRepository) List(ctx context.Context) ([]*models.AcePotEntry, error) {
	query := `
		SELECT id, tournament_id, entry_type, amount, balance_after, description, recorded_at
		FROM ace_pot_entries ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.AcePotEntry, 0)
	for rows.Next() {
		var e models.AcePotEntry
		if err := rows.Scan(&e.ID, &e.TournamentID, &e.EntryType, &e.Amount, &e.BalanceAfter, &e.Description, &e.RecordedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, nil
}
