// internal/repositories/tournament_repository.go
// Tournament data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// TournamentRepository handles tournament data access.
type TournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository.
func NewTournamentRepository(db *sql.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			tournament_date, status, station_count, entry_fee, ace_pot_buy_in,
			ace_pot_payout, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	result, err := r.db.ExecContext(ctx, query,
		t.TournamentDate, t.Status, t.StationCount, t.EntryFee, t.AcePotBuyIn, t.AcePotPayout,
	)
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

func (r *TournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, tournament_date, status, station_count, entry_fee, ace_pot_buy_in,
			ace_pot_payout, created_at, updated_at
		FROM tournaments WHERE id = ?
	`
	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentDate, &t.Status, &t.StationCount, &t.EntryFee, &t.AcePotBuyIn,
		&t.AcePotPayout, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	query := `
		SELECT id, tournament_date, status, station_count, entry_fee, ace_pot_buy_in,
			ace_pot_payout, created_at, updated_at
		FROM tournaments ORDER BY tournament_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.TournamentDate, &t.Status, &t.StationCount, &t.EntryFee,
			&t.AcePotBuyIn, &t.AcePotPayout, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tournaments SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return err
}

// StartTournament sets the station count decided at bracket-generation
// time and transitions the tournament into InProgress.
func (r *TournamentRepository) StartTournament(ctx context.Context, id, stationCount int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET station_count = ?, status = ?, updated_at = NOW() WHERE id = ?`,
		stationCount, models.StatusInProgress, id)
	return err
}

// UpdateAcePotPayout records on the tournament row the amount paid out of
// the ace pot for this tournament (0 when nothing was paid); the
// authoritative record is the AcePotEntry ledger.
func (r *TournamentRepository) UpdateAcePotPayout(ctx context.Context, id int, balance float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tournaments SET ace_pot_payout = ?, updated_at = NOW() WHERE id = ?`, balance, id)
	return err
}

func (r *TournamentRepository) UpdateAcePotPayoutTx(ctx context.Context, tx *sql.Tx, id int, balance float64) error {
	_, err := tx.ExecContext(ctx, `UPDATE tournaments SET ace_pot_payout = ?, updated_at = NOW() WHERE id = ?`, balance, id)
	return err
}
