// internal/repositories/station_repository.go
// Putting station data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// StationRepository handles putting station data access.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a single station.
func (r *StationRepository) Create(ctx context.Context, s *models.Station) error {
	query := `
		INSERT INTO stations (tournament_id, number, note, is_active)
		VALUES (?, ?, ?, TRUE)
	`
	result, err := r.db.ExecContext(ctx, query, s.TournamentID, s.Number, s.Note)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = int(id)
	s.IsActive = true
	return nil
}

// CreateTx inserts a station within the caller's transaction.
func (r *StationRepository) CreateTx(ctx context.Context, tx *sql.Tx, s *models.Station) error {
	query := `
		INSERT INTO stations (tournament_id, number, note, is_active)
		VALUES (?, ?, ?, TRUE)
	`
	result, err := tx.ExecContext(ctx, query, s.TournamentID, s.Number, s.Note)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = int(id)
	s.IsActive = true
	return nil
}

// GetByTournamentID returns the active stations for a tournament ordered
// by number.
func (r *StationRepository) GetByTournamentID(ctx context.Context, tournamentID int) ([]*models.Station, error) {
	query := `
		SELECT id, tournament_id, number, note, is_active
		FROM stations WHERE tournament_id = ? AND is_active = TRUE ORDER BY number
	`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*models.Station, 0)
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.TournamentID, &s.Number, &s.Note, &s.IsActive); err != nil {
			return nil, err
		}
		stations = append(stations, &s)
	}
	return stations, nil
}

// Deactivate retires a station (e.g. a lane closed mid-event).
func (r *StationRepository) Deactivate(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE stations SET is_active = FALSE WHERE id = ?`, id)
	return err
}
