// internal/models/station.go
// Putting station models

package models

import "encoding/json"

// Station is a numbered physical putting lane at a tournament.
// StationAllocator does not read these rows: it picks a free number from
// 1..Tournament.StationCount and stores it on the match itself.
type Station struct {
	ID           int             `json:"id" db:"id"`
	TournamentID int             `json:"tournament_id" db:"tournament_id"`
	Number       int             `json:"number" db:"number"`
	Note         json.RawMessage `json:"note,omitempty" db:"note"`
	IsActive     bool            `json:"is_active" db:"is_active"`
}
