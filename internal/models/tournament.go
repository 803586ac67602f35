// internal/models/tournament.go
// Domain models representing core business entities

package models

import (
	"time"
)

// Tournament represents a single recurring putting tournament event.
type Tournament struct {
	ID             int              `json:"id" db:"id"`
	TournamentDate time.Time        `json:"tournament_date" db:"tournament_date"`
	Status         TournamentStatus `json:"status" db:"status"`
	StationCount   int              `json:"station_count" db:"station_count"`
	EntryFee       float64          `json:"entry_fee" db:"entry_fee"`
	AcePotBuyIn    float64          `json:"ace_pot_buy_in" db:"ace_pot_buy_in"`
	AcePotPayout   float64          `json:"ace_pot_payout" db:"ace_pot_payout"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// TournamentStatus represents the current state of a tournament.
type TournamentStatus string

const (
	StatusRegistrationOpen TournamentStatus = "RegistrationOpen"
	StatusInProgress       TournamentStatus = "InProgress"
	StatusCompleted        TournamentStatus = "Completed"
	StatusCancelled        TournamentStatus = "Cancelled"
)
