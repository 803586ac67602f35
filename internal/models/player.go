// internal/models/player.go
// Registered player models

package models

import "time"

// Player is a person registered in the league, independent of any single
// tournament. Teams are formed per-tournament from the registered pool.
type Player struct {
	ID             int       `json:"id" db:"id"`
	Nickname       string    `json:"nickname" db:"nickname"`
	Division       Division  `json:"division" db:"division"`
	SeasonalPoints int       `json:"seasonal_points" db:"seasonal_points"`
	SeasonalCash   float64   `json:"seasonal_cash" db:"seasonal_cash"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Division groups players for reporting; it has no bearing on pairing or
// bracket seeding (pairing is unconditionally random, see Non-goals).
type Division string

const (
	DivisionOpen      Division = "Open"
	DivisionIntermediate Division = "Intermediate"
	DivisionNovice    Division = "Novice"
)

// Registration ties a player to a specific tournament's player pool.
type Registration struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	BuyIns       int       `json:"buy_ins" db:"buy_ins"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}
