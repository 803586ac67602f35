// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"
	"tournament-planner/internal/database"
)

// Container holds all repository instances.
type Container struct {
	Operator     *OperatorRepository
	Player       *PlayerRepository
	Registration *RegistrationRepository
	Tournament   *TournamentRepository
	Team         *TeamRepository
	Match        *MatchRepository
	Station      *StationRepository
	History      *HistoryRepository
	AcePot       *AcePotRepository
	db           *sql.DB
}

// NewContainer creates a new repository container.
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		Operator:     NewOperatorRepository(conn.MySQL),
		Player:       NewPlayerRepository(conn.MySQL),
		Registration: NewRegistrationRepository(conn.MySQL),
		Tournament:   NewTournamentRepository(conn.MySQL),
		Team:         NewTeamRepository(conn.MySQL),
		Match:        NewMatchRepository(conn.MySQL),
		Station:      NewStationRepository(conn.MySQL),
		History:      NewHistoryRepository(conn.MySQL),
		AcePot:       NewAcePotRepository(conn.MySQL),
		db:           conn.MySQL,
	}
}

// BeginTx starts a new database transaction.
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
