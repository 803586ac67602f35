// internal/models/team.go
// Team models

package models

import "time"

// Team is a randomly-paired doubles team drawn for one tournament. A team
// with Player2ID nil and IsGhostTeam true is the placeholder absorbing an
// odd player count. It is bracketed and scored like any other team; it
// gets no final place and counts as a single payee in the cash split.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Player1ID    int       `json:"player1_id" db:"player1_id"`
	Player2ID    *int      `json:"player2_id,omitempty" db:"player2_id"`
	IsGhostTeam  bool      `json:"is_ghost_team" db:"is_ghost_team"`
	SeedNumber   int       `json:"seed_number" db:"seed_number"`
	FinalPlace   *int      `json:"final_place,omitempty" db:"final_place"`
	PointsEarned int       `json:"points_earned" db:"points_earned"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Teammates returns the two player ids on the team, or a single id and
// false if the team has no second player (ghost team).
func (t *Team) Teammates() (p1, p2 int, hasTwo bool) {
	if t.Player2ID == nil {
		return t.Player1ID, 0, false
	}
	return t.Player1ID, *t.Player2ID, true
}
