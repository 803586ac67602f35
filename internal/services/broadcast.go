// internal/services/broadcast.go
// Live-update broadcast plumbing. Defined here (not in the websocket
// package) so services never imports websocket, which itself imports
// services to look up tournament/match state for connecting clients.

package services

import "tournament-planner/internal/models"

// Broadcaster pushes a tournament-room event to every connected
// websocket client. *websocket.Hub implements this; it is wired into
// the container after both it and the hub exist, mirroring how
// ScoringEngine.SetCompletionPipeline avoids the same import cycle.
type Broadcaster interface {
	BroadcastTournamentUpdate(tournamentID string, updateType string, data interface{})
}

// MatchUpdatePayload is the `match_updated` event body spec'd for the
// tournament room: the match's current score/state plus whether this
// update is a correction of an already-reported result.
type MatchUpdatePayload struct {
	TournamentID int    `json:"tournament_id"`
	MatchID      int    `json:"match_id"`
	Status       string `json:"status"`
	Station      *int   `json:"station,omitempty"`
	Team1Score   *int   `json:"team1_score,omitempty"`
	Team2Score   *int   `json:"team2_score,omitempty"`
	WinnerTeamID *int   `json:"winner_team_id,omitempty"`
	IsRescore    bool   `json:"is_rescore,omitempty"`
}

func matchUpdatePayload(m *models.Match, isRescore bool) MatchUpdatePayload {
	return MatchUpdatePayload{
		TournamentID: m.TournamentID,
		MatchID:      m.ID,
		Status:       string(m.Status),
		Station:      m.StationAssignment,
		Team1Score:   m.Team1Score,
		Team2Score:   m.Team2Score,
		WinnerTeamID: m.WinnerTeamID,
		IsRescore:    isRescore,
	}
}
