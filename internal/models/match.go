// internal/models/match.go
// Match and bracket-graph related models

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Match represents a single bracket match. The bracket graph itself is
// expressed through the self-referential WinnerAdvancesToMatch and
// LoserAdvancesToMatch fields rather than a separately stored tree.
type Match struct {
	ID                    int         `json:"id" db:"id"`
	TournamentID          int         `json:"tournament_id" db:"tournament_id"`
	Stage                 Stage       `json:"stage" db:"stage"`
	RoundType             RoundType   `json:"round_type" db:"round_type"`
	RoundNumber           int         `json:"round_number" db:"round_number"`
	MatchOrder            int         `json:"match_order" db:"match_order"`
	Team1ID               *int        `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID               *int        `json:"team2_id,omitempty" db:"team2_id"`
	Team1Score            *int        `json:"team1_score,omitempty" db:"team1_score"`
	Team2Score            *int        `json:"team2_score,omitempty" db:"team2_score"`
	ScoreDetails          *ScoreDetails `json:"score_details,omitempty" db:"score_details"`
	WinnerTeamID          *int        `json:"winner_team_id,omitempty" db:"winner_team_id"`
	LoserTeamID           *int        `json:"loser_team_id,omitempty" db:"loser_team_id"`
	Status                MatchStatus `json:"status" db:"status"`
	WinnerAdvancesToMatch *int        `json:"winner_advances_to_match_id,omitempty" db:"winner_advances_to_match_id"`
	LoserAdvancesToMatch  *int        `json:"loser_advances_to_match_id,omitempty" db:"loser_advances_to_match_id"`
	StationAssignment     *int        `json:"station_assignment,omitempty" db:"station_assignment"`
	CreatedAt             time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at" db:"updated_at"`
}

// MatchStatus represents the current state of a match.
type MatchStatus string

const (
	MatchPending   MatchStatus = "Pending"
	MatchScheduled MatchStatus = "Scheduled"
	MatchInPlay    MatchStatus = "InProgress"
	MatchCompleted MatchStatus = "Completed"
)

// Stage distinguishes bracket groups. A multi-group finals wrapper is
// permitted by the bracket rules but is not produced by this
// implementation; every match carries StageFinals.
type Stage string

const (
	StageGroupA Stage = "Group_A"
	StageGroupB Stage = "Group_B"
	StageFinals Stage = "Finals"
)

// RoundType distinguishes winners-bracket, losers-bracket and
// championship matches within a stage.
type RoundType string

const (
	RoundWinners      RoundType = "Winners"
	RoundLosers       RoundType = "Losers"
	RoundChampionship RoundType = "Championship"
)

// TeamSlot identifies which side of a match a team occupies.
type TeamSlot int

const (
	SlotNone TeamSlot = iota
	SlotOne
	SlotTwo
)

// TeamInSlot reports which slot, if any, holds the given team.
func (m *Match) TeamInSlot(teamID int) TeamSlot {
	if m.Team1ID != nil && *m.Team1ID == teamID {
		return SlotOne
	}
	if m.Team2ID != nil && *m.Team2ID == teamID {
		return SlotTwo
	}
	return SlotNone
}

// TeamCount returns how many of the two slots are currently occupied.
func (m *Match) TeamCount() int {
	n := 0
	if m.Team1ID != nil {
		n++
	}
	if m.Team2ID != nil {
		n++
	}
	return n
}

// SoleTeam returns the single occupied team id and true, or (0, false) if
// the match has zero or two teams assigned.
func (m *Match) SoleTeam() (int, bool) {
	if m.Team1ID != nil && m.Team2ID == nil {
		return *m.Team1ID, true
	}
	if m.Team2ID != nil && m.Team1ID == nil {
		return *m.Team2ID, true
	}
	return 0, false
}

// AssignSlot fills team1 if empty, otherwise team2. Returns false if both
// slots are already occupied (team1-preferred slot-fill rule).
func (m *Match) AssignSlot(teamID int) bool {
	if m.Team1ID == nil {
		m.Team1ID = &teamID
		return true
	}
	if m.Team2ID == nil {
		m.Team2ID = &teamID
		return true
	}
	return false
}

// ScoreDetails carries optional per-round putt counts; the engine itself
// only ever reads Team1Score/Team2Score on Match.
type ScoreDetails struct {
	Rounds []RoundScore           `json:"rounds,omitempty"`
	Custom map[string]interface{} `json:"custom,omitempty"`
}

// RoundScore captures a single scoring round within a match.
type RoundScore struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

func (s *ScoreDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ScoreDetails", value)
	}
	return json.Unmarshal(bytes, s)
}

func (s ScoreDetails) Value() (driver.Value, error) {
	return json.Marshal(s)
}
