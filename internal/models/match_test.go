// internal/models/match_test.go

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_TeamInSlot(t *testing.T) {
	team1, team2 := 10, 20
	m := &Match{Team1ID: &team1, Team2ID: &team2}

	assert.Equal(t, SlotOne, m.TeamInSlot(10))
	assert.Equal(t, SlotTwo, m.TeamInSlot(20))
	assert.Equal(t, SlotNone, m.TeamInSlot(30))
}

func TestMatch_TeamCount(t *testing.T) {
	team1 := 1
	tests := []struct {
		name string
		m    Match
		want int
	}{
		{"empty", Match{}, 0},
		{"one team", Match{Team1ID: &team1}, 1},
		{"two teams", Match{Team1ID: &team1, Team2ID: &team1}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.TeamCount())
		})
	}
}

func TestMatch_SoleTeam(t *testing.T) {
	team1, team2 := 1, 2

	m := &Match{Team1ID: &team1}
	got, ok := m.SoleTeam()
	assert.True(t, ok)
	assert.Equal(t, team1, got)

	m = &Match{Team2ID: &team2}
	got, ok = m.SoleTeam()
	assert.True(t, ok)
	assert.Equal(t, team2, got)

	m = &Match{}
	_, ok = m.SoleTeam()
	assert.False(t, ok)

	m = &Match{Team1ID: &team1, Team2ID: &team2}
	_, ok = m.SoleTeam()
	assert.False(t, ok)
}

func TestMatch_AssignSlot(t *testing.T) {
	m := &Match{}

	assert.True(t, m.AssignSlot(5))
	assert.NotNil(t, m.Team1ID)
	assert.Equal(t, 5, *m.Team1ID)

	assert.True(t, m.AssignSlot(7))
	assert.NotNil(t, m.Team2ID)
	assert.Equal(t, 7, *m.Team2ID)

	// Both slots occupied: assignment is refused rather than overwriting.
	assert.False(t, m.AssignSlot(9))
	assert.Equal(t, 5, *m.Team1ID)
	assert.Equal(t, 7, *m.Team2ID)
}

func TestScoreDetails_ValueAndScan(t *testing.T) {
	details := ScoreDetails{Rounds: []RoundScore{{Team1Score: 21, Team2Score: 18}}}

	raw, err := details.Value()
	assert.NoError(t, err)

	var roundTrip ScoreDetails
	err = roundTrip.Scan(raw)
	assert.NoError(t, err)
	assert.Equal(t, details.Rounds, roundTrip.Rounds)

	var empty ScoreDetails
	assert.NoError(t, empty.Scan(nil))
}
