// internal/services/completion_pipeline_test.go

package services

import (
	"testing"

	"tournament-planner/internal/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func TestTeamRecord_CountsWinsAndIgnoresByes(t *testing.T) {
	team := &models.Team{ID: 1}
	other := 2

	matches := []*models.Match{
		// Bye: only one team assigned, never counts.
		{Status: models.MatchCompleted, Team1ID: intPtr(1), WinnerTeamID: intPtr(1)},
		// Completed real win.
		{Status: models.MatchCompleted, Team1ID: intPtr(1), Team2ID: &other, WinnerTeamID: intPtr(1), LoserTeamID: &other},
		// Scheduled, not yet played: ignored.
		{Status: models.MatchScheduled, Team1ID: intPtr(1), Team2ID: &other},
	}

	wins, undefeated := teamRecord(team, matches)
	assert.Equal(t, 1, wins)
	assert.True(t, undefeated)
}

func TestTeamRecord_LossBreaksUndefeated(t *testing.T) {
	team := &models.Team{ID: 1}
	other := 2

	matches := []*models.Match{
		{Status: models.MatchCompleted, Team1ID: intPtr(1), Team2ID: &other, WinnerTeamID: intPtr(1), LoserTeamID: &other},
		{Status: models.MatchCompleted, Team1ID: intPtr(1), Team2ID: &other, WinnerTeamID: &other, LoserTeamID: intPtr(1)},
	}

	wins, undefeated := teamRecord(team, matches)
	assert.Equal(t, 1, wins)
	assert.False(t, undefeated)
}

func TestTeamUndefeated_NoMatchesIsUndefeated(t *testing.T) {
	team := &models.Team{ID: 1}
	assert.True(t, teamUndefeated(team, nil))
}
