// internal/models/team_test.go

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_Teammates(t *testing.T) {
	p2 := 42
	full := &Team{Player1ID: 7, Player2ID: &p2}
	p1, p2Got, hasTwo := full.Teammates()
	assert.True(t, hasTwo)
	assert.Equal(t, 7, p1)
	assert.Equal(t, 42, p2Got)

	ghost := &Team{Player1ID: 7, IsGhostTeam: true}
	p1, p2Got, hasTwo = ghost.Teammates()
	assert.False(t, hasTwo)
	assert.Equal(t, 7, p1)
	assert.Equal(t, 0, p2Got)
}
