// internal/services/bracket_builder_test.go

package services

import (
	"fmt"
	"testing"

	"tournament-planner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the in-memory graph construction (bracketBuild,
// consolidate, dropIn) that BracketBuilder.Build runs before it ever
// opens a transaction — the part of the bracket engine with no database
// dependency.

func TestBracketBuild_Consolidate_EvenCount(t *testing.T) {
	b := &bracketBuild{}
	for i := 0; i < 4; i++ {
		b.newMatch(models.RoundWinners, 0, i)
	}
	active := []feed{{srcIdx: 0}, {srcIdx: 1}, {srcIdx: 2}, {srcIdx: 3}}

	next := b.consolidate(active, 1)

	assert.Len(t, next, 2)
	// Four round-0 placeholders plus two new losers-bracket matches.
	assert.Len(t, b.all, 6)
	assert.Equal(t, models.RoundLosers, b.all[4].roundType)
	assert.Equal(t, 1, b.all[4].roundNumber)
	assert.NotNil(t, b.all[0].winnerToIdx)
	assert.Equal(t, 4, *b.all[0].winnerToIdx)
	assert.Equal(t, 4, *b.all[1].winnerToIdx)
	assert.Equal(t, 5, *b.all[2].winnerToIdx)
	assert.Equal(t, 5, *b.all[3].winnerToIdx)
}

func TestBracketBuild_Consolidate_OddLeftoverBecomesSoloMatch(t *testing.T) {
	b := &bracketBuild{}
	for i := 0; i < 3; i++ {
		b.newMatch(models.RoundWinners, 0, i)
	}
	active := []feed{{srcIdx: 0}, {srcIdx: 1}, {srcIdx: 2}}

	next := b.consolidate(active, 1)

	// Pairs (0,1) into one match; 2 is an unpaired leftover wired alone
	// into its own solo match, which ByeAutoAdvancer later waves through.
	assert.Len(t, next, 2)
	assert.Len(t, b.all, 5)
	solo := b.all[4]
	assert.NotNil(t, b.all[2].winnerToIdx)
	assert.Equal(t, 4, *b.all[2].winnerToIdx)
	assert.Equal(t, 1, solo.roundNumber)
}

func TestBracketBuild_DropIn_MatchedCounts(t *testing.T) {
	b := &bracketBuild{}
	for i := 0; i < 4; i++ {
		b.newMatch(models.RoundLosers, 0, i)
	}
	active := []feed{{srcIdx: 0}, {srcIdx: 1}}
	wbLosers := []feed{{srcIdx: 2, isLoser: true}, {srcIdx: 3, isLoser: true}}

	next := b.dropIn(active, wbLosers, 1)

	assert.Len(t, next, 2)
	assert.Len(t, b.all, 6)
	assert.NotNil(t, b.all[0].winnerToIdx)
	assert.NotNil(t, b.all[2].loserToIdx)
	assert.Equal(t, *b.all[0].winnerToIdx, *b.all[2].loserToIdx)
}

func TestBracketBuild_DropIn_MismatchedCountsProducesSoloMatch(t *testing.T) {
	b := &bracketBuild{}
	for i := 0; i < 3; i++ {
		b.newMatch(models.RoundLosers, 0, i)
	}
	active := []feed{{srcIdx: 0}}
	wbLosers := []feed{{srcIdx: 1, isLoser: true}, {srcIdx: 2, isLoser: true}}

	next := b.dropIn(active, wbLosers, 1)

	// Two new matches: one pairs active[0] with wbLosers[0] (two incoming
	// wires), the other takes only wbLosers[1] and stays a solo match
	// (one incoming wire) rather than losing a team.
	assert.Len(t, next, 2)
	pairedIdx := len(b.all) - 2
	soloIdx := len(b.all) - 1
	incoming := func(targetIdx int) int {
		count := 0
		for _, gm := range b.all {
			if gm.winnerToIdx != nil && *gm.winnerToIdx == targetIdx {
				count++
			}
			if gm.loserToIdx != nil && *gm.loserToIdx == targetIdx {
				count++
			}
		}
		return count
	}
	assert.Equal(t, 2, incoming(pairedIdx))
	assert.Equal(t, 1, incoming(soloIdx))
}

func TestBracketBuild_NewMatch_AssignsSequentialIndices(t *testing.T) {
	b := &bracketBuild{}
	m1 := b.newMatch(models.RoundWinners, 0, 0)
	m2 := b.newMatch(models.RoundWinners, 0, 1)

	assert.Equal(t, 0, m1.idx)
	assert.Equal(t, 1, m2.idx)
	assert.Len(t, b.all, 2)
}

// seedTeams builds n seeded teams with sequential ids, the shape
// buildGraph expects from TeamFormer's output.
func seedTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := 0; i < n; i++ {
		teams[i] = &models.Team{ID: i + 1, SeedNumber: i + 1}
	}
	return teams
}

// countByeRound0 returns how many round-0 winners-bracket matches hold
// only a team1 (the bye team waved straight through).
func countByeRound0(build *bracketBuild) int {
	byes := 0
	for _, gm := range build.all {
		if gm.roundType == models.RoundWinners && gm.roundNumber == 0 && gm.team2 == nil {
			byes++
		}
	}
	return byes
}

// TestBuildGraph_OddCountsConverge exercises the full graph construction
// BracketBuilder.Build runs before it ever opens a transaction, across
// realistic odd team counts that force one or more rounds of byes.
func TestBuildGraph_OddCountsConverge(t *testing.T) {
	cases := []struct {
		teamCount    int
		wantWBRounds int
		wantByes     int
	}{
		{teamCount: 5, wantWBRounds: 3, wantByes: 3},
		{teamCount: 6, wantWBRounds: 3, wantByes: 2},
		{teamCount: 7, wantWBRounds: 3, wantByes: 1},
		{teamCount: 13, wantWBRounds: 4, wantByes: 3},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_teams", tc.teamCount), func(t *testing.T) {
			build, wbRounds, lbRoundNum, err := buildGraph(seedTeams(tc.teamCount))

			require.NoError(t, err)
			assert.Equal(t, tc.wantWBRounds, wbRounds)
			assert.Equal(t, tc.wantByes, countByeRound0(build))
			assert.GreaterOrEqual(t, lbRoundNum, wbRounds)

			var championship *genMatch
			matchesWithNoWinnerTarget := 0
			for _, gm := range build.all {
				if gm.roundType == models.RoundChampionship {
					championship = gm
				}
				if gm.winnerToIdx == nil {
					matchesWithNoWinnerTarget++
				}
			}
			require.NotNil(t, championship, "graph must contain exactly one championship match")
			// The championship match is the only node nothing feeds out of.
			assert.Equal(t, 1, matchesWithNoWinnerTarget)

			// Both the winners-bracket finalist and the losers-bracket
			// finalist must feed into the championship match.
			feedsChampionship := 0
			for _, gm := range build.all {
				if gm.winnerToIdx != nil && *gm.winnerToIdx == championship.idx {
					feedsChampionship++
				}
			}
			assert.Equal(t, 2, feedsChampionship)
		})
	}
}

// TestBuildGraph_ByeMatchesHaveNoSecondTeam confirms every round-0 bye
// slot really is a solo match (team1 set, team2 nil) rather than an
// accidental pairing of two byes, for a count with multiple byes.
func TestBuildGraph_ByeMatchesHaveNoSecondTeam(t *testing.T) {
	build, _, _, err := buildGraph(seedTeams(13))
	require.NoError(t, err)

	for _, gm := range build.all {
		if gm.roundType == models.RoundWinners && gm.roundNumber == 0 && gm.team2 == nil {
			assert.NotNil(t, gm.team1, "a round-0 bye match must still carry its sole team")
		}
	}
}

// TestBuildGraph_RejectsTooFewTeams matches Build's own guard, since
// buildGraph is the half that actually enforces it.
func TestBuildGraph_RejectsTooFewTeams(t *testing.T) {
	_, _, _, err := buildGraph(seedTeams(3))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
