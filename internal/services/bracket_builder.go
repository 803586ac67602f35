// internal/services/bracket_builder.go
// Double-elimination bracket graph generation

package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// BracketBuilder materializes a complete double-elimination match graph
// for a set of seeded teams: a winners bracket, a losers bracket built by
// alternating drop-in and consolidation rounds, and a single championship
// match. Byes are modeled as ordinary one-team matches — ByeAutoAdvancer
// is the only component that ever completes them.
type BracketBuilder struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewBracketBuilder creates a new bracket builder.
func NewBracketBuilder(repos *repositories.Container, logger *log.Logger) *BracketBuilder {
	return &BracketBuilder{repos: repos, logger: logger}
}

// genMatch is the in-memory, not-yet-persisted representation of one
// bracket node. winnerToIdx/loserToIdx reference other genMatch entries
// by slice index until the whole graph is inserted and real ids exist.
type genMatch struct {
	idx         int
	roundType   models.RoundType
	roundNumber int
	position    int
	team1       *int
	team2       *int
	winnerToIdx *int
	loserToIdx  *int

	id int // filled in after CreateTx
}

// feed names a match's winner or loser as a source that will later be
// wired into some downstream match's team slot.
type feed struct {
	srcIdx  int
	isLoser bool
}

type bracketBuild struct {
	all []*genMatch
}

func (b *bracketBuild) newMatch(roundType models.RoundType, roundNumber, position int) *genMatch {
	m := &genMatch{idx: len(b.all), roundType: roundType, roundNumber: roundNumber, position: position}
	b.all = append(b.all, m)
	return m
}

func (b *bracketBuild) wire(f feed, targetIdx int) {
	t := targetIdx
	if f.isLoser {
		b.all[f.srcIdx].loserToIdx = &t
	} else {
		b.all[f.srcIdx].winnerToIdx = &t
	}
}

// consolidate pairs a list of feeds (first-round winners-bracket losers,
// or losers-bracket winners) two at a time into new losers-
// bracket matches, halving the count. An odd leftover feed becomes a
// solo match that ByeAutoAdvancer will wave through for free.
func (b *bracketBuild) consolidate(active []feed, roundNumber int) []feed {
	next := make([]feed, 0, (len(active)+1)/2)
	for i := 0; i < len(active); i += 2 {
		m := b.newMatch(models.RoundLosers, roundNumber, len(next))
		b.wire(active[i], m.idx)
		if i+1 < len(active) {
			b.wire(active[i+1], m.idx)
		}
		next = append(next, feed{srcIdx: m.idx})
	}
	return next
}

// dropIn zips the current losers-bracket winners against a fresh set of
// winners-bracket losers, one pair per match. A count mismatch (only
// possible when byes shrank an earlier round) produces a solo match for
// the unmatched side rather than losing a team.
func (b *bracketBuild) dropIn(active, wbLosers []feed, roundNumber int) []feed {
	n := len(active)
	if len(wbLosers) > n {
		n = len(wbLosers)
	}
	next := make([]feed, 0, n)
	for i := 0; i < n; i++ {
		m := b.newMatch(models.RoundLosers, roundNumber, i)
		if i < len(active) {
			b.wire(active[i], m.idx)
		}
		if i < len(wbLosers) {
			b.wire(wbLosers[i], m.idx)
		}
		next = append(next, feed{srcIdx: m.idx})
	}
	return next
}

// Build generates and persists the full bracket for the given teams
// (already ordered by seed_number ascending) and returns the inserted
// matches in match_order.
func (bb *BracketBuilder) Build(ctx context.Context, tournamentID int, teams []*models.Team) ([]*models.Match, error) {
	build, wbRounds, lbRoundNum, err := buildGraph(teams)
	if err != nil {
		return nil, err
	}

	matches, err := bb.persist(ctx, tournamentID, build, wbRounds, lbRoundNum)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// buildGraph constructs the full in-memory double-elimination match
// graph for a set of seeded teams (already ordered by seed_number
// ascending), with no database involvement: pure enough to exercise
// directly in tests for bye placement and round counts across any team
// count. Build wires the returned graph to real match ids via persist.
func buildGraph(teams []*models.Team) (build *bracketBuild, wbRounds, lbRoundNum int, err error) {
	t := len(teams)
	if t < 4 {
		return nil, 0, 0, ErrInvalidInput
	}

	size := 1
	wbRounds = 0
	for size < t {
		size *= 2
		wbRounds++
	}
	b := size
	numByes := b - t

	build = &bracketBuild{}

	championship := build.newMatch(models.RoundChampionship, wbRounds, 0)

	wb := make([][]*genMatch, wbRounds)
	wb[0] = make([]*genMatch, b/2)
	byeTeams := teams[:numByes]
	realTeams := teams[numByes:]
	for p := 0; p < b/2; p++ {
		m := build.newMatch(models.RoundWinners, 0, p)
		wb[0][p] = m
		if p < numByes {
			id := byeTeams[p].ID
			m.team1 = &id
		} else {
			idx := p - numByes
			id1 := realTeams[2*idx].ID
			id2 := realTeams[2*idx+1].ID
			m.team1 = &id1
			m.team2 = &id2
		}
	}
	for r := 1; r < wbRounds; r++ {
		wb[r] = make([]*genMatch, b/int(math.Pow(2, float64(r+1))))
		for p := range wb[r] {
			wb[r][p] = build.newMatch(models.RoundWinners, r, p)
		}
	}

	for r := 0; r < wbRounds-1; r++ {
		for p, m := range wb[r] {
			build.wire(feed{srcIdx: m.idx}, wb[r+1][p/2].idx)
		}
	}
	build.wire(feed{srcIdx: wb[wbRounds-1][0].idx}, championship.idx)

	// Losers-bracket round 0: drop in only the real (non-bye) round-0
	// losers; bye matches never produce a loser.
	feeds0 := make([]feed, 0, len(wb[0])-numByes)
	for p := numByes; p < len(wb[0]); p++ {
		feeds0 = append(feeds0, feed{srcIdx: wb[0][p].idx, isLoser: true})
	}
	active := build.consolidate(feeds0, 0)
	lbRoundNum = 1

	wbPtr := 1
	for wbPtr <= wbRounds-1 {
		losers := make([]feed, 0, len(wb[wbPtr]))
		for _, m := range wb[wbPtr] {
			losers = append(losers, feed{srcIdx: m.idx, isLoser: true})
		}
		active = build.dropIn(active, losers, lbRoundNum)
		lbRoundNum++
		wbPtr++
		if len(active) > 1 && wbPtr <= wbRounds-1 {
			active = build.consolidate(active, lbRoundNum)
			lbRoundNum++
		}
	}
	for len(active) > 1 {
		active = build.consolidate(active, lbRoundNum)
		lbRoundNum++
	}
	if len(active) != 1 {
		return nil, 0, 0, fmt.Errorf("bracket construction did not converge to a single losers finalist")
	}
	build.wire(active[0], championship.idx)

	return build, wbRounds, lbRoundNum, nil
}

// persist writes the in-memory graph in one transaction: insert every
// match to obtain real ids, back-fill the self-referential advancement
// edges, assign match_order, then let ByeAutoAdvancer resolve every
// first-round bye before returning.
func (bb *BracketBuilder) persist(ctx context.Context, tournamentID int, build *bracketBuild, wbRounds, lbRounds int) ([]*models.Match, error) {
	tx, err := bb.repos.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, gm := range build.all {
		m := &models.Match{
			TournamentID: tournamentID,
			Stage:        models.StageFinals,
			RoundType:    gm.roundType,
			RoundNumber:  gm.roundNumber,
			Team1ID:      gm.team1,
			Team2ID:      gm.team2,
			Status:       models.MatchPending,
		}
		if err := bb.repos.Match.CreateTx(ctx, tx, m); err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
		gm.id = m.ID
	}

	for _, gm := range build.all {
		var winnerTo, loserTo *int
		if gm.winnerToIdx != nil {
			id := build.all[*gm.winnerToIdx].id
			winnerTo = &id
		}
		if gm.loserToIdx != nil {
			id := build.all[*gm.loserToIdx].id
			loserTo = &id
		}
		if winnerTo != nil || loserTo != nil {
			if err := bb.repos.Match.SetAdvancementTx(ctx, tx, gm.id, winnerTo, loserTo); err != nil {
				return nil, fmt.Errorf("failed to wire advancement: %w", err)
			}
		}
	}

	order := 1
	maxRounds := wbRounds
	if lbRounds > maxRounds {
		maxRounds = lbRounds
	}
	for round := 0; round <= maxRounds; round++ {
		for _, gm := range build.all {
			if gm.roundType == models.RoundWinners && gm.roundNumber == round {
				if err := bb.repos.Match.SetMatchOrderTx(ctx, tx, gm.id, order); err != nil {
					return nil, err
				}
				order++
			}
		}
		for _, gm := range build.all {
			if gm.roundType == models.RoundLosers && gm.roundNumber == round {
				if err := bb.repos.Match.SetMatchOrderTx(ctx, tx, gm.id, order); err != nil {
					return nil, err
				}
				order++
			}
		}
	}
	for _, gm := range build.all {
		if gm.roundType == models.RoundChampionship {
			if err := bb.repos.Match.SetMatchOrderTx(ctx, tx, gm.id, order); err != nil {
				return nil, err
			}
			order++
		}
	}

	advancer := NewByeAutoAdvancer(bb.repos, bb.logger)
	if err := advancer.RunTx(ctx, tx, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to auto-advance byes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return bb.repos.Match.GetByTournamentID(ctx, tournamentID)
}
