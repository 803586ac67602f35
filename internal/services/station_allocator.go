// internal/services/station_allocator.go
// Physical putting station assignment

package services

import (
	"context"
	"fmt"
	"log"

	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
)

// StationAllocator assigns the lowest free station number to a match
// when it starts, and frees it again on completion. Two concurrent
// StartMatch calls for the same tournament are serialized through a
// short-lived Redis lock, mirroring the cache service's SetNX pattern.
type StationAllocator struct {
	repos  *repositories.Container
	cache  *CacheService
	logger *log.Logger
}

// NewStationAllocator creates a new station allocator.
func NewStationAllocator(repos *repositories.Container, cache *CacheService, logger *log.Logger) *StationAllocator {
	return &StationAllocator{repos: repos, cache: cache, logger: logger}
}

// StartMatch assigns a station and transitions a Scheduled match to
// InProgress.
func (a *StationAllocator) StartMatch(ctx context.Context, tournamentID, matchID int) (*models.Match, error) {
	lockKey := fmt.Sprintf("station_lock_tournament_%d", tournamentID)
	acquired, err := a.cache.SetNX(lockKey, matchID, stationLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire station lock: %w", err)
	}
	if !acquired {
		return nil, ErrStationLockBusy
	}
	defer a.cache.Delete(lockKey)

	tournament, err := a.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	match, err := a.repos.Match.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchScheduled {
		return nil, ErrInvalidState
	}

	inProgress, err := a.repos.Match.ListInProgress(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	used := make(map[int]bool, len(inProgress))
	for _, m := range inProgress {
		if m.StationAssignment != nil {
			used[*m.StationAssignment] = true
		}
	}

	station := 0
	for n := 1; n <= tournament.StationCount; n++ {
		if !used[n] {
			station = n
			break
		}
	}
	if station == 0 {
		return nil, ErrNoStationAvailable
	}

	tx, err := a.repos.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := a.repos.Match.UpdateStation(ctx, tx, matchID, &station); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if err := a.repos.Match.UpdateStatus(ctx, matchID, models.MatchInPlay); err != nil {
		return nil, err
	}

	match.StationAssignment = &station
	match.Status = models.MatchInPlay
	return match, nil
}
