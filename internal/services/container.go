// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"
	"time"

	"tournament-planner/internal/config"
	"tournament-planner/internal/database"
	"tournament-planner/internal/repositories"
)

// stationLockTTL bounds how long a StartMatch call holds the
// per-tournament station lock before it is assumed abandoned.
const stationLockTTL = 5 * time.Second

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth          *AuthService
	Player        *PlayerService
	Tournament    *TournamentService
	Match         *MatchService
	TeamFormer    *TeamFormer
	Bracket       *BracketBuilder
	Stations      *StationAllocator
	Scoring       *ScoringEngine
	Completion    *CompletionPipeline
	Recalculation *RecalculationService
	Notification  *NotificationService
	Cache         *CacheService
	Analytics     *AnalyticsService
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, logger *log.Logger) *Container {
	repos := repositories.NewContainer(db)

	cache := NewCacheService(db.Redis, logger)
	notification := NewNotificationService(db, repos.Operator, cfg, logger)
	analytics := NewAnalyticsService(db.MongoDB, cache, logger)

	auth := NewAuthService(repos.Operator, cfg.Auth, cache, logger)
	player := NewPlayerService(repos.Player, repos.History, logger)

	teamFormer := NewTeamFormer(repos, logger)
	bracket := NewBracketBuilder(repos, logger)
	stations := NewStationAllocator(repos, cache, logger)

	scoring := NewScoringEngine(repos, notification, analytics, logger)
	completion := NewCompletionPipeline(repos, notification, logger)
	scoring.SetCompletionPipeline(completion)
	recalculation := NewRecalculationService(repos, completion, analytics, logger)

	tournament := NewTournamentService(repos, cache, notification, analytics, recalculation, teamFormer, bracket, cfg.Tournament, logger)
	match := NewMatchService(repos, cache, stations, scoring, notification, logger)

	return &Container{
		Auth:          auth,
		Player:        player,
		Tournament:    tournament,
		Match:         match,
		TeamFormer:    teamFormer,
		Bracket:       bracket,
		Stations:      stations,
		Scoring:       scoring,
		Completion:    completion,
		Recalculation: recalculation,
		Notification:  notification,
		Cache:         cache,
		Analytics:     analytics,
	}
}

// Common errors used across services, surfaced by the API layer as
// typed HTTP failures.
var (
	ErrNotFound                 = errors.New("resource not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidInput             = errors.New("invalid input")
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidToken             = errors.New("invalid token")
	ErrInsufficientParticipants = errors.New("insufficient participants")
	ErrAlreadyRegistered        = errors.New("already registered for this tournament")

	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrMatchNotFound           = errors.New("match not found")
	ErrInvalidState            = errors.New("invalid state for this operation")
	ErrInvalidTournamentStatus = errors.New("invalid tournament status for this operation")
	ErrInvalidScores           = errors.New("scores must be non-negative integers")
	ErrTieDisallowed           = errors.New("tied scores are not allowed")
	ErrUnscoreableMatch        = errors.New("this match cannot be scored directly")
	ErrNoStationAvailable      = errors.New("no station available")
	ErrStationLockBusy         = errors.New("station allocation is in progress for this tournament")
	ErrConflict                = errors.New("conflict")
	ErrAuthRequired            = errors.New("authentication required")
)
