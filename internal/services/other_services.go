// internal/services/other_services.go
// Notification and analytics services

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/config"
	"tournament-planner/internal/database"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationService handles operator-facing notifications. The league
// runs no self-service player accounts, so notifications are directed at
// operators (the directors running the event) via SendGrid rather than
// individual players. With no API key configured, sends are skipped and
// logged instead, so local development never needs a live SendGrid account.
type NotificationService struct {
	db       *database.Connections
	operator *repositories.OperatorRepository
	config   *config.Config
	logger   *log.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(db *database.Connections, operator *repositories.OperatorRepository, config *config.Config, logger *log.Logger) *NotificationService {
	return &NotificationService{
		db:       db,
		operator: operator,
		config:   config,
		logger:   logger,
	}
}

// NotifyBracketGenerated notifies once a tournament's bracket has been built.
func (s *NotificationService) NotifyBracketGenerated(tournament *models.Tournament, teamCount int) {
	s.logger.Printf("bracket generated for tournament %d with %d teams", tournament.ID, teamCount)
	s.sendToDirectors(context.Background(),
		fmt.Sprintf("Tournament %d bracket generated", tournament.ID),
		fmt.Sprintf("The bracket for tournament %d has been built with %d teams across %d stations.",
			tournament.ID, teamCount, tournament.StationCount),
	)
}

// NotifyMatchResult logs a completed match result.
func (s *NotificationService) NotifyMatchResult(match *models.Match) {
	s.logger.Printf("match %d completed, winner team %v", match.ID, match.WinnerTeamID)
}

// NotifyTournamentCompleted notifies directors of a tournament's final
// settlement, including the ace-pot payout if one was earned.
func (s *NotificationService) NotifyTournamentCompleted(tournament *models.Tournament, acePotPaid bool) {
	s.logger.Printf("tournament %d completed, ace pot paid: %v", tournament.ID, acePotPaid)
	body := fmt.Sprintf("Tournament %d has been completed and settled.", tournament.ID)
	if acePotPaid {
		body += " The ace pot was paid out to an undefeated champion."
	}
	s.sendToDirectors(context.Background(), fmt.Sprintf("Tournament %d completed", tournament.ID), body)
}

// sendToDirectors emails every Director-role operator. Failures are
// logged, never fatal: a missed notification must never block the
// scoring or settlement flow that triggered it.
func (s *NotificationService) sendToDirectors(ctx context.Context, subject, body string) {
	if s.config.Email.APIKey == "" {
		s.logger.Printf("sendgrid not configured, skipping email: %s", subject)
		return
	}

	emails, err := s.operator.ListDirectorEmails(ctx)
	if err != nil {
		s.logger.Printf("failed to list director emails: %v", err)
		return
	}

	from := mail.NewEmail(s.config.Email.FromName, s.config.Email.FromEmail)
	client := sendgrid.NewSendClient(s.config.Email.APIKey)
	for _, email := range emails {
		to := mail.NewEmail("", email)
		message := mail.NewSingleEmail(from, subject, to, body, fmt.Sprintf("<p>%s</p>", body))
		response, err := client.SendWithContext(ctx, message)
		if err != nil {
			s.logger.Printf("failed to send notification email to %s: %v", email, err)
			continue
		}
		if response.StatusCode >= 400 {
			s.logger.Printf("sendgrid error sending to %s: status %d, body: %s", email, response.StatusCode, response.Body)
		}
	}
}

// ========================================

// AnalyticsService logs tournament lifecycle events to an append-only
// Mongo ledger, independent of the relational tables used for scoring.
type AnalyticsService struct {
	db     *mongo.Database
	cache  *CacheService
	logger *log.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *mongo.Database, cache *CacheService, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// LogEvent records an analytics event. Failures are logged, not returned:
// a missing analytics write must never block scoring or bracket progress.
func (s *AnalyticsService) LogEvent(ctx context.Context, eventType string, data map[string]interface{}) error {
	event := bson.M{
		"type":       eventType,
		"data":       data,
		"timestamp":  time.Now(),
		"created_at": time.Now(),
	}

	_, err := s.db.Collection("analytics_events").InsertOne(ctx, event)
	if err != nil {
		s.logger.Printf("failed to log analytics event: %v", err)
	}

	return nil
}

// GetTournamentStats returns zero-valued counters for a single
// tournament; no aggregation over analytics_events is done.
func (s *AnalyticsService) GetTournamentStats(ctx context.Context, tournamentID int) (map[string]interface{}, error) {
	// TODO: implement aggregation over analytics_events once the event
	// catalogue (bracket_generated, match_scored, recalculated) settles.
	return map[string]interface{}{
		"total_matches_scored": 0,
		"total_recalculations": 0,
	}, nil
}

// GetLeagueStats returns zero-valued season-wide counters, cached for
// five minutes; nothing is aggregated across tournaments.
func (s *AnalyticsService) GetLeagueStats(ctx context.Context) (map[string]interface{}, error) {
	var stats map[string]interface{}
	if err := s.cache.Get("league_stats", &stats); err == nil {
		return stats, nil
	}

	stats = map[string]interface{}{
		"total_players":     0,
		"total_tournaments":  0,
		"total_matches":      0,
		"active_tournaments": 0,
	}

	s.cache.Set("league_stats", stats, 5*time.Minute)

	return stats, nil
}
