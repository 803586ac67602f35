// internal/services/auth_service.go
// Authentication and authorization service

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tournament-planner/internal/config"
	"tournament-planner/internal/models"
	"tournament-planner/internal/repositories"
	"tournament-planner/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles operator authentication. There is no self-service
// registration or password-reset-by-email flow: operators are provisioned
// directly in the database, and this service only ever logs an existing
// one in.
type AuthService struct {
	operatorRepo *repositories.OperatorRepository
	config       config.AuthConfig
	cache        *CacheService
	logger       *log.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	operatorRepo *repositories.OperatorRepository,
	config config.AuthConfig,
	cache *CacheService,
	logger *log.Logger,
) *AuthService {
	return &AuthService{
		operatorRepo: operatorRepo,
		config:       config,
		cache:        cache,
		logger:       logger,
	}
}

// Login authenticates an operator and returns tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Operator, *models.TokenPair, error) {
	operator, err := s.operatorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(operator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	operator.PasswordHash = ""

	return operator, tokenPair, nil
}

// RefreshToken generates new tokens using a refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	cacheKey := fmt.Sprintf("refresh_token_%s", refreshToken)
	var operatorID string
	if err := s.cache.Get(cacheKey, &operatorID); err != nil {
		return nil, ErrInvalidToken
	}

	operator, err := s.operatorRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	s.cache.Delete(cacheKey)

	return s.generateTokenPair(operator)
}

// generateTokenPair creates access and refresh tokens for an operator.
func (s *AuthService) generateTokenPair(operator *models.Operator) (*models.TokenPair, error) {
	accessToken, err := utils.GenerateJWT(operator.ID, string(operator.Role), s.config.JWTSecret, s.config.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	cacheKey := fmt.Sprintf("refresh_token_%s", refreshToken)
	if err := s.cache.Set(cacheKey, operator.ID, s.config.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to cache refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.config.JWTExpiration),
	}, nil
}

// ValidateToken validates a JWT token and returns the operator id and role.
func (s *AuthService) ValidateToken(token string) (string, string, error) {
	operatorID, role, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	return operatorID, role, nil
}

// Logout invalidates a refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		cacheKey := fmt.Sprintf("refresh_token_%s", refreshToken)
		s.cache.Delete(cacheKey)
	}
	return nil
}
