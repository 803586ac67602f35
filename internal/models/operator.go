// internal/models/operator.go
// Operator (tournament director / admin) authentication models

package models

import "time"

// Operator is a tournament director or admin who can log in to run and
// score tournaments. There is no self-service registration surface;
// operators are provisioned directly in the database.
type Operator struct {
	ID           string       `json:"id" db:"id"`
	Email        string       `json:"email" db:"email"`
	PasswordHash string       `json:"-" db:"password_hash"`
	FullName     string       `json:"full_name" db:"full_name"`
	Role         OperatorRole `json:"role" db:"role"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// OperatorRole defines the two operator access levels this league uses.
type OperatorRole string

const (
	RoleDirector OperatorRole = "Director"
	RoleAdmin    OperatorRole = "Admin"
)

// TokenPair represents JWT access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginRequest represents operator login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
