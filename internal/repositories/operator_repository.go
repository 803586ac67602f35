// internal/repositories/operator_repository.go
// Operator (director/admin) data access layer

package repositories

import (
	"context"
	"database/sql"

	"tournament-planner/internal/models"
)

// OperatorRepository handles operator data access.
type OperatorRepository struct {
	db *sql.DB
}

// NewOperatorRepository creates a new operator repository.
func NewOperatorRepository(db *sql.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, created_at, updated_at
		FROM operators WHERE email = ?
	`
	var o models.Operator
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.FullName, &o.Role, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListDirectorEmails returns the email addresses of every Director-role
// operator, the audience for bracket/payout notification emails.
func (r *OperatorRepository) ListDirectorEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM operators WHERE role = ?`, models.RoleDirector)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func (r *OperatorRepository) GetByID(ctx context.Context, id string) (*models.Operator, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, created_at, updated_at
		FROM operators WHERE id = ?
	`
	var o models.Operator
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.FullName, &o.Role, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
