package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateUser inserts a new user, assigning id and timestamps. A duplicate
// email surfaces as a domain.ConflictError.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.q.ExecContext(ctx, query, user.ID, user.Email, user.Name,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "user", Field: "email"}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id, returning nil without error when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user := &domain.User{}
	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, returning nil when absent.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	user := &domain.User{}
	err := s.q.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UserUpdate holds the mutable user fields for partial updates.
type UserUpdate struct {
	Email domain.Optional[string] `json:"email"`
	Name  domain.Optional[string] `json:"name"`
}

// UpdateUser writes only the fields present in the update and refreshes
// updated_at. Fails with domain.NotFoundError when the id does not exist.
func (s *Store) UpdateUser(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Email.Set && update.Email.Valid {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argPos))
		args = append(args, update.Email.Value)
		argPos++
	}
	if update.Name.Set && update.Name.Valid {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, update.Name.Value)
		argPos++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &domain.ConflictError{Entity: "user", Field: "email"}
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "user", ID: id}
	}

	return s.GetUser(ctx, id)
}
