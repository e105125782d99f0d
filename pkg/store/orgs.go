package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateOrganization inserts a new organization, assigning id and timestamps.
func (s *Store) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	now := s.now()
	org.CreatedAt = now
	org.UpdatedAt = now

	query := `
		INSERT INTO organizations (id, name, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.q.ExecContext(ctx, query, org.ID, org.Name, org.OwnerID,
		org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// GetOrganization retrieves an organization by id, returning nil when absent.
func (s *Store) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`
	org := &domain.Organization{}
	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.OwnerID, &org.CreatedAt, &org.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// ListOrganizationsByOwner lists organizations owned by a user, newest first.
func (s *Store) ListOrganizationsByOwner(ctx context.Context, ownerID string) ([]*domain.Organization, error) {
	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM organizations
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*domain.Organization
	for rows.Next() {
		org := &domain.Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.OwnerID, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// OrganizationUpdate holds the mutable organization fields for partial updates.
type OrganizationUpdate struct {
	Name domain.Optional[string] `json:"name"`
}

// UpdateOrganization writes only the fields present in the update and
// refreshes updated_at.
func (s *Store) UpdateOrganization(ctx context.Context, id string, update OrganizationUpdate) (*domain.Organization, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Name.Set && update.Name.Valid {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, update.Name.Value)
		argPos++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE organizations SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "organization", ID: id}
	}

	return s.GetOrganization(ctx, id)
}
