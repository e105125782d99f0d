package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateProject inserts a new project, assigning id and timestamps. The
// customer/organization consistency check and plan limit check happen in
// pkg/quota before this is called.
func (s *Store) CreateProject(ctx context.Context, project *domain.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := s.now()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, name, description, customer_id, organization_id, created_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.q.ExecContext(ctx, query, project.ID, project.Name, project.Description,
		project.CustomerID, project.OrganizationID, project.CreatedBy,
		project.IsActive, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func scanProjectColumns(scan func(dest ...any) error) (*domain.Project, error) {
	project := &domain.Project{}
	var description sql.NullString
	err := scan(
		&project.ID, &project.Name, &description, &project.CustomerID,
		&project.OrganizationID, &project.CreatedBy, &project.IsActive,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		project.Description = &description.String
	}
	return project, nil
}

// GetProject retrieves a project by id, returning nil when absent.
func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, name, description, customer_id, organization_id, created_by, is_active, created_at, updated_at
		FROM projects
		WHERE id = $1
	`
	row := s.q.QueryRowContext(ctx, query, id)
	project, err := scanProjectColumns(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects lists the projects of an organization, optionally narrowed to
// a single customer, newest first.
func (s *Store) ListProjects(ctx context.Context, organizationID string, customerID *string) ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, customer_id, organization_id, created_by, is_active, created_at, updated_at
		FROM projects
		WHERE organization_id = $1
	`
	args := []any{organizationID}
	if customerID != nil {
		query += ` AND customer_id = $2`
		args = append(args, *customerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProjectColumns(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// ListProjectsByCustomer lists all projects referencing a customer, across
// the whole store. Used by the lifecycle cascader.
func (s *Store) ListProjectsByCustomer(ctx context.Context, customerID string) ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, customer_id, organization_id, created_by, is_active, created_at, updated_at
		FROM projects
		WHERE customer_id = $1
	`
	rows, err := s.q.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by customer: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProjectColumns(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// CountProjects counts the projects of an organization for limit checks.
func (s *Store) CountProjects(ctx context.Context, organizationID string) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE organization_id = $1`, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// ProjectUpdate holds the mutable project fields for partial updates.
// Description is nullable: an explicit null clears it.
type ProjectUpdate struct {
	Name        domain.Optional[string] `json:"name"`
	Description domain.Optional[string] `json:"description"`
	IsActive    domain.Optional[bool]   `json:"is_active"`
}

// UpdateProject writes only the fields present in the update and refreshes
// updated_at.
func (s *Store) UpdateProject(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Name.Set && update.Name.Valid {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, update.Name.Value)
		argPos++
	}
	if update.Description.Set {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argPos))
		if update.Description.Valid {
			args = append(args, update.Description.Value)
		} else {
			args = append(args, nil)
		}
		argPos++
	}
	if update.IsActive.Set && update.IsActive.Valid {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, update.IsActive.Value)
		argPos++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "project", ID: id}
	}

	return s.GetProject(ctx, id)
}

// DeleteProject removes the project row only; dependent time entries are
// handled by the lifecycle cascader. Returns whether a row was removed.
func (s *Store) DeleteProject(ctx context.Context, id string) (bool, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteProjectsByCustomer removes every project referencing a customer.
// Used by the lifecycle cascader; returns the number of rows removed.
func (s *Store) DeleteProjectsByCustomer(ctx context.Context, customerID string) (int64, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM projects WHERE customer_id = $1`, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete projects by customer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}
