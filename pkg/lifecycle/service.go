package lifecycle

import (
	"context"
	"fmt"

	"github.com/punchclockhq/punchclock/pkg/store"
)

// Service performs cascading deletes. Time entries reference customers and
// projects without foreign keys, so the cascade is explicit: dependents are
// removed in the same transaction as the parent row.
type Service struct {
	store *store.Store
}

// NewService creates a new lifecycle service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// DeleteCustomer removes a customer together with its projects and every
// time entry referencing the customer or one of those projects. Returns
// false when the customer does not exist; repeated calls are no-ops.
func (s *Service) DeleteCustomer(ctx context.Context, customerID string) (bool, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	txStore := s.store.WithTx(tx)

	customer, err := txStore.GetCustomer(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return false, nil
	}

	if _, err := txStore.DeleteTimeEntriesByCustomer(ctx, customerID); err != nil {
		return false, err
	}

	// Entries can point at a project without naming the customer, so each
	// project's entries go before the projects themselves.
	projects, err := txStore.ListProjectsByCustomer(ctx, customerID)
	if err != nil {
		return false, err
	}
	for _, project := range projects {
		if _, err := txStore.DeleteTimeEntriesByProject(ctx, project.ID); err != nil {
			return false, err
		}
	}
	if _, err := txStore.DeleteProjectsByCustomer(ctx, customerID); err != nil {
		return false, err
	}

	deleted, err := txStore.DeleteCustomer(ctx, customerID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit customer delete: %w", err)
	}
	return deleted, nil
}

// DeleteProject removes a project and every time entry referencing it.
// Returns false when the project does not exist.
func (s *Service) DeleteProject(ctx context.Context, projectID string) (bool, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()
	txStore := s.store.WithTx(tx)

	project, err := txStore.GetProject(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return false, nil
	}

	if _, err := txStore.DeleteTimeEntriesByProject(ctx, projectID); err != nil {
		return false, err
	}

	deleted, err := txStore.DeleteProject(ctx, projectID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit project delete: %w", err)
	}
	return deleted, nil
}
