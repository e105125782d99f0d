package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/punchclockhq/punchclock/pkg/domain"
)

// CreateSubscription inserts a new subscription, assigning id and timestamps.
func (s *Store) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := s.now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `
		INSERT INTO subscriptions (id, user_id, plan, status, max_customers, max_projects, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.q.ExecContext(ctx, query, sub.ID, sub.UserID, sub.Plan, sub.Status,
		sub.MaxCustomers, sub.MaxProjects, sub.ExpiresAt, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func scanSubscription(row *sql.Row) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	var expiresAt sql.NullTime
	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.Plan, &sub.Status,
		&sub.MaxCustomers, &sub.MaxProjects, &expiresAt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		sub.ExpiresAt = &t
	}
	return sub, nil
}

// GetSubscription retrieves a subscription by id, returning nil when absent.
func (s *Store) GetSubscription(ctx context.Context, id string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, plan, status, max_customers, max_projects, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`
	sub, err := scanSubscription(s.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// GetSubscriptionByUser retrieves the subscription for a user. The user to
// subscription relationship is one-to-one by convention only, so the newest
// row wins if several exist.
func (s *Store) GetSubscriptionByUser(ctx context.Context, userID string) (*domain.Subscription, error) {
	query := `
		SELECT id, user_id, plan, status, max_customers, max_projects, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	sub, err := scanSubscription(s.q.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription by user: %w", err)
	}
	return sub, nil
}

// SubscriptionUpdate holds the mutable subscription fields for partial
// updates. ExpiresAt is nullable: an explicit null clears the expiry.
type SubscriptionUpdate struct {
	Plan         domain.Optional[domain.PlanTier]           `json:"plan"`
	Status       domain.Optional[domain.SubscriptionStatus] `json:"status"`
	MaxCustomers domain.Optional[int]                       `json:"max_customers"`
	MaxProjects  domain.Optional[int]                       `json:"max_projects"`
	ExpiresAt    domain.Optional[time.Time]                 `json:"expires_at"`
}

// UpdateSubscription writes only the fields present in the update and
// refreshes updated_at.
func (s *Store) UpdateSubscription(ctx context.Context, id string, update SubscriptionUpdate) (*domain.Subscription, error) {
	setClauses := []string{}
	args := []any{}
	argPos := 1

	if update.Plan.Set && update.Plan.Valid {
		setClauses = append(setClauses, fmt.Sprintf("plan = $%d", argPos))
		args = append(args, update.Plan.Value)
		argPos++
	}
	if update.Status.Set && update.Status.Valid {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, update.Status.Value)
		argPos++
	}
	if update.MaxCustomers.Set && update.MaxCustomers.Valid {
		setClauses = append(setClauses, fmt.Sprintf("max_customers = $%d", argPos))
		args = append(args, update.MaxCustomers.Value)
		argPos++
	}
	if update.MaxProjects.Set && update.MaxProjects.Valid {
		setClauses = append(setClauses, fmt.Sprintf("max_projects = $%d", argPos))
		args = append(args, update.MaxProjects.Value)
		argPos++
	}
	if update.ExpiresAt.Set {
		setClauses = append(setClauses, fmt.Sprintf("expires_at = $%d", argPos))
		if update.ExpiresAt.Valid {
			args = append(args, update.ExpiresAt.Value)
		} else {
			args = append(args, nil)
		}
		argPos++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, s.now())
	argPos++

	args = append(args, id)
	query := fmt.Sprintf("UPDATE subscriptions SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argPos)

	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, &domain.NotFoundError{Entity: "subscription", ID: id}
	}

	return s.GetSubscription(ctx, id)
}
