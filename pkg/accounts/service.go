package accounts

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// Service handles account signup. A signup creates the user, a default
// organization named "{name}'s Organization", and a default free
// subscription in one transaction, so a failure partway leaves nothing
// behind.
type Service struct {
	store *store.Store
}

// NewService creates a new account service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SignupRequest represents a new account registration
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SignupResult carries everything created during signup.
type SignupResult struct {
	User         *domain.User         `json:"user"`
	Organization *domain.Organization `json:"organization"`
	Subscription *domain.Subscription `json:"subscription"`
}

// Signup registers a new user. A duplicate email surfaces as a
// domain.ConflictError.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	txStore := s.store.WithTx(tx)

	user := &domain.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := txStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	org := &domain.Organization{
		Name:    fmt.Sprintf("%s's Organization", user.Name),
		OwnerID: user.ID,
	}
	if err := txStore.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	limits := domain.DefaultPlanLimits(domain.PlanFree)
	sub := &domain.Subscription{
		UserID:       user.ID,
		Plan:         domain.PlanFree,
		Status:       domain.SubscriptionActive,
		MaxCustomers: limits.MaxCustomers,
		MaxProjects:  limits.MaxProjects,
	}
	if err := txStore.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit signup: %w", err)
	}

	return &SignupResult{User: user, Organization: org, Subscription: sub}, nil
}
