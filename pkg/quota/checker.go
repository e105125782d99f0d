package quota

import (
	"context"
	"fmt"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// Checker decides whether an organization may create another customer or
// project under its owner's subscription plan.
//
// The check and the subsequent insert are separate statements, so two
// concurrent creates against a nearly-full quota can both pass and overshoot
// the limit by at most the number of concurrent requests minus one. This is
// an accepted soft-limit behavior for a low-contention control plane.
type Checker struct {
	store *store.Store
}

// NewChecker creates a new quota checker
func NewChecker(st *store.Store) *Checker {
	return &Checker{store: st}
}

// loadActiveSubscription resolves the subscription governing an organization
// (the one keyed by the organization owner's user id) and verifies it is
// active.
func (c *Checker) loadActiveSubscription(ctx context.Context, organizationID string) (*domain.Subscription, error) {
	org, err := c.store.GetOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	if org == nil {
		return nil, &domain.NotFoundError{Entity: "organization", ID: organizationID}
	}

	sub, err := c.store.GetSubscriptionByUser(ctx, org.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return nil, &domain.NotFoundError{Entity: "subscription"}
	}

	if sub.Status != domain.SubscriptionActive {
		return nil, &domain.InvalidStateError{Reason: "subscription not active"}
	}
	return sub, nil
}

// CheckCustomerCreationAllowed verifies the organization exists, its owner's
// subscription is active, and the customer count is below the plan limit.
// A limit of domain.Unlimited (-1) always passes regardless of count.
func (c *Checker) CheckCustomerCreationAllowed(ctx context.Context, organizationID string) error {
	sub, err := c.loadActiveSubscription(ctx, organizationID)
	if err != nil {
		return err
	}

	count, err := c.store.CountCustomers(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}

	if sub.MaxCustomers != domain.Unlimited && count >= sub.MaxCustomers {
		return &domain.LimitExceededError{Resource: "customers", Current: count, Limit: sub.MaxCustomers}
	}
	return nil
}

// CheckProjectCreationAllowed verifies the same preconditions as customer
// creation against the project limit, plus that the referenced customer
// exists and belongs to the target organization.
func (c *Checker) CheckProjectCreationAllowed(ctx context.Context, organizationID, customerID string) error {
	sub, err := c.loadActiveSubscription(ctx, organizationID)
	if err != nil {
		return err
	}

	customer, err := c.store.GetCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return &domain.NotFoundError{Entity: "customer", ID: customerID}
	}
	if customer.OrganizationID != organizationID {
		// Same taxonomy as a missing customer, but the message distinguishes
		// a cross-organization reference from an absent row.
		return fmt.Errorf("customer belongs to a different organization: %w",
			&domain.NotFoundError{Entity: "customer", ID: customerID})
	}

	count, err := c.store.CountProjects(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}

	if sub.MaxProjects != domain.Unlimited && count >= sub.MaxProjects {
		return &domain.LimitExceededError{Resource: "projects", Current: count, Limit: sub.MaxProjects}
	}
	return nil
}
