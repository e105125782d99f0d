package domain

import "time"

// PlanTier represents subscription plan tiers
type PlanTier string

const (
	PlanFree       PlanTier = "free"
	PlanPro        PlanTier = "pro"
	PlanEnterprise PlanTier = "enterprise"
)

// SubscriptionStatus represents subscription lifecycle status
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Unlimited is the sentinel limit value meaning "no cap".
const Unlimited = -1

// PlanLimits holds the customer/project caps for a plan tier.
type PlanLimits struct {
	MaxCustomers int `json:"max_customers"`
	MaxProjects  int `json:"max_projects"`
}

// DefaultPlanLimits returns the default caps for a plan tier.
// Unknown tiers fall back to the free tier limits.
func DefaultPlanLimits(tier PlanTier) PlanLimits {
	switch tier {
	case PlanPro:
		return PlanLimits{MaxCustomers: 50, MaxProjects: 100}
	case PlanEnterprise:
		return PlanLimits{MaxCustomers: Unlimited, MaxProjects: Unlimited}
	default:
		return PlanLimits{MaxCustomers: 3, MaxProjects: 3}
	}
}

// User represents a registered user account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Organization represents a tenant boundary owned by a single user
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription governs the customer/project limits of every organization
// owned by its user. MaxCustomers/MaxProjects use Unlimited (-1) for no cap.
type Subscription struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Plan         PlanTier           `json:"plan"`
	Status       SubscriptionStatus `json:"status"`
	MaxCustomers int                `json:"max_customers"`
	MaxProjects  int                `json:"max_projects"`
	ExpiresAt    *time.Time         `json:"expires_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Customer represents a client of an organization
type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	OrganizationID string    `json:"organization_id"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Project represents work done for a customer. The customer must belong to
// the same organization as the project.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	CustomerID     string    `json:"customer_id"`
	OrganizationID string    `json:"organization_id"`
	CreatedBy      string    `json:"created_by"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TimeEntry represents tracked time. An entry with a nil EndTime is an active
// timer and always carries a nil DurationMinutes.
type TimeEntry struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	CustomerID      *string    `json:"customer_id,omitempty"`
	ProjectID       *string    `json:"project_id,omitempty"`
	Description     string     `json:"description"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Tags            []string   `json:"tags"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
