package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// CreateSubscriptionRequest is the payload for creating a subscription.
// MaxCustomers and MaxProjects default to the plan's limits when omitted.
type CreateSubscriptionRequest struct {
	UserID       string                    `json:"user_id"`
	Plan         domain.PlanTier           `json:"plan"`
	Status       domain.SubscriptionStatus `json:"status"`
	MaxCustomers *int                      `json:"max_customers"`
	MaxProjects  *int                      `json:"max_projects"`
	ExpiresAt    *time.Time                `json:"expires_at"`
}

func validPlan(plan domain.PlanTier) bool {
	switch plan {
	case domain.PlanFree, domain.PlanPro, domain.PlanEnterprise:
		return true
	}
	return false
}

func validSubscriptionStatus(status domain.SubscriptionStatus) bool {
	switch status {
	case domain.SubscriptionActive, domain.SubscriptionCancelled, domain.SubscriptionExpired:
		return true
	}
	return false
}

// CreateSubscription creates a subscription for a user. Each user holds at
// most one subscription, so a second create is a conflict.
func (s *Server) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req CreateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id is required")
		return
	}
	if !validPlan(req.Plan) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "plan must be free, pro or enterprise")
		return
	}
	if req.Status == "" {
		req.Status = domain.SubscriptionActive
	}
	if !validSubscriptionStatus(req.Status) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "status must be active, cancelled or expired")
		return
	}

	user, err := s.store.GetUser(r.Context(), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "user not found: "+req.UserID)
		return
	}

	existing, err := s.store.GetSubscriptionByUser(r.Context(), req.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, codeConflict, "user already has a subscription")
		return
	}

	limits := domain.DefaultPlanLimits(req.Plan)
	if req.MaxCustomers != nil {
		limits.MaxCustomers = *req.MaxCustomers
	}
	if req.MaxProjects != nil {
		limits.MaxProjects = *req.MaxProjects
	}

	sub := &domain.Subscription{
		UserID:       req.UserID,
		Plan:         req.Plan,
		Status:       req.Status,
		MaxCustomers: limits.MaxCustomers,
		MaxProjects:  limits.MaxProjects,
		ExpiresAt:    req.ExpiresAt,
	}
	if err := s.store.CreateSubscription(r.Context(), sub); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// GetSubscription returns a subscription by id.
func (s *Server) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := s.store.GetSubscription(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "subscription not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// UpdateSubscription applies a partial update to a subscription. Plan and
// status changes take effect on the next quota check; nothing existing is
// deleted when limits shrink below current usage.
func (s *Server) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.SubscriptionUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if update.Plan.Set && update.Plan.Valid && !validPlan(update.Plan.Value) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "plan must be free, pro or enterprise")
		return
	}
	if update.Status.Set && update.Status.Valid && !validSubscriptionStatus(update.Status.Value) {
		writeError(w, http.StatusBadRequest, codeBadRequest, "status must be active, cancelled or expired")
		return
	}

	sub, err := s.store.UpdateSubscription(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
