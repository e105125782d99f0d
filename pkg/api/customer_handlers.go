package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	OrganizationID string  `json:"organization_id"`
	CreatedBy      string  `json:"created_by"`
}

func (s *Server) recordQuotaCheck(resource string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "allowed"
	if domain.IsLimitExceeded(err) {
		outcome = "denied"
	}
	s.metrics.QuotaChecksTotal.WithLabelValues(resource, outcome).Inc()
}

// CreateCustomer creates a customer after checking the owning subscription's
// customer limit. A limit hit is a 403, not a 422.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.OrganizationID == "" || req.CreatedBy == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name, organization_id and created_by are required")
		return
	}

	err := s.quota.CheckCustomerCreationAllowed(r.Context(), req.OrganizationID)
	if err == nil || domain.IsLimitExceeded(err) {
		s.recordQuotaCheck("customers", err)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	customer := &domain.Customer{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		OrganizationID: req.OrganizationID,
		CreatedBy:      req.CreatedBy,
	}
	if err := s.store.CreateCustomer(r.Context(), customer); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// ListCustomers lists the customers of an organization. The org_id query
// parameter is required; there is no cross-tenant listing.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("org_id")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "org_id query parameter is required")
		return
	}

	customers, err := s.store.ListCustomers(r.Context(), orgID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer returns a customer by id.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	customer, err := s.store.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "customer not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// UpdateCustomer applies a partial update to a customer.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.CustomerUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	customer, err := s.store.UpdateCustomer(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// DeleteCustomer cascades: the customer's projects and every time entry
// referencing the customer or those projects go with it. Deleting a missing
// customer reports deleted=false rather than an error.
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := s.lifecycle.DeleteCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if deleted && s.metrics != nil {
		s.metrics.CascadeDeletesTotal.WithLabelValues("customer").Inc()
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}
