package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// CreateOrganizationRequest is the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

// CreateOrganization creates an additional organization for an existing user.
func (s *Server) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.OwnerID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name and owner_id are required")
		return
	}

	owner, err := s.store.GetUser(r.Context(), req.OwnerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if owner == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "owner user not found: "+req.OwnerID)
		return
	}

	org := &domain.Organization{Name: req.Name, OwnerID: req.OwnerID}
	if err := s.store.CreateOrganization(r.Context(), org); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

// ListOrganizations lists the organizations owned by a user. The owner_id
// query parameter is required; there is no global listing.
func (s *Server) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "owner_id query parameter is required")
		return
	}

	orgs, err := s.store.ListOrganizationsByOwner(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

// GetOrganization returns an organization by id.
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	org, err := s.store.GetOrganization(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if org == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "organization not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// UpdateOrganization applies a partial update to an organization.
func (s *Server) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.OrganizationUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	org, err := s.store.UpdateOrganization(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}
