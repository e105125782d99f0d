package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// CreateProjectRequest is the payload for creating a project. IsActive
// defaults to true when omitted.
type CreateProjectRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	CustomerID     string  `json:"customer_id"`
	OrganizationID string  `json:"organization_id"`
	CreatedBy      string  `json:"created_by"`
	IsActive       *bool   `json:"is_active"`
}

// CreateProject creates a project after checking the owning subscription's
// project limit and that the customer belongs to the same organization.
func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.CustomerID == "" || req.OrganizationID == "" || req.CreatedBy == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name, customer_id, organization_id and created_by are required")
		return
	}

	err := s.quota.CheckProjectCreationAllowed(r.Context(), req.OrganizationID, req.CustomerID)
	if err == nil || domain.IsLimitExceeded(err) {
		s.recordQuotaCheck("projects", err)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	project := &domain.Project{
		Name:           req.Name,
		Description:    req.Description,
		CustomerID:     req.CustomerID,
		OrganizationID: req.OrganizationID,
		CreatedBy:      req.CreatedBy,
		IsActive:       active,
	}
	if err := s.store.CreateProject(r.Context(), project); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// ListProjects lists an organization's projects, optionally narrowed to one
// customer. The org_id query parameter is required.
func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("org_id")
	if orgID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "org_id query parameter is required")
		return
	}
	var customerID *string
	if v := r.URL.Query().Get("customer_id"); v != "" {
		customerID = &v
	}

	projects, err := s.store.ListProjects(r.Context(), orgID, customerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns a project by id.
func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	project, err := s.store.GetProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "project not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update to a project.
func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.ProjectUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	project, err := s.store.UpdateProject(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DeleteProject cascades: every time entry referencing the project goes with
// it, while the customer and customer-scoped entries stay.
func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := s.lifecycle.DeleteProject(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if deleted && s.metrics != nil {
		s.metrics.CascadeDeletesTotal.WithLabelValues("project").Inc()
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}
