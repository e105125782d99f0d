package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/accounts"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// Signup registers a new user account. The account service also provisions
// the default organization and free subscription, so a 201 means the caller
// can start creating customers immediately.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req accounts.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "email, name and password are required")
		return
	}

	result, err := s.accounts.Signup(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.SignupsTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, result)
}

// GetUser returns a user by id.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "user not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update to a user.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.UserUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := s.store.UpdateUser(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUserSubscription returns the subscription owned by a user.
func (s *Server) GetUserSubscription(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := s.store.GetSubscriptionByUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "subscription not found for user: "+id)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}
