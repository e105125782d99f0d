package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/punchclockhq/punchclock/pkg/domain"
	"github.com/punchclockhq/punchclock/pkg/store"
)

// CreateTimeEntryRequest is the payload for creating a time entry. A nil
// end_time starts an open timer.
type CreateTimeEntryRequest struct {
	UserID      string     `json:"user_id"`
	CustomerID  *string    `json:"customer_id"`
	ProjectID   *string    `json:"project_id"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Tags        []string   `json:"tags"`
}

// CreateTimeEntry creates a time entry with its duration derived from the
// start/end times.
func (s *Server) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id is required")
		return
	}
	if req.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "start_time is required")
		return
	}

	entry := &domain.TimeEntry{
		UserID:      req.UserID,
		CustomerID:  req.CustomerID,
		ProjectID:   req.ProjectID,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Tags:        req.Tags,
	}
	if err := s.timesheet.CreateEntry(r.Context(), entry); err != nil {
		writeDomainError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.TimeEntriesTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, entry)
}

// parseFilterTime accepts RFC 3339 timestamps and bare dates. endOfDay
// stretches a bare date to the last instant of that day so
// end_date=2026-08-19 includes every entry started that day, including ones
// started in its final second.
func parseFilterTime(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be RFC 3339 or YYYY-MM-DD: %s", value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// ListTimeEntries lists entries matching the query filters: user_id,
// customer_id, project_id, start_date, end_date and tags (comma separated,
// matching entries carrying any of them).
func (s *Server) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.TimeEntryFilter

	if v := q.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := q.Get("customer_id"); v != "" {
		filter.CustomerID = &v
	}
	if v := q.Get("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := q.Get("start_date"); v != "" {
		t, err := parseFilterTime(v, false)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid start_date: "+err.Error())
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := parseFilterTime(v, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid end_date: "+err.Error())
			return
		}
		filter.EndDate = &t
	}
	if v := q.Get("tags"); v != "" {
		filter.Tags = strings.Split(v, ",")
	}

	entries, err := s.store.ListTimeEntries(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetTimeEntry returns a time entry by id.
func (s *Server) GetTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	entry, err := s.store.GetTimeEntry(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "time entry not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// UpdateTimeEntry applies a partial update; the duration is recomputed from
// the effective times and an explicit null end_time reopens the timer.
func (s *Server) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update store.TimeEntryUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	entry, err := s.timesheet.UpdateEntry(r.Context(), id, update)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteTimeEntry deletes a time entry. Deleting a missing entry reports
// deleted=false rather than an error.
func (s *Server) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := s.store.DeleteTimeEntry(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}
