package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/punchclockhq/punchclock/pkg/domain"
)

// ErrorBody is the JSON error envelope returned on every failure.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeConflict      = "conflict"
	codeInvalidState  = "invalid_state"
	codeLimitExceeded = "limit_exceeded"
	codeInternal      = "internal"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses:
// NotFound 404, Conflict 409, InvalidState 422, LimitExceeded 403,
// anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case domain.IsConflict(err):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case domain.IsInvalidState(err):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidState, err.Error())
	case domain.IsLimitExceeded(err):
		writeError(w, http.StatusForbidden, codeLimitExceeded, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

var errEmptyBody = errors.New("request body is required")

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// payloads fail loudly instead of silently skipping an update.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// DeleteResponse reports whether a DELETE removed a row. Deleting a missing
// id is a 200 with deleted=false, never an error.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
