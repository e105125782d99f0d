// Package api exposes the HTTP surface of the time tracking service.
//
// All routes live under /api/v1 and speak JSON. Errors use a single envelope:
//
//	{"error": {"code": "limit_exceeded", "message": "customer limit reached: 3 of 3"}}
//
// with codes bad_request (400), not_found (404), conflict (409),
// invalid_state (422), limit_exceeded (403) and internal (500). DELETE of a
// missing resource is not an error; it returns 200 with {"deleted": false}.
//
// Handlers stay thin: request decoding, validation of required fields, and
// status mapping. Business rules (quota checks, cascade deletes, duration
// derivation, dashboard aggregation) live in their own packages and are
// injected through Options.
package api
