// Package quota enforces per-plan resource limits at creation time.
//
// Each organization is governed by its owner's subscription. A creation is
// allowed when the subscription is active and the current resource count is
// below the plan maximum; a maximum of -1 means unlimited. Violations
// surface as typed domain errors so the API layer can map them to precise
// status codes.
package quota
