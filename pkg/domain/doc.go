// Package domain defines the entities, plan tiers, and error taxonomy shared
// across the Punchclock services.
//
// # Entities
//
// Users own organizations; an organization's customer and project limits are
// governed by the subscription of its owner. Time entries reference a user
// and optionally a customer and/or project.
//
// # Plan Tiers
//
// Free:
//   - 3 customers
//   - 3 projects
//
// Pro:
//   - 50 customers
//   - 100 projects
//
// Enterprise:
//   - Unlimited (limits stored as -1)
//
// # Error Taxonomy
//
// All failures surface as one of the typed errors in this package:
//
//	NotFoundError      referenced id absent
//	ConflictError      duplicate unique field (user email)
//	InvalidStateError  subscription not active
//	LimitExceededError plan quota reached
//
// Use the Is* helpers rather than type assertions; errors may be wrapped.
package domain
