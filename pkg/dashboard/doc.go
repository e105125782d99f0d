// Package dashboard aggregates time-tracking statistics for a user within
// an organization.
//
// # Windows
//
// Totals cover today, this week and this month, each measured from the
// window start to the moment of the call. Weeks start on Sunday. Only
// entries whose start_time falls inside the window and whose duration is
// non-null contribute to a total; an open timer is excluded from all sums
// but still appears among the recent entries.
//
// # Rankings
//
// Top customers and projects are ranked by minutes tracked this month,
// capped at five, ties broken by id ascending.
//
// # Caching
//
// Responses are cached (local LRU plus Redis) under a per-user-per-org key
// with a short TTL. Staleness up to the TTL is accepted.
package dashboard
