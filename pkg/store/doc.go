// Package store provides relational persistence for Punchclock entities.
//
// # Overview
//
// Every entity type gets the same operation set: create, get by id (nil when
// absent, never an error), list, partial update (typed error when absent),
// and delete (reports whether a row was removed, never an error for a
// missing id). Partial updates use domain.Optional fields so an omitted
// field is left untouched while an explicit null clears a nullable column.
//
// # Drivers
//
// Production runs on PostgreSQL (lib/pq); dev mode and tests run on SQLite
// (mattn/go-sqlite3). The SQL stays portable across both: ids (uuid v4) and
// UTC timestamps are generated in Go, tags are JSON-encoded text, and
// placeholders are ordinal $n in strictly increasing first-occurrence order.
//
// # Transactions
//
// Multi-step write sequences (signup, cascading deletes) use BeginTx plus
// WithTx to run the same operations inside one transaction:
//
//	tx, err := st.BeginTx(ctx)
//	defer tx.Rollback()
//	txStore := st.WithTx(tx)
//	// ... txStore.CreateUser, txStore.CreateOrganization ...
//	return tx.Commit()
package store
