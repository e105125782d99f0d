package store

import (
	"context"
	"fmt"
)

// migrations holds the idempotent schema statements run at boot. The DDL is
// restricted to the dialect subset shared by PostgreSQL and SQLite.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		plan TEXT NOT NULL,
		status TEXT NOT NULL,
		max_customers INTEGER NOT NULL,
		max_projects INTEGER NOT NULL,
		expires_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address TEXT,
		organization_id TEXT NOT NULL REFERENCES organizations(id),
		created_by TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		organization_id TEXT NOT NULL REFERENCES organizations(id),
		created_by TEXT NOT NULL REFERENCES users(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		customer_id TEXT,
		project_id TEXT,
		description TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP,
		duration_minutes INTEGER,
		tags TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_organizations_owner ON organizations(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_org ON customers(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_org ON projects(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_customer ON projects(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_user_start ON time_entries(user_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_customer ON time_entries(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project_id)`,
}

// Migrate applies the schema. Statements are idempotent so Migrate is safe to
// run on every boot.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i, err)
		}
	}
	return nil
}
