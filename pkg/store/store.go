package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx so every entity operation
// can run standalone or inside a caller-managed transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides relational persistence for all Punchclock entities. The SQL
// is kept portable between PostgreSQL (production) and SQLite (dev mode and
// tests): ids and timestamps are generated in Go, tags are JSON-encoded text,
// and placeholders are ordinal $n in first-occurrence order.
type Store struct {
	db  *sql.DB
	q   querier
	now func() time.Time
}

// Config holds database connection configuration
type Config struct {
	Driver      string // "postgres" or "sqlite3"
	URL         string
	MaxConns    int
	MinConns    int
	Timeout     time.Duration
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Driver:      "postgres",
		MaxConns:    20,
		MinConns:    2,
		Timeout:     10 * time.Second,
		MaxLifetime: 30 * time.Minute,
		MaxIdleTime: 5 * time.Minute,
	}
}

// Open connects to the configured database, configures the pool, and pings it.
func Open(config Config) (*Store, error) {
	db, err := sql.Open(config.Driver, config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxConns)
	db.SetMaxIdleConns(config.MinConns)
	db.SetConnMaxLifetime(config.MaxLifetime)
	db.SetConnMaxIdleTime(config.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db), nil
}

// New wraps an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{
		db:  db,
		q:   db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// DB exposes the underlying handle for health checks and aggregation queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginTx starts a transaction for multi-step write sequences (signup,
// cascading deletes).
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// WithTx returns a Store whose operations run inside the given transaction.
func (s *Store) WithTx(tx *sql.Tx) *Store {
	return &Store{db: s.db, q: tx, now: s.now}
}

// isUniqueViolation detects unique-constraint errors from both supported
// drivers. lib/pq reports SQLSTATE 23505; mattn/go-sqlite3 reports a
// "UNIQUE constraint failed" message.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// encodeTags marshals a tag list for storage, normalizing nil to [].
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	return data, nil
}

// decodeTags unmarshals a stored tag list, normalizing null to [].
func decodeTags(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
