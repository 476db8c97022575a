// Package sql provides SQL-backed store implementations for MySQL and
// PostgreSQL.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	guard "github.com/khidma/guard"
)

// Dialect represents the SQL dialect.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// Config holds the configuration for the SQL store.
type Config struct {
	Dialect         Dialect
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns the default SQL store configuration.
func DefaultConfig() Config {
	return Config{
		Dialect:         DialectPostgres,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Store implements store.Store on a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New opens a database connection and creates a SQL store.
func New(cfg Config) (*Store, error) {
	db, err := sql.Open(string(cfg.Dialect), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithDB(db, cfg.Dialect), nil
}

// NewWithDB creates a SQL store around an existing connection.
func NewWithDB(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// rebind converts MySQL-style placeholders (?) to the appropriate
// format for the dialect. For PostgreSQL, converts ? to $1, $2, etc.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var result []byte
	paramIndex := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, []byte(fmt.Sprintf("%d", paramIndex))...)
			paramIndex++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}

// AddStrike inserts the strike and counts the owner's active strikes
// in the same transaction.
func (s *Store) AddStrike(ctx context.Context, strike guard.Strike) (int, error) {
	if strike.ID == "" {
		strike.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, guard.NewStoreError("begin", "chat_strikes", err)
	}
	defer tx.Rollback()

	insert := s.rebind(`INSERT INTO chat_strikes (id, owner_ref, violation_type, snippet, created_at, expires_at)
              VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insert,
		strike.ID, strike.OwnerRef, strike.ViolationType, strike.Snippet,
		strike.CreatedAt, strike.ExpiresAt); err != nil {
		return 0, guard.NewStoreError("insert", "chat_strikes", err)
	}

	count := 0
	query := s.rebind(`SELECT COUNT(*) FROM chat_strikes WHERE owner_ref = ? AND expires_at > ?`)
	if err := tx.QueryRowContext(ctx, query, strike.OwnerRef, strike.CreatedAt).Scan(&count); err != nil {
		return 0, guard.NewStoreError("count", "chat_strikes", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, guard.NewStoreError("commit", "chat_strikes", err)
	}

	return count, nil
}

// CountActiveStrikes counts non-expired strikes for the owner.
func (s *Store) CountActiveStrikes(ctx context.Context, ownerRef string, now time.Time) (int, error) {
	count := 0
	query := s.rebind(`SELECT COUNT(*) FROM chat_strikes WHERE owner_ref = ? AND expires_at > ?`)
	if err := s.db.QueryRowContext(ctx, query, ownerRef, now).Scan(&count); err != nil {
		return 0, guard.NewStoreError("count", "chat_strikes", err)
	}
	return count, nil
}

// GetSuspendedUntil returns the owner's suspension expiry, or nil when
// no suspension has been recorded.
func (s *Store) GetSuspendedUntil(ctx context.Context, ownerRef string) (*time.Time, error) {
	var until time.Time
	query := s.rebind(`SELECT suspended_until FROM chat_suspensions WHERE owner_ref = ?`)
	err := s.db.QueryRowContext(ctx, query, ownerRef).Scan(&until)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, guard.NewStoreError("get", "chat_suspensions", err)
	}
	return &until, nil
}

// SetSuspendedUntil upserts the owner's suspension expiry.
func (s *Store) SetSuspendedUntil(ctx context.Context, ownerRef string, until time.Time) error {
	now := time.Now().UTC()

	var query string
	switch s.dialect {
	case DialectPostgres:
		query = s.rebind(`INSERT INTO chat_suspensions (owner_ref, suspended_until, updated_at)
              VALUES (?, ?, ?)
              ON CONFLICT (owner_ref) DO UPDATE SET suspended_until = EXCLUDED.suspended_until, updated_at = EXCLUDED.updated_at`)
	default:
		query = `INSERT INTO chat_suspensions (owner_ref, suspended_until, updated_at)
              VALUES (?, ?, ?)
              ON DUPLICATE KEY UPDATE suspended_until = VALUES(suspended_until), updated_at = VALUES(updated_at)`
	}

	if _, err := s.db.ExecContext(ctx, query, ownerRef, until, now); err != nil {
		return guard.NewStoreError("upsert", "chat_suspensions", err)
	}
	return nil
}

// ClearStrikes deletes all strikes and any suspension for the owner.
func (s *Store) ClearStrikes(ctx context.Context, ownerRef string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return guard.NewStoreError("begin", "chat_strikes", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		s.rebind(`DELETE FROM chat_strikes WHERE owner_ref = ?`), ownerRef); err != nil {
		return guard.NewStoreError("delete", "chat_strikes", err)
	}
	if _, err := tx.ExecContext(ctx,
		s.rebind(`DELETE FROM chat_suspensions WHERE owner_ref = ?`), ownerRef); err != nil {
		return guard.NewStoreError("delete", "chat_suspensions", err)
	}

	if err := tx.Commit(); err != nil {
		return guard.NewStoreError("commit", "chat_strikes", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
