package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	tours "go-tour-compare"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_currency (
	session_id TEXT PRIMARY KEY,
	code       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLStore a Store backed by a sqlite database.
type SQLStore struct {
	db *sqlx.DB
}

// OpenSQLStore opens (creating if necessary) the sqlite database at
// path and bootstraps the schema. Use ":memory:" for an ephemeral store.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping session store schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Load returns the persisted currency for a session, "" when absent.
func (s *SQLStore) Load(ctx context.Context, sessionID string) (tours.CurrencyCode, error) {
	var code string
	err := s.db.GetContext(ctx, &code,
		`SELECT code FROM session_currency WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session currency: %w", err)
	}
	return tours.CurrencyCode(code), nil
}

// Save upserts the persisted currency for a session.
func (s *SQLStore) Save(ctx context.Context, sessionID string, code tours.CurrencyCode) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_currency (session_id, code) VALUES (?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET code = excluded.code, updated_at = CURRENT_TIMESTAMP`,
		sessionID, string(code))
	if err != nil {
		return fmt.Errorf("saving session currency: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
