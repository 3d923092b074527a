package session

import (
	"context"

	tours "go-tour-compare"
)

// Store persists a session's currency choice. Saving is best-effort:
// the hosting application logs failures but never surfaces them as
// core errors.
type Store interface {
	// Load returns the persisted currency code for a session, or ""
	// when nothing was persisted.
	Load(ctx context.Context, sessionID string) (tours.CurrencyCode, error)

	// Save persists the currency code for a session.
	Save(ctx context.Context, sessionID string, code tours.CurrencyCode) error
}

// NopStore a Store that persists nothing. Used when no store path is
// configured and in tests.
type NopStore struct{}

func (NopStore) Load(_ context.Context, _ string) (tours.CurrencyCode, error) {
	return "", nil
}

func (NopStore) Save(_ context.Context, _ string, _ tours.CurrencyCode) error {
	return nil
}
