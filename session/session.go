// Package session composes the per-visitor state holders and their
// best-effort persistence.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"

	tours "go-tour-compare"
	"go-tour-compare/currency"
	"go-tour-compare/selection"
)

// DefaultTTL how long an untouched session is kept before it is
// dropped. Sessions are in-memory; only the currency choice survives
// eviction, through the Store.
const DefaultTTL = 30 * time.Minute

// Session the state owned by one visitor: the selected currency and
// the comparison selection. Consumers mutate both only through their
// documented operations.
type Session struct {
	ID       string
	Currency *currency.State
	Compare  *selection.Manager
}

// entry a live session plus the last time a request touched it
type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager hands out sessions keyed by opaque ids, creating them on
// demand. It restores a persisted currency choice through State.Set so
// restored values are validated like any other, and saves changes back
// to the store fire-and-forget. Sessions idle longer than the ttl are
// evicted, so the map stays bounded by active traffic rather than
// growing with every cookie-less request.
type Manager struct {
	registry   *currency.Registry
	store      Store
	maxCompare int
	ttl        time.Duration
	logger     log.Logger

	lock     sync.Mutex
	sessions map[string]*entry
}

// NewManager constructs a session Manager. A non-positive ttl falls
// back to DefaultTTL.
func NewManager(registry *currency.Registry, store Store, maxCompare int, ttl time.Duration, logger log.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Manager{
		registry:   registry,
		store:      store,
		maxCompare: maxCompare,
		ttl:        ttl,
		logger:     logger,
		sessions:   map[string]*entry{},
	}
}

// NewID mints a fresh session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Session returns the session for id, creating and restoring it on
// first use. The same id yields the same session until it expires;
// an expired id yields a fresh session. A session is never visible to
// callers before its persisted currency has been restored.
func (m *Manager) Session(ctx context.Context, id string) *Session {
	m.lock.Lock()
	if e, ok := m.sessions[id]; ok && time.Since(e.lastSeen) <= m.ttl {
		e.lastSeen = time.Now()
		m.lock.Unlock()
		return e.session
	}
	m.lock.Unlock()

	// Build and restore outside the lock; Load may do I/O.
	s := m.build(ctx, id)

	m.lock.Lock()
	defer m.lock.Unlock()

	// Another request with the same cookie may have built the session
	// while we were restoring; its copy is just as restored, use it.
	if e, ok := m.sessions[id]; ok && time.Since(e.lastSeen) <= m.ttl {
		e.lastSeen = time.Now()
		return e.session
	}

	m.sessions[id] = &entry{session: s, lastSeen: time.Now()}
	m.sweep()
	return s
}

// build constructs a session and restores its persisted currency. The
// session is not published until this returns, so no caller can observe
// pre-restore state or race an explicit Set against the restore.
func (m *Manager) build(ctx context.Context, id string) *Session {
	s := &Session{
		ID:       id,
		Currency: currency.NewState(m.registry),
		Compare:  selection.NewManager(m.maxCompare),
	}

	// Restoration funnels through Set, so a stale or mistyped persisted
	// code is rejected the same way any other unknown code is.
	if code, err := m.store.Load(ctx, id); err != nil {
		m.logger.Log("msg", "loading persisted currency failed", "session", id, "err", err)
	} else if code != "" {
		if err := s.Currency.Set(code); err != nil {
			m.logger.Log("msg", "ignoring persisted currency", "session", id, "code", code, "err", err)
		}
	}

	s.Currency.Subscribe(func(code tours.CurrencyCode) {
		// Persistence is fire-and-forget; the subscriber must not block
		// the mutation that triggered it.
		go func() {
			if err := m.store.Save(context.Background(), id, code); err != nil {
				m.logger.Log("msg", "saving currency failed", "session", id, "code", code, "err", err)
			}
		}()
	})

	return s
}

// sweep drops sessions idle longer than the ttl. Must be called with
// the lock held; runs on session creation, which is when the map grows.
func (m *Manager) sweep() {
	for id, e := range m.sessions {
		if time.Since(e.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
}
