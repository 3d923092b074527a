// Package selection implements the bounded tour-comparison selection:
// an insertion-ordered set of tour ids with a hard upper bound.
package selection

import (
	"sync"

	tours "go-tour-compare"
)

const (
	// MinCompare the fewest tours a comparison makes sense for. A single
	// tour cannot be compared; this is a business rule, not a layout
	// accident.
	MinCompare = 2

	// DefaultMaxCompare the default upper bound. Comparison layouts are
	// not designed to scale beyond four columns.
	DefaultMaxCompare = 4
)

// Manager owns the comparison selection for one session. Consumers hold
// read/subscribe access only; all mutation goes through Add, Remove,
// Toggle and Clear. Safe for concurrent use.
type Manager struct {
	// lock serializes mutation and notification so two mutations never interleave
	lock sync.Mutex

	// ids the selected tours in insertion order, no duplicates
	ids []tours.TourID

	max int

	subscribers map[int]func([]tours.TourID)
	nextToken   int
}

// NewManager constructs an empty selection bounded at max entries.
// A non-positive max falls back to DefaultMaxCompare.
func NewManager(max int) *Manager {
	if max <= 0 {
		max = DefaultMaxCompare
	}
	return &Manager{
		max:         max,
		subscribers: map[int]func([]tours.TourID){},
	}
}

// Add appends id to the selection. A duplicate fails with
// AlreadySelectedError and a full selection fails with OverflowError;
// neither mutates the set, and the manager never evicts to make room.
func (m *Manager) Add(id tours.TourID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.indexOf(id) >= 0 {
		return &tours.AlreadySelectedError{ID: id}
	}
	if len(m.ids) == m.max {
		return &tours.OverflowError{Size: len(m.ids), Limit: m.max}
	}

	m.ids = append(m.ids, id)
	m.notify()
	return nil
}

// Remove deletes id from the selection, preserving the order of the
// remaining entries. Fails with NotSelectedError when absent.
func (m *Manager) Remove(id tours.TourID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return &tours.NotSelectedError{ID: id}
	}

	m.ids = append(m.ids[:i], m.ids[i+1:]...)
	m.notify()
	return nil
}

// Toggle removes id when present, otherwise attempts an Add. An Add
// that fails on a full selection surfaces the same OverflowError Add
// would return; callers needing the add/remove distinction should call
// those directly.
func (m *Manager) Toggle(id tours.TourID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if i := m.indexOf(id); i >= 0 {
		m.ids = append(m.ids[:i], m.ids[i+1:]...)
		m.notify()
		return nil
	}
	if len(m.ids) == m.max {
		return &tours.OverflowError{Size: len(m.ids), Limit: m.max}
	}

	m.ids = append(m.ids, id)
	m.notify()
	return nil
}

// Clear empties the selection. Always succeeds; subscribers are only
// notified when there was something to clear.
func (m *Manager) Clear() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if len(m.ids) == 0 {
		return
	}
	m.ids = nil
	m.notify()
}

// Contains reports whether id is selected.
func (m *Manager) Contains(id tours.TourID) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.indexOf(id) >= 0
}

// List returns the selected ids in insertion order. The result is a copy.
func (m *Manager) List() []tours.TourID {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.snapshot()
}

// Count returns the number of selected ids.
func (m *Manager) Count() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.ids)
}

// CanCompare reports whether the selection is within the comparable
// range, i.e. holds between MinCompare and the configured maximum.
func (m *Manager) CanCompare() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.ids) >= MinCompare && len(m.ids) <= m.max
}

// Max returns the configured upper bound.
func (m *Manager) Max() int {
	return m.max
}

// Subscribe registers a callback invoked with a snapshot of the
// selection after every successful mutation. The returned function
// removes the subscription; calling it twice is a no-op. Callbacks run
// with the manager lock held and must not call back into the Manager.
// Notification order across subscribers is unspecified.
func (m *Manager) Subscribe(fn func([]tours.TourID)) func() {
	m.lock.Lock()
	defer m.lock.Unlock()

	token := m.nextToken
	m.nextToken++
	m.subscribers[token] = fn

	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.subscribers, token)
	}
}

// indexOf linear scan; the selection never exceeds a handful of entries.
func (m *Manager) indexOf(id tours.TourID) int {
	for i, existing := range m.ids {
		if existing == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshot() []tours.TourID {
	out := make([]tours.TourID, len(m.ids))
	copy(out, m.ids)
	return out
}

// notify must be called with the lock held.
func (m *Manager) notify() {
	for _, fn := range m.subscribers {
		fn(m.snapshot())
	}
}

// Dedup removes duplicate ids preserving first-seen order. Used on
// untrusted id lists (e.g. from a URL) before anything is fetched.
func Dedup(ids []tours.TourID) []tours.TourID {
	seen := make(map[tours.TourID]struct{}, len(ids))
	out := make([]tours.TourID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
