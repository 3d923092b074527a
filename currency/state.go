package currency

import (
	"sync"

	tours "go-tour-compare"
)

// State holds the currency selected for one session. All mutation goes
// through Set, which is what keeps the "current is always a registry
// key" invariant enforceable. Safe for concurrent use.
type State struct {
	registry *Registry

	// lock serializes mutation and notification so two Sets never interleave
	lock sync.Mutex

	current tours.CurrencyCode

	subscribers map[int]func(tours.CurrencyCode)
	nextToken   int
}

// NewState constructs a State starting on the registry's base currency.
func NewState(registry *Registry) *State {
	return &State{
		registry:    registry,
		current:     registry.Base().Code,
		subscribers: map[int]func(tours.CurrencyCode){},
	}
}

// Current returns the active currency code. Never fails.
func (s *State) Current() tours.CurrencyCode {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current
}

// Set replaces the active currency and notifies all subscribers
// synchronously before returning. An unknown code leaves the state
// untouched and no subscriber is called. Restoring a persisted choice
// goes through here too, so it is validated identically.
func (s *State) Set(code tours.CurrencyCode) error {
	if _, err := s.registry.Get(code); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.current = code
	for _, notify := range s.subscribers {
		notify(code)
	}
	return nil
}

// Subscribe registers a callback invoked on every successful Set. The
// returned function removes the subscription; calling it twice is a
// no-op. Callbacks run with the state lock held and must not call back
// into the State. Notification order across subscribers is unspecified.
func (s *State) Subscribe(fn func(tours.CurrencyCode)) func() {
	s.lock.Lock()
	defer s.lock.Unlock()

	token := s.nextToken
	s.nextToken++
	s.subscribers[token] = fn

	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.subscribers, token)
	}
}
