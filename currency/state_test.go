package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tours "go-tour-compare"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	registry, err := NewRegistry(testCurrencies())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return NewState(registry)
}

func TestState_DefaultsToBase(t *testing.T) {
	state := newTestState(t)
	assert.Equal(t, tours.CurrencyCode("USD"), state.Current())
}

func TestState_Set(t *testing.T) {
	state := newTestState(t)

	var notified []tours.CurrencyCode
	state.Subscribe(func(code tours.CurrencyCode) {
		notified = append(notified, code)
	})

	err := state.Set("EUR")
	assert.NoError(t, err)
	assert.Equal(t, tours.CurrencyCode("EUR"), state.Current())
	assert.Equal(t, []tours.CurrencyCode{"EUR"}, notified)
}

func TestState_SetUnknown(t *testing.T) {
	state := newTestState(t)

	notifications := 0
	state.Subscribe(func(tours.CurrencyCode) {
		notifications++
	})

	err := state.Set("XYZ")
	assert.Error(t, err)
	var unknown *tours.UnknownCurrencyError
	assert.ErrorAs(t, err, &unknown)

	// failed set leaves state untouched and subscribers quiet
	assert.Equal(t, tours.CurrencyCode("USD"), state.Current())
	assert.Equal(t, 0, notifications)
}

func TestState_MultipleSubscribers(t *testing.T) {
	state := newTestState(t)

	first, second := 0, 0
	state.Subscribe(func(tours.CurrencyCode) { first++ })
	state.Subscribe(func(tours.CurrencyCode) { second++ })

	assert.NoError(t, state.Set("EUR"))
	assert.NoError(t, state.Set("JPY"))

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestState_Unsubscribe(t *testing.T) {
	state := newTestState(t)

	notifications := 0
	unsubscribe := state.Subscribe(func(tours.CurrencyCode) {
		notifications++
	})

	assert.NoError(t, state.Set("EUR"))
	assert.Equal(t, 1, notifications)

	unsubscribe()
	assert.NoError(t, state.Set("JPY"))
	assert.Equal(t, 1, notifications)

	// unsubscribing twice is a no-op
	unsubscribe()
	assert.NoError(t, state.Set("USD"))
	assert.Equal(t, 1, notifications)
}
