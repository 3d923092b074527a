// Package currency implements the supported-currency registry, price
// formatting and the per-session currency selection state.
package currency

import (
	"fmt"
	"math"

	tours "go-tour-compare"
)

// Registry the static table of supported currencies. Built once at
// startup, read-only afterwards.
type Registry struct {
	// ordered currencies in fixed display order
	ordered []tours.Currency

	// index maps codes to entries for lookups
	index map[tours.CurrencyCode]tours.Currency

	// base the entry with RateToBase == 1.0
	base tours.Currency
}

// NewRegistry builds a registry from the configured currency table.
// Codes must be unique, every rate must be a finite positive number and
// exactly one entry must be the base (rate 1.0).
func NewRegistry(currencies []tours.Currency) (*Registry, error) {
	if len(currencies) == 0 {
		return nil, fmt.Errorf("currency registry must not be empty")
	}

	r := &Registry{
		ordered: make([]tours.Currency, 0, len(currencies)),
		index:   make(map[tours.CurrencyCode]tours.Currency, len(currencies)),
	}

	baseSeen := false
	for _, c := range currencies {
		if c.Code == "" {
			return nil, fmt.Errorf("currency with empty code")
		}
		if _, ok := r.index[c.Code]; ok {
			return nil, fmt.Errorf("duplicate currency code: %v", c.Code)
		}
		rate := float64(c.RateToBase)
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("currency %v: rate must be a positive finite number, got %v", c.Code, c.RateToBase)
		}
		if c.RateToBase == 1.0 {
			if baseSeen {
				return nil, fmt.Errorf("more than one base currency: %v and %v", r.base.Code, c.Code)
			}
			baseSeen = true
			r.base = c
		}
		r.ordered = append(r.ordered, c)
		r.index[c.Code] = c
	}

	if !baseSeen {
		return nil, fmt.Errorf("no base currency (rate 1.0) configured")
	}

	return r, nil
}

// List returns all currencies in display order. The result is a copy,
// deterministic across calls.
func (r *Registry) List() []tours.Currency {
	out := make([]tours.Currency, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get looks up a currency by code.
func (r *Registry) Get(code tours.CurrencyCode) (tours.Currency, error) {
	c, ok := r.index[code]
	if !ok {
		return tours.Currency{}, &tours.UnknownCurrencyError{Code: code}
	}
	return c, nil
}

// Base returns the base currency.
func (r *Registry) Base() tours.Currency {
	return r.base
}
