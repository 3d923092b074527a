// Package tours holds the domain types shared by the pricing and
// comparison packages.
package tours

// CurrencyCode a currency code (ISO-4217 style), the registry key
type CurrencyCode string

// Amount a monetary amount expressed in the base currency... which should be a float...
type Amount float64

// Rate a conversion rate relative to the base currency
type Rate float64

// Currency one entry of the currency registry. Never mutated after
// the registry is built.
type Currency struct {
	// Code unique registry key
	Code CurrencyCode

	// Symbol prefixed to formatted amounts, e.g. "€"
	Symbol string

	// Name display name, e.g. "Euro"
	Name string

	// RateToBase multiplier applied to base-currency amounts. The base
	// currency itself carries 1.0.
	RateToBase Rate

	// ZeroDecimal true for currencies conventionally displayed without
	// minor units (e.g. JPY)
	ZeroDecimal bool
}

// TourID identifies a tour in the catalog. Opaque to this module.
type TourID string

// Tour the minimal tour record the comparison surface consumes
type Tour struct {
	ID          TourID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Days        int    `json:"days"`
	BasePrice   Amount `json:"basePrice"`
}
