package currency

import (
	tours "go-tour-compare"
)

// Service interface for currency listing and price formatting
type Service interface {
	Currencies() []tours.Currency
	Format(amount tours.Amount, code tours.CurrencyCode) (string, error)
}

// service Service over a registry and formatter
type service struct {
	registry  *Registry
	formatter *Formatter
}

// NewService constructs a valid Service
func NewService(registry *Registry) Service {
	return &service{
		registry:  registry,
		formatter: NewFormatter(registry),
	}
}

// Currencies returns the registry in display order.
func (s *service) Currencies() []tours.Currency {
	return s.registry.List()
}

// Format renders a base-currency amount in the target currency.
func (s *service) Format(amount tours.Amount, code tours.CurrencyCode) (string, error) {
	return s.formatter.Format(amount, code)
}
