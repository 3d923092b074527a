package tours

import (
	"errors"
	"fmt"
)

// ErrTourNotFound reported by the catalog when an id does not resolve.
var ErrTourNotFound = errors.New("tour not found")

// UnknownCurrencyError reported when a code is not a registry key.
// Indicates a configuration bug rather than a user error.
type UnknownCurrencyError struct {
	Code CurrencyCode
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency: %v", e.Code)
}

// InvalidAmountError reported for negative or non-finite price inputs.
// Rejected rather than clamped: a miscomputed price is a business defect.
type InvalidAmountError struct {
	Amount Amount
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %v", e.Amount)
}

// OverflowError reported by Add when the comparison selection is at
// capacity. The selection is left unchanged; the caller decides what to
// evict, the manager never does.
type OverflowError struct {
	Size  int
	Limit int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("comparison selection full: %d of %d", e.Size, e.Limit)
}

// AlreadySelectedError reported by Add for an id already in the selection.
type AlreadySelectedError struct {
	ID TourID
}

func (e *AlreadySelectedError) Error() string {
	return fmt.Sprintf("tour already selected: %v", e.ID)
}

// NotSelectedError reported by Remove for an id not in the selection.
type NotSelectedError struct {
	ID TourID
}

func (e *NotSelectedError) Error() string {
	return fmt.Sprintf("tour not selected: %v", e.ID)
}
