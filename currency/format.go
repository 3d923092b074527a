package currency

import (
	"math"
	"strconv"
	"strings"

	tours "go-tour-compare"
)

// Formatter renders base-currency amounts as display strings in a
// target currency. Purely functional given the registry.
type Formatter struct {
	registry *Registry
}

// NewFormatter constructs a Formatter over a registry.
func NewFormatter(registry *Registry) *Formatter {
	return &Formatter{registry: registry}
}

// Format converts amount from the base currency into the target
// currency and renders it with the currency symbol prefixed, comma
// thousands separators and the currency's minor-unit precision
// (two decimals, none for zero-decimal currencies). Rounding is
// half-up on the converted amount.
func (f *Formatter) Format(amount tours.Amount, code tours.CurrencyCode) (string, error) {
	c, err := f.registry.Get(code)
	if err != nil {
		return "", err
	}

	v := float64(amount)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", &tours.InvalidAmountError{Amount: amount}
	}

	decimals := 2
	if c.ZeroDecimal {
		decimals = 0
	}

	converted := roundHalfUp(v*float64(c.RateToBase), decimals)
	return c.Symbol + groupThousands(strconv.FormatFloat(converted, 'f', decimals, 64)), nil
}

// roundHalfUp rounds v to the given number of decimals, ties away from zero.
func roundHalfUp(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Floor(v*scale+0.5) / scale
}

// groupThousands inserts comma separators into the integer part of an
// already formatted decimal string, e.g. "1234.50" -> "1,234.50".
func groupThousands(s string) string {
	intPart := s
	rest := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + rest
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + rest
}
