package currency

import (
	"errors"
	"math"
	"strconv"
	"testing"

	tours "go-tour-compare"
)

func TestFormatter_Format(t *testing.T) {
	registry, err := NewRegistry(testCurrencies())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	formatter := NewFormatter(registry)

	type args struct {
		amount tours.Amount
		code   tours.CurrencyCode
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr bool
	}{
		{
			"base currency",
			args{100, "USD"},
			"$100.00",
			false,
		},
		{
			"converted with half rate",
			args{100, "EUR"},
			"€50.00",
			false,
		},
		{
			"thousands separators",
			args{1234567.891, "USD"},
			"$1,234,567.89",
			false,
		},
		{
			"zero decimal currency",
			args{10, "JPY"},
			"¥1,500",
			false,
		},
		{
			"zero decimal currency rounds to whole units",
			args{0.01, "JPY"},
			"¥2",
			false,
		},
		{
			"zero amount",
			args{0, "USD"},
			"$0.00",
			false,
		},
		{
			"half up rounding",
			args{2.005, "USD"},
			"$2.01",
			false,
		},
		{
			"unknown currency",
			args{100, "XYZ"},
			"",
			true,
		},
		{
			"negative amount",
			args{-1, "USD"},
			"",
			true,
		},
		{
			"nan amount",
			args{tours.Amount(math.NaN()), "USD"},
			"",
			true,
		},
		{
			"infinite amount",
			args{tours.Amount(math.Inf(1)), "USD"},
			"",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatter.Format(tt.args.amount, tt.args.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("Format() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Format() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatter_Format_ErrorKinds(t *testing.T) {
	registry, err := NewRegistry(testCurrencies())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	formatter := NewFormatter(registry)

	_, err = formatter.Format(100, "XYZ")
	var unknown *tours.UnknownCurrencyError
	if !errors.As(err, &unknown) {
		t.Errorf("Format() with unknown code: error = %v, want UnknownCurrencyError", err)
	}

	_, err = formatter.Format(-5, "USD")
	var invalid *tours.InvalidAmountError
	if !errors.As(err, &invalid) {
		t.Errorf("Format() with negative amount: error = %v, want InvalidAmountError", err)
	}
}

func TestFormatter_Format_Monotonic(t *testing.T) {
	registry, err := NewRegistry(testCurrencies())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	formatter := NewFormatter(registry)

	// larger base amounts never format to smaller converted values
	prev := -1.0
	for amount := tours.Amount(0); amount < 100; amount += 0.37 {
		got, err := formatter.Format(amount, "EUR")
		if err != nil {
			t.Fatalf("Format(%v) error = %v", amount, err)
		}
		v := parseFormatted(t, got)
		if v < prev {
			t.Fatalf("Format(%v) = %v, smaller than previous %v", amount, v, prev)
		}
		prev = v
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00", "0.00"},
		{"999.99", "999.99"},
		{"1000.00", "1,000.00"},
		{"123456.78", "123,456.78"},
		{"1234567", "1,234,567"},
		{"12", "12"},
	}
	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// parseFormatted strips the symbol and separators of a formatted price
// so tests can compare magnitudes.
func parseFormatted(t *testing.T, s string) float64 {
	t.Helper()
	cleaned := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			cleaned = append(cleaned, c)
		}
	}
	v, err := strconv.ParseFloat(string(cleaned), 64)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return v
}
