// Package config loads the service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	tours "go-tour-compare"
	"go-tour-compare/currency"
)

// CurrencyEntry one row of the configured currency table
type CurrencyEntry struct {
	Code        string  `mapstructure:"code"`
	Symbol      string  `mapstructure:"symbol"`
	Name        string  `mapstructure:"name"`
	RateToBase  float64 `mapstructure:"rate_to_base"`
	ZeroDecimal bool    `mapstructure:"zero_decimal"`
}

// Config the full service configuration
type Config struct {
	ListenAddr     string          `mapstructure:"listen_addr"`
	CatalogURL     string          `mapstructure:"catalog_url"`
	CatalogRefresh time.Duration   `mapstructure:"catalog_refresh"`
	StorePath      string          `mapstructure:"store_path"`
	ListingURL     string          `mapstructure:"listing_url"`
	DefaultLocale  string          `mapstructure:"default_locale"`
	MaxCompare     int             `mapstructure:"max_compare"`
	SessionTTL     time.Duration   `mapstructure:"session_ttl"`
	Currencies     []CurrencyEntry `mapstructure:"currencies"`
}

// defaultCurrencies the table shipped when no config file provides one.
// USD is the base; rates are display conversion rates, not market data.
var defaultCurrencies = []CurrencyEntry{
	{Code: "USD", Symbol: "$", Name: "US Dollar", RateToBase: 1.0},
	{Code: "EUR", Symbol: "€", Name: "Euro", RateToBase: 0.92},
	{Code: "GBP", Symbol: "£", Name: "Pound Sterling", RateToBase: 0.79},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", RateToBase: 1.52},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", RateToBase: 147.0, ZeroDecimal: true},
}

// Load reads the configuration from path, or from ./tourcompare.yaml
// when path is empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("catalog_url", "http://localhost:1337/api")
	v.SetDefault("catalog_refresh", time.Minute)
	v.SetDefault("listing_url", "/tours")
	v.SetDefault("default_locale", "en")
	v.SetDefault("max_compare", 4)
	v.SetDefault("session_ttl", 30*time.Minute)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tourcompare")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}

	if len(cfg.Currencies) == 0 {
		cfg.Currencies = defaultCurrencies
	}

	return &cfg, nil
}

// Registry builds the currency registry from the configured table.
func (c *Config) Registry() (*currency.Registry, error) {
	table := make([]tours.Currency, 0, len(c.Currencies))
	for _, entry := range c.Currencies {
		table = append(table, tours.Currency{
			Code:        tours.CurrencyCode(entry.Code),
			Symbol:      entry.Symbol,
			Name:        entry.Name,
			RateToBase:  tours.Rate(entry.RateToBase),
			ZeroDecimal: entry.ZeroDecimal,
		})
	}
	return currency.NewRegistry(table)
}
