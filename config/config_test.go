package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)

	// no explicit path: missing file falls back to defaults
	cwd, err := os.Getwd()
	assert.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	assert.NoError(t, os.Chdir(t.TempDir()))

	cfg, err = Load("")
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 4, cfg.MaxCompare)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.NotEmpty(t, cfg.Currencies)
	assert.Equal(t, "USD", cfg.Currencies[0].Code)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tourcompare.yaml")
	content := `
listen_addr: ":9090"
max_compare: 3
currencies:
  - code: NZD
    symbol: NZ$
    name: New Zealand Dollar
    rate_to_base: 1.0
  - code: FJD
    symbol: FJ$
    name: Fiji Dollar
    rate_to_base: 1.35
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 3, cfg.MaxCompare)
	assert.Len(t, cfg.Currencies, 2)

	registry, err := cfg.Registry()
	assert.NoError(t, err)
	assert.Equal(t, "NZD", string(registry.Base().Code))
}

func TestConfig_RegistryRejectsBadTable(t *testing.T) {
	cfg := &Config{
		Currencies: []CurrencyEntry{
			{Code: "EUR", Symbol: "€", RateToBase: 0.9},
		},
	}
	_, err := cfg.Registry()
	assert.Error(t, err)
}

func TestDefaultCurrencies(t *testing.T) {
	cfg := &Config{Currencies: defaultCurrencies}
	registry, err := cfg.Registry()
	assert.NoError(t, err)
	assert.Equal(t, "USD", string(registry.Base().Code))

	base := 0
	for _, c := range registry.List() {
		assert.Greater(t, float64(c.RateToBase), 0.0)
		if c.RateToBase == 1.0 {
			base++
		}
	}
	assert.Equal(t, 1, base)
}
