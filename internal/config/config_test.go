package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Currency = "NZD"
	cfg.Chart = ChartConfig{Width: 900, Height: 500}

	path := filepath.Join(t.TempDir(), "mustaching.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.DateFormat, got.DateFormat)
	assert.Equal(t, cfg.Decimals, got.Decimals)
	assert.Equal(t, cfg.Chart.Width, got.Chart.Width)
	assert.Equal(t, cfg.Chart.Height, got.Chart.Height)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, int32(2), cfg.Decimals)
	assert.Empty(t, cfg.Currency)
	assert.Zero(t, cfg.Chart.Width)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	cfg.Currency = "EUR"
	path := filepath.Join(t.TempDir(), "mustaching.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: EUR")
	assert.Contains(t, contents, `date_format: "2006-01-02"`)
	assert.Contains(t, contents, "decimals: 2")
}
