package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VATRate.Equal(decimal.RequireFromString("1.20")))
	assert.Equal(t, 5.0, cfg.RowErrorThreshold)
	assert.True(t, cfg.BalanceTolerance.Equal(decimal.RequireFromString("0.01")))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RulesPath)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("VAT_RATE", "1.10")
	t.Setenv("ROW_ERROR_THRESHOLD_PCT", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VATRate.Equal(decimal.RequireFromString("1.10")))
	assert.Equal(t, 10.0, cfg.RowErrorThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("VAT_RATE", "not-a-number")
	t.Setenv("ROW_ERROR_THRESHOLD_PCT", "250")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.VATRate.Equal(decimal.RequireFromString("1.20")))
	assert.Equal(t, 5.0, cfg.RowErrorThreshold)
}
