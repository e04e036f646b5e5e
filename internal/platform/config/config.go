package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	VATRate           decimal.Decimal
	RowErrorThreshold float64
	BalanceTolerance  decimal.Decimal
	RulesPath         string
	LogLevel          string
	IsProduction      bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("VAT_RATE", "1.20")
	viper.SetDefault("ROW_ERROR_THRESHOLD_PCT", 5.0)
	viper.SetDefault("BALANCE_TOLERANCE", "0.01")
	viper.SetDefault("RULES_PATH", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("IS_PRODUCTION", false)

	viper.AutomaticEnv()

	cfg := &Config{
		RowErrorThreshold: viper.GetFloat64("ROW_ERROR_THRESHOLD_PCT"),
		RulesPath:         viper.GetString("RULES_PATH"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
	}

	vatRate, err := decimal.NewFromString(viper.GetString("VAT_RATE"))
	if err != nil {
		vatRate = decimal.RequireFromString("1.20")
		log.Printf("Warning: Invalid value for VAT_RATE ('%s'). Defaulting to %s.\n", viper.GetString("VAT_RATE"), vatRate.String())
	}
	cfg.VATRate = vatRate

	tolerance, err := decimal.NewFromString(viper.GetString("BALANCE_TOLERANCE"))
	if err != nil {
		tolerance = decimal.RequireFromString("0.01")
		log.Printf("Warning: Invalid value for BALANCE_TOLERANCE ('%s'). Defaulting to %s.\n", viper.GetString("BALANCE_TOLERANCE"), tolerance.String())
	}
	cfg.BalanceTolerance = tolerance

	if cfg.RowErrorThreshold <= 0 || cfg.RowErrorThreshold > 100 {
		log.Printf("Warning: ROW_ERROR_THRESHOLD_PCT out of range (%v). Defaulting to 5.\n", cfg.RowErrorThreshold)
		cfg.RowErrorThreshold = 5.0
	}

	return cfg, nil
}
