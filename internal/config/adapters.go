// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/cashly/cashly/internal/common"
	"github.com/cashly/cashly/internal/plaid"
)

// LoadPlaidConfig loads Plaid configuration from Viper and environment
// variables. Precedence:
// 1. Viper configuration (from config file or CASHLY_ env vars)
// 2. Direct environment variables (PLAID_*)
// 3. Default values
func LoadPlaidConfig() (plaid.Config, error) {
	config := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
	}

	if config.ClientID == "" {
		config.ClientID = os.Getenv("PLAID_CLIENT_ID")
	}
	if config.Secret == "" {
		config.Secret = os.Getenv("PLAID_SECRET")
	}
	if config.Environment == "" {
		config.Environment = os.Getenv("PLAID_ENV")
	}
	if config.Environment == "" {
		config.Environment = "sandbox"
	}

	if err := config.Validate(); err != nil {
		return plaid.Config{}, err
	}
	return config, nil
}

// ExtractionServiceURL returns the base URL of the statement-extraction
// service.
func ExtractionServiceURL() (string, error) {
	url := viper.GetString("docproc.url")
	if url == "" {
		url = os.Getenv("CASHLY_DOCPROC_URL")
	}
	if url == "" {
		return "", fmt.Errorf("%w: docproc.url", common.ErrMissingConfig)
	}
	return url, nil
}

// AlphaVantageKey returns the market data API key.
func AlphaVantageKey() (string, error) {
	key := viper.GetString("stocks.api_key")
	if key == "" {
		key = os.Getenv("ALPHA_VANTAGE_API_KEY")
	}
	if key == "" {
		return "", fmt.Errorf("%w: stocks.api_key", common.ErrMissingConfig)
	}
	return key, nil
}
