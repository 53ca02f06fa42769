// Package config loads the access layer's settings from environment
// variables and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration surface of the access layer.
//
// APIKey, APISecret, Shop and AccessToken may contain $ENV_VAR references;
// they are resolved when the session is first built, not at load time, so
// late-bound environments keep working.
type Config struct {
	// Shopify credentials. Absent API key/secret is a valid state: the
	// session manager reports "not configured" instead of failing.
	APIKey      string
	APISecret   string
	Shop        string
	AccessToken string

	// APIVersion pins the Admin REST API version used in request paths.
	APIVersion string

	// SessionDir is a writable directory for session bookkeeping records.
	SessionDir string

	// Feature flags gating metafield sub-resource fetches. When disabled
	// the accessor short-circuits to an empty result without any request.
	FetchProductMetafields bool
	FetchVariantMetafields bool

	LogLevel  string
	LogPretty bool

	// Port for the serve command.
	Port string
}

// DefaultAPIVersion is used when SHOPIFY_API_VERSION is not set.
const DefaultAPIVersion = "2024-01"

// Load reads configuration from the environment, with an optional .env
// file in the working directory or its parents. Missing credentials are
// not an error here; see Config.
func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("SHOPIFY_API_VERSION", DefaultAPIVersion)
	viper.SetDefault("SHOPIFY_SESSION_DIR", ".shopify_sessions")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", "8080")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; env vars cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		APIKey:                 strings.TrimSpace(getEnvOrViper("SHOPIFY_API_KEY", "")),
		APISecret:              strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
		Shop:                   NormalizeShop(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
		AccessToken:            strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
		APIVersion:             getEnvOrViper("SHOPIFY_API_VERSION", DefaultAPIVersion),
		SessionDir:             getEnvOrViper("SHOPIFY_SESSION_DIR", ".shopify_sessions"),
		FetchProductMetafields: getBoolEnvOrViper("FETCH_PRODUCT_METAFIELDS"),
		FetchVariantMetafields: getBoolEnvOrViper("FETCH_VARIANT_METAFIELDS"),
		LogLevel:               getEnvOrViper("LOG_LEVEL", "info"),
		LogPretty:              getBoolEnvOrViper("LOG_PRETTY"),
		Port:                   getEnvOrViper("PORT", "8080"),
	}

	return cfg, nil
}

// NormalizeShop strips the scheme and trailing slashes from a shop
// hostname so "https://x.myshopify.com/" and "x.myshopify.com" are
// equivalent in configuration.
func NormalizeShop(shop string) string {
	shop = strings.TrimSpace(shop)
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimSuffix(shop, "/")
}

func getEnvOrViper(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnvOrViper(key string) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return viper.GetBool(key)
}
