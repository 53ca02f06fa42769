// Package cmd provides the CLI commands for the Shopify access layer.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mauricepattyn/craft-shopify/pkg/config"
	"github.com/mauricepattyn/craft-shopify/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "craft-shopify",
	Short: "Rate-limit-aware access layer for the Shopify Admin REST API",
	Long: `craft-shopify talks to the Shopify Admin REST API with built-in
rate limiting, retry handling, and cursor pagination.

Configuration comes from environment variables (a .env file in the
working directory is loaded when present):

  SHOPIFY_API_KEY           App API key (required for API access)
  SHOPIFY_API_SECRET        App API secret (required for API access)
  SHOPIFY_SHOP_DOMAIN       Shop domain, e.g. example.myshopify.com
  SHOPIFY_ACCESS_TOKEN      Admin API access token
  SHOPIFY_API_VERSION       API version (default: ` + config.DefaultAPIVersion + `)
  SHOPIFY_SESSION_DIR       Directory for session records (optional)
  FETCH_PRODUCT_METAFIELDS  Fetch product metafields during export
  FETCH_VARIANT_METAFIELDS  Fetch variant metafields during export
  LOG_LEVEL                 debug, info, warn, error (default: info)
  LOG_PRETTY                Human-readable console log output

Commands:
  serve       Start the HTTP server (health, metrics, product listing)
  export      Export the product catalog as JSON
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initRuntime)
}

func initRuntime() {
	// Optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.Level(cfg.LogLevel)
	logCfg.Pretty = cfg.LogPretty
	logging.Setup(logCfg)
}
