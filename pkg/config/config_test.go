package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIVersion != DefaultAPIVersion {
		t.Errorf("APIVersion = %q, want %q", cfg.APIVersion, DefaultAPIVersion)
	}
	if cfg.SessionDir == "" {
		t.Error("SessionDir should have a default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SHOPIFY_API_KEY", "key123")
	t.Setenv("SHOPIFY_API_SECRET", "secret456")
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "https://example.myshopify.com/")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_token")
	t.Setenv("SHOPIFY_API_VERSION", "2023-10")
	t.Setenv("FETCH_PRODUCT_METAFIELDS", "true")
	t.Setenv("FETCH_VARIANT_METAFIELDS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIKey != "key123" {
		t.Errorf("APIKey = %q, want key123", cfg.APIKey)
	}
	if cfg.APISecret != "secret456" {
		t.Errorf("APISecret = %q, want secret456", cfg.APISecret)
	}
	if cfg.Shop != "example.myshopify.com" {
		t.Errorf("Shop = %q, want normalized hostname", cfg.Shop)
	}
	if cfg.AccessToken != "shpat_token" {
		t.Errorf("AccessToken = %q, want shpat_token", cfg.AccessToken)
	}
	if cfg.APIVersion != "2023-10" {
		t.Errorf("APIVersion = %q, want 2023-10", cfg.APIVersion)
	}
	if !cfg.FetchProductMetafields {
		t.Error("FetchProductMetafields should be true")
	}
	if cfg.FetchVariantMetafields {
		t.Error("FetchVariantMetafields should be false")
	}
}

func TestLoad_MissingCredentialsIsNotAnError(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	// Absent credentials surface later as an absent session, never as a
	// load failure.
	_ = cfg
}

func TestNormalizeShop(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"example.myshopify.com", "example.myshopify.com"},
		{"https://example.myshopify.com", "example.myshopify.com"},
		{"http://example.myshopify.com/", "example.myshopify.com"},
		{"  example.myshopify.com  ", "example.myshopify.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeShop(tt.input); got != tt.expected {
				t.Errorf("NormalizeShop(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
