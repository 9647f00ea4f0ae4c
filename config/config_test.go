package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var keys = []string{
	"MY_WALLET", "ETHERSCAN_API_KEY", "ETH_RPC_URL", "XRP_WALLET", "CMC_API_KEY",
	"GOLD_API_KEY", "GOLD_PRICE_GRAM", "CFO_DATA_FILE", "USE_MOCK_DATA", "REDIS_URL", "CACHE_TTL",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "ALERT_TO_EMAIL", "ALERT_FROM_EMAIL",
	"SMTP_USE_STARTTLS", "SMTP_USE_SSL", "BINANCE_API_KEY", "BINANCE_API_SECRET",
	"GEMINI_API_KEY", "GOOGLE_API_KEY",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "") // restores the original value on cleanup
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeEnv(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.File != DefaultDataFile {
		t.Errorf("Data.File = %q, want %q", cfg.Data.File, DefaultDataFile)
	}
	if cfg.Gold.PriceGram != DefaultGoldPrice {
		t.Errorf("Gold.PriceGram = %v, want %v", cfg.Gold.PriceGram, DefaultGoldPrice)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL, DefaultCacheTTL)
	}
	if cfg.Data.UseMock || cfg.SMTP.SSL || !cfg.SMTP.StartTLS {
		t.Errorf("booleans = mock %v, ssl %v, starttls %v, want false, false, true", cfg.Data.UseMock, cfg.SMTP.SSL, cfg.SMTP.StartTLS)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("USE_MOCK_DATA", "Yes")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_USE_STARTTLS", "off")
	t.Setenv("CMC_API_KEY", ` "abc" `)
	t.Setenv("GOOGLE_API_KEY", "g")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load(writeEnv(t, "XRP_WALLET=rXRP\nSMTP_USER=ignored@example.com\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Data.UseMock {
		t.Error("USE_MOCK_DATA=Yes is not true")
	}
	if cfg.SMTP.StartTLS {
		t.Error("SMTP_USE_STARTTLS=off is not false")
	}
	if cfg.SMTP.From != "me@example.com" {
		t.Errorf("SMTP.From = %q, want the SMTP user", cfg.SMTP.From)
	}
	if cfg.Quotes.CMCKey != "abc" {
		t.Errorf("Quotes.CMCKey = %q, want abc", cfg.Quotes.CMCKey)
	}
	if cfg.Gemini.APIKey != "g" {
		t.Errorf("Gemini.APIKey = %q, want GOOGLE_API_KEY", cfg.Gemini.APIKey)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if cfg.XRP.Wallet != "rXRP" {
		t.Errorf("XRP.Wallet = %q, want the value from the env file", cfg.XRP.Wallet)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"GOLD_PRICE_GRAM": "cheap",
		"CACHE_TTL":       "-1m",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(writeEnv(t, "")); err == nil {
				t.Errorf("Load() with %s=%q succeeded", key, value)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestIsTrue(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "yes", "On", " on "} {
		if !IsTrue(s) {
			t.Errorf("IsTrue(%q) = false", s)
		}
	}
	for _, s := range []string{"", "0", "false", "no", "y", "enabled"} {
		if IsTrue(s) {
			t.Errorf("IsTrue(%q) = true", s)
		}
	}
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}
