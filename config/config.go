// Package config reads the cfo configuration from the environment and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Ethereum EthereumConfig
	XRP      XRPConfig
	Quotes   QuotesConfig
	Gold     GoldConfig
	Data     DataConfig
	Cache    CacheConfig
	SMTP     SMTPConfig
	Binance  BinanceConfig
	Gemini   GeminiConfig
}

// EthereumConfig holds the wallet and the ways to read its balances.
// The same wallet is used for the Hyperliquid account.
type EthereumConfig struct {
	Wallet       string
	EtherscanKey string
	RPCURL       string // when set, balances are read from this node instead of etherscan.
}

type XRPConfig struct {
	Wallet string
}

type QuotesConfig struct {
	CMCKey string
}

// GoldConfig holds the gold price settings.
type GoldConfig struct {
	APIKey    string  // goldapi.io key, the static price is used without it.
	PriceGram float64 // USD
}

// DataConfig holds the history settings.
type DataConfig struct {
	File    string
	UseMock bool
}

// CacheConfig holds the optional redis cache of http responses.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// SMTPConfig holds the alert mail settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
	From     string // defaults to User
	StartTLS bool
	SSL      bool
}

type BinanceConfig struct {
	APIKey string
	Secret string
}

type GeminiConfig struct {
	APIKey string
}

const (
	DefaultDataFile  = "static/data_crypto.csv"
	DefaultGoldPrice = 69.28
	DefaultCacheTTL  = 5 * time.Minute
)

// Load reads files, or ".env" if none, into the environment then populates
// the Config. A missing default ".env" is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		// the environment may be provided directly.
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("cannot load env file: %w", err)
	}

	cfg := &Config{
		Ethereum: EthereumConfig{
			Wallet:       getEnv("MY_WALLET", ""),
			EtherscanKey: sanitizeCredential(getEnv("ETHERSCAN_API_KEY", "")),
			RPCURL:       getEnv("ETH_RPC_URL", ""),
		},
		XRP: XRPConfig{
			Wallet: getEnv("XRP_WALLET", ""),
		},
		Quotes: QuotesConfig{
			CMCKey: sanitizeCredential(getEnv("CMC_API_KEY", "")),
		},
		Gold: GoldConfig{
			APIKey: sanitizeCredential(getEnv("GOLD_API_KEY", "")),
		},
		Data: DataConfig{
			File:    getEnv("CFO_DATA_FILE", DefaultDataFile),
			UseMock: getEnvAsBool("USE_MOCK_DATA", false),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     getEnv("SMTP_USER", ""),
			Password: sanitizeCredential(getEnv("SMTP_PASS", "")),
			To:       getEnv("ALERT_TO_EMAIL", ""),
			StartTLS: getEnvAsBool("SMTP_USE_STARTTLS", true),
			SSL:      getEnvAsBool("SMTP_USE_SSL", false),
		},
		Binance: BinanceConfig{
			APIKey: sanitizeCredential(getEnv("BINANCE_API_KEY", "")),
			Secret: sanitizeCredential(getEnv("BINANCE_API_SECRET", "")),
		},
		Gemini: GeminiConfig{
			APIKey: sanitizeCredential(getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", ""))),
		},
	}
	cfg.SMTP.From = getEnv("ALERT_FROM_EMAIL", cfg.SMTP.User)

	var err error
	if cfg.Gold.PriceGram, err = getEnvAsFloat("GOLD_PRICE_GRAM", DefaultGoldPrice); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = getEnvAsDuration("CACHE_TTL", DefaultCacheTTL); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks values that cannot be used at all.
// Missing credentials only disable the matching source.
func validate(cfg *Config) error {
	if cfg.Gold.PriceGram <= 0 {
		return fmt.Errorf("GOLD_PRICE_GRAM must be positive, got %v", cfg.Gold.PriceGram)
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", cfg.Cache.TTL)
	}
	if cfg.Data.File == "" {
		return fmt.Errorf("CFO_DATA_FILE cannot be empty")
	}
	return nil
}

// Helper to get env var with default, empty values are ignored.
func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func sanitizeCredential(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.Trim(trimmed, "\"")
}

// getEnvAsBool accepts 1, true, yes and on, in any case.
func getEnvAsBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	return IsTrue(v)
}

// IsTrue reports whether s is one of 1, true, yes or on.
func IsTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
