package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	AI       AIConfig
	Payment  PaymentConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BaseURL     string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type PaymentConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// PremiumPriceCents is the fixed premium-plan price charged at checkout.
	PremiumPriceCents int64
	Currency          string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return def
		}
		return d
	}
	optInt64 := func(key string, def int64) int64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return def
		}
		return v
	}
	optInt32 := func(key string, def int32) int32 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v <= 0 {
			return def
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		BaseURL:     opt("APP_BASE_URL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		// Zero leaves the pgxpool defaults in place.
		PoolMaxConns: optInt32("DB_POOL_MAX_CONNS", 0),
		PoolMinConns: optInt32("DB_POOL_MIN_CONNS", 0),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.AI = AIConfig{
		BaseURL: opt("AI_BASE_URL"),
		APIKey:  req("AI_API_KEY"),
		Model:   opt("AI_MODEL"),
		Timeout: optDuration("AI_TIMEOUT", 60*time.Second),
	}

	cfg.Payment = PaymentConfig{
		BaseURL:           opt("PAYMENT_BASE_URL"),
		ClientID:          opt("PAYMENT_CLIENT_ID"),
		ClientSecret:      opt("PAYMENT_CLIENT_SECRET"),
		PremiumPriceCents: optInt64("PAYMENT_PREMIUM_PRICE_CENTS", 1000),
		Currency:          opt("PAYMENT_CURRENCY"),
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "USD"
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
