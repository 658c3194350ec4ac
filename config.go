package main

import (
	"context"
	"os"
	"strconv"
	"time"

	awspkg "quote-service/pkg/aws"
	"quote-service/cache"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the quote service.
type Config struct {
	Port string
	Env  string

	// Quote cache tuning
	QuoteTTL        time.Duration
	CacheMaxEntries int

	// Degraded-quote event publishing
	QuoteSNSTopicARN string
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override. A .env file is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8093"),
		Env:              getEnv("APP_ENV", "development"),
		QuoteTTL:         getDurationEnv("QUOTE_CACHE_TTL", cache.DefaultTTL),
		CacheMaxEntries:  getIntEnv("QUOTE_CACHE_MAX_ENTRIES", cache.DefaultMaxEntries),
		QuoteSNSTopicARN: os.Getenv("QUOTE_SNS_TOPIC_ARN"),
	}

	// Override the topic ARN from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if v, err := sm.GetSecret(context.Background(), "quotes/SNS_TOPIC_ARN"); err == nil && v != "" {
				cfg.QuoteSNSTopicARN = v
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
