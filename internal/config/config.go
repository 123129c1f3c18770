package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration

	SweepInterval  time.Duration
	KeyMaxIdleDays int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "1h"))
	if err != nil {
		sweepInterval = 1 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnvOrPanic("DATABASE_URL"),

		SessionSecret: getEnvOrPanic("SESSION_SECRET"),
		SessionTTL:    sessionTTL,

		SweepInterval:  sweepInterval,
		KeyMaxIdleDays: 30,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
