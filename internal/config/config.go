package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config comes from the environment, with a .env file loaded first when one
// exists. An empty DatabaseURL selects the in-memory store; empty
// KafkaBrokers disables event publishing.
type Config struct {
	Addr         string
	DatabaseURL  string
	KafkaBrokers []string
	LogLevel     string
}

func Load() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
