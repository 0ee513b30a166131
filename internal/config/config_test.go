package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("addr=%q want :8080", cfg.Addr)
	}
	if cfg.DatabaseURL != "" || cfg.KafkaBrokers != nil {
		t.Errorf("cfg=%+v want empty database url and brokers", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level=%q want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/banking")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9090" || cfg.DatabaseURL != "postgres://localhost/banking" || cfg.LogLevel != "debug" {
		t.Errorf("cfg=%+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "broker1:9092" {
		t.Errorf("brokers=%v", cfg.KafkaBrokers)
	}
}
