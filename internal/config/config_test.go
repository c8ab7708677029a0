package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "taxmate",
			Database: "taxmate",
		},
		Reference: ReferenceConfig{
			FiscalYear:  2025,
			SnapshotTTL: 30 * time.Minute,
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for port 0")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}

func TestValidateRejectsMissingPostgres(t *testing.T) {
	cfg := validConfig()
	cfg.Postgres.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing postgres host")
	}

	cfg = validConfig()
	cfg.Postgres.Database = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing postgres database")
	}
}

func TestValidateRejectsBadFiscalYear(t *testing.T) {
	cfg := validConfig()
	cfg.Reference.FiscalYear = 1999
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for fiscal year before 2000")
	}
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Reference.SnapshotTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero snapshot TTL")
	}
}

func TestLoadAppliesEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("TAX_FISCAL_YEAR", "2026")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Reference.FiscalYear != 2026 {
		t.Fatalf("expected fiscal year 2026, got %d", cfg.Reference.FiscalYear)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Fatalf("expected postgres host override, got %q", cfg.Postgres.Host)
	}
}
