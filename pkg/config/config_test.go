package config

import (
	"testing"
	"time"
)

func TestNormalizeDatabaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "legacy scheme rewritten",
			in:   "postgres://user:pw@host:5432/db",
			want: "postgresql://user:pw@host:5432/db",
		},
		{
			name: "canonical scheme untouched",
			in:   "postgresql://user:pw@host:5432/db",
			want: "postgresql://user:pw@host:5432/db",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDatabaseURL(tt.in); got != tt.want {
				t.Errorf("NormalizeDatabaseURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Database.SQLitePath != "local.db" {
		t.Errorf("SQLitePath = %q, want local.db", cfg.Database.SQLitePath)
	}
	if cfg.UsesPostgres() {
		t.Error("UsesPostgres() = true without DATABASE_URL")
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}
}

func TestLoadPostgresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pw@host:5432/db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.UsesPostgres() {
		t.Fatal("UsesPostgres() = false with DATABASE_URL set")
	}
	if cfg.Database.URL != "postgresql://user:pw@host:5432/db" {
		t.Errorf("Database.URL = %q, want normalized postgresql scheme", cfg.Database.URL)
	}
}

func TestLoadRejectsUnknownEnv(t *testing.T) {
	t.Setenv("ENV", "lab")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted ENV=lab")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MARKET_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Market.Timeout != 5*time.Second {
		t.Errorf("Market.Timeout = %v, want 5s", cfg.Market.Timeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
}
