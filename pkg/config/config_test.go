package config

import (
	"os"
	"testing"
	"time"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unset(t, "PORT", "STORE_DRIVER", "IDEMPOTENCY_TTL", "PROPERTY_TIMEZONE")
	cfg := Load()

	if cfg.Store.Driver != "postgres" {
		t.Errorf("driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour {
		t.Errorf("idempotency ttl = %v", cfg.Redis.IdempotencyTTL)
	}
	if cfg.Property.Location() != time.UTC {
		t.Errorf("default location = %v, want UTC", cfg.Property.Location())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PROPERTY_TIMEZONE", "America/New_York")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("IDEMPOTENCY_TTL", "90m")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Store.Driver)
	}
	if got := cfg.Property.Location().String(); got != "America/New_York" {
		t.Errorf("location = %q", got)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("bad int should fall back, got %d", cfg.Database.MaxConns)
	}
	if cfg.Redis.IdempotencyTTL != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.Redis.IdempotencyTTL)
	}
}

func TestUnknownTimeZoneFallsBackToUTC(t *testing.T) {
	p := PropertyConfig{TimeZone: "Mars/Olympus_Mons"}
	if p.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", p.Location())
	}
}
