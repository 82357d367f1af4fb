package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ADMIN_PASSWORD", "change-me")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Errorf("address = %q, want 0.0.0.0:8080", cfg.Server.Address())
	}
	if cfg.JWT.AccessTokenTTL != 60*time.Minute {
		t.Errorf("access ttl = %v, want 1h", cfg.JWT.AccessTokenTTL)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("admin username = %q, want admin", cfg.Admin.Username)
	}
	if !strings.Contains(cfg.Database.DSN(), "dbname=frontdesk") {
		t.Errorf("dsn missing database name: %q", cfg.Database.DSN())
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.JWT.AccessTokenTTL != 30*time.Minute {
		t.Errorf("access ttl = %v, want 30m", cfg.JWT.AccessTokenTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidation(t *testing.T) {
	t.Run("MissingJWTSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ADMIN_PASSWORD", "change-me")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
			t.Errorf("Load = %v, want JWT_SECRET error", err)
		}
	})

	t.Run("MissingAdminPassword", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("ADMIN_PASSWORD", "")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
			t.Errorf("Load = %v, want ADMIN_PASSWORD error", err)
		}
	})

	t.Run("ShortSecretInProduction", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "short")
		t.Setenv("ADMIN_PASSWORD", "change-me")
		t.Setenv("DB_PASSWORD", "pw")
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), "32 characters") {
			t.Errorf("Load = %v, want secret length error", err)
		}
	})
}
