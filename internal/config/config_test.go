package config

import (
	"testing"
	"time"
)

func TestLoadJWTExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "48")

	cfg := Load()
	if cfg.JWTExpiry != 48*time.Hour {
		t.Errorf("JWTExpiry = %v, want %v", cfg.JWTExpiry, 48*time.Hour)
	}
}

func TestLoadJWTExpiryDefault(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "")

	cfg := Load()
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want %v", cfg.JWTExpiry, 24*time.Hour)
	}
}

func TestGetIntEnvInvalid(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "soon")

	if got := getIntEnv("JWT_EXPIRY_HOURS", 24); got != 24 {
		t.Errorf("getIntEnv = %d, want default 24", got)
	}
}
