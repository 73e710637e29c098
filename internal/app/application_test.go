package app

import (
	"testing"

	"livepoll/internal/config"
)

func TestNewApplication_Defaults(t *testing.T) {
	app, err := NewApplication(nil)
	if err != nil {
		t.Fatalf("nil config should fall back to defaults, got %v", err)
	}
	if app.Addr() != "0.0.0.0:4000" {
		t.Errorf("expected default listen address, got %s", app.Addr())
	}
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTP.Port = -1

	if _, err := NewApplication(cfg); err == nil {
		t.Error("expected error for invalid configuration")
	}
}

func TestNewApplication_CustomAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = 8123

	app, err := NewApplication(cfg)
	if err != nil {
		t.Fatalf("expected clean construction, got %v", err)
	}
	if app.Addr() != "127.0.0.1:8123" {
		t.Errorf("expected 127.0.0.1:8123, got %s", app.Addr())
	}
}
