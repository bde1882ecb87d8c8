package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("expected 60 minute token ttl, got %d", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %q", cfg.LLM.Model)
	}
	if cfg.Coach.HistoryWindow != 50 {
		t.Errorf("expected default history window 50, got %d", cfg.Coach.HistoryWindow)
	}
	if cfg.Storage.Bucket != "" {
		t.Errorf("expected archiving disabled by default, got bucket %q", cfg.Storage.Bucket)
	}
}

func TestLoadHonorsEnv(t *testing.T) {
	t.Setenv("COACH_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Path != "/tmp/other.db" {
		t.Errorf("expected env database path, got %q", cfg.Database.Path)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected PORT to set addr, got %q", cfg.Server.Addr)
	}
}
