package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.BatchSize != 20 {
		t.Errorf("batch size = %d, want 20", cfg.BatchSize)
	}
	if cfg.ProviderURL != "https://randomuser.me" {
		t.Errorf("provider url = %q", cfg.ProviderURL)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("history limit = %d, want 50", cfg.HistoryLimit)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute || cfg.SessionSweepInterval != time.Minute {
		t.Errorf("session timeouts = %v / %v", cfg.SessionIdleTimeout, cfg.SessionSweepInterval)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %q", cfg.Addr())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PATH", "/tmp/legacy.db")
	t.Setenv("SWIPER_PORT", "9090")
	t.Setenv("SWIPER_PROVIDER_BATCH_SIZE", "5")
	t.Setenv("SWIPER_PROVIDER_BACKOFF", "1s")
	t.Setenv("SWIPER_SESSION_IDLE_TIMEOUT", "5m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/legacy.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("batch size = %d, want 5", cfg.BatchSize)
	}
	if cfg.ProviderBackoff != time.Second {
		t.Errorf("backoff = %v, want 1s", cfg.ProviderBackoff)
	}
	if cfg.SessionIdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v, want 5m", cfg.SessionIdleTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "port: 7070\nprovider:\n  batch_size: 3\nhistory_limit: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7070 || cfg.BatchSize != 3 || cfg.HistoryLimit != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{name: "zero batch size", env: "SWIPER_PROVIDER_BATCH_SIZE", val: "0"},
		{name: "negative idle timeout", env: "SWIPER_SESSION_IDLE_TIMEOUT", val: "-1m"},
		{name: "zero sweep interval", env: "SWIPER_SESSION_SWEEP_INTERVAL", val: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.env, tt.val)
			if _, err := Load(""); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
