package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.ServerAddr)
	}
	if cfg.AIThinkDelay != 500*time.Millisecond {
		t.Fatalf("unexpected delay %v", cfg.AIThinkDelay)
	}
	if cfg.HeartbeatInterval != 15*time.Second || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected intervals %v %v", cfg.HeartbeatInterval, cfg.SessionTTL)
	}
	if cfg.LogLevel != "info" || cfg.LogDevelopment || cfg.LogOutput != "stderr" {
		t.Fatalf("unexpected log settings %q %v", cfg.LogLevel, cfg.LogDevelopment)
	}
}

func TestSetupFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomoku.env")
	body := "SERVER_ADDR=:9090\nAI_THINK_DELAY=1s\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GOMOKU_AI_THINK_DELAY", "0s")

	cfg, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if cfg.ServerAddr != ":9090" {
		t.Fatalf("file value not applied: %q", cfg.ServerAddr)
	}
	if cfg.AIThinkDelay != 0 {
		t.Fatalf("env should override file, got %v", cfg.AIThinkDelay)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected level %q", cfg.LogLevel)
	}
}

func TestSetupBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomoku.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Setup(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
