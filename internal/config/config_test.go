package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://api.byetax.example"
	cfg.Export.Notify = false

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.API.BaseURL != "https://api.byetax.example" {
		t.Errorf("API.BaseURL: got %q", loaded.API.BaseURL)
	}
	if loaded.Export.Notify {
		t.Error("Export.Notify: got true, want false")
	}
}

func TestDefaultTimings(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ToastDuration() != 2*time.Second {
		t.Errorf("toast: got %v, want 2s", cfg.ToastDuration())
	}
	if cfg.ToastFade() != 300*time.Millisecond {
		t.Errorf("fade: got %v, want 300ms", cfg.ToastFade())
	}
	if cfg.ShareCloseDelay() != 500*time.Millisecond {
		t.Errorf("share close delay: got %v, want 500ms", cfg.ShareCloseDelay())
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	partial := `api:
  base_url: http://10.0.0.5:8000
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("BaseURL: got %q", cfg.API.BaseURL)
	}
	if cfg.UI.ToastMs != 2000 {
		t.Errorf("ToastMs default lost: got %d", cfg.UI.ToastMs)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("BaseURL: got %q", cfg.API.BaseURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://override:9000")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.API.BaseURL != "http://override:9000" {
		t.Errorf("BaseURL: got %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q", cfg.Log.Level)
	}
	if cfg.SharePageURL() != "http://override:9000/" {
		t.Errorf("SharePageURL: got %q", cfg.SharePageURL())
	}
}

func TestMalformedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("api: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := ReadConfig(tmpDir); err == nil {
		t.Error("expected parse error")
	}
}
