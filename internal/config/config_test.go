package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 2333 {
		t.Errorf("Port = %d, want 2333", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.AppID != DefaultAppID {
		t.Errorf("AppID = %q, want %q", cfg.AppID, DefaultAppID)
	}
	if cfg.Summary.TimeoutSeconds != 30 {
		t.Errorf("Summary.TimeoutSeconds = %d, want 30", cfg.Summary.TimeoutSeconds)
	}
	if cfg.RemoteEnabled() {
		t.Error("RemoteEnabled() = true without a DSN")
	}
	if cfg.SummaryEnabled() {
		t.Error("SummaryEnabled() = true without an endpoint")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
port: 8080
env: development
app_id: my-site
dsn: "user:pass@tcp(127.0.0.1:3306)/folio"
allowed_origins:
  - example.com
  - "*.example.dev"
summary:
  endpoint: https://generativelanguage.example/v1beta/models/gemini:generateContent
  api_key: secret
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() = false for env development")
	}
	if got := len(cfg.AllowedOrigins); got != 2 {
		t.Errorf("len(AllowedOrigins) = %d, want 2", got)
	}
	if !cfg.RemoteEnabled() {
		t.Error("RemoteEnabled() = false with a DSN configured")
	}
	if !cfg.SummaryEnabled() {
		t.Error("SummaryEnabled() = false with an endpoint configured")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9000")
	t.Setenv("FOLIO_APP_ID", "override-app")
	t.Setenv("FOLIO_ALLOWED_ORIGINS", "a.com, b.com,")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.AppID != "override-app" {
		t.Errorf("AppID = %q, want override-app", cfg.AppID)
	}
	if got := len(cfg.AllowedOrigins); got != 2 {
		t.Errorf("len(AllowedOrigins) = %d, want 2", got)
	}
}

func TestDisableRemote(t *testing.T) {
	cfg := &AppConfig{DSN: "user:pass@tcp(db:3306)/folio"}
	cfg.Preferences.DisableRemote = true
	if cfg.RemoteEnabled() {
		t.Error("RemoteEnabled() = true with disable_remote set")
	}
}

func TestMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: [not a number"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}
