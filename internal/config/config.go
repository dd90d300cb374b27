package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its YAML config.
const DefaultConfigPath = "config.yml"

// DefaultAppID scopes preference documents when no app id is configured.
const DefaultAppID = "default-app-id"

// AppConfig holds runtime startup configuration loaded from YAML.
// Sections describing external collaborators (database, redis, summary
// endpoint, contact endpoint, embed token) may be absent; the owning
// modules degrade instead of failing.
type AppConfig struct {
	Port             int               `yaml:"port"`
	Env              string            `yaml:"env"` // "development" | "production"
	AppID            string            `yaml:"app_id"`
	DSN              string            `yaml:"dsn"` // MySQL DSN
	RedisURL         string            `yaml:"redis_url"`
	AllowedOrigins   []string          `yaml:"allowed_origins"`
	EmbedTokenSecret string            `yaml:"embed_token_secret"`
	Preferences      PreferencesConfig `yaml:"preferences"`
	Summary          SummaryConfig     `yaml:"summary"`
	Contact          ContactConfig     `yaml:"contact"`
}

// PreferencesConfig controls the preference persistence tiers.
type PreferencesConfig struct {
	// DisableRemote forces local-only mode even when a database is wired.
	DisableRemote bool `yaml:"disable_remote"`
}

// SummaryConfig describes the generative-language summarization endpoint.
type SummaryConfig struct {
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ContactConfig describes the third-party form-collection service.
type ContactConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") ||
		strings.EqualFold(strings.TrimSpace(c.Env), "dev")
}

// RemoteEnabled reports whether the remote preference tier is configured.
func (c *AppConfig) RemoteEnabled() bool {
	return !c.Preferences.DisableRemote && strings.TrimSpace(c.DSN) != ""
}

// SummaryEnabled reports whether the summarization endpoint is configured.
func (c *AppConfig) SummaryEnabled() bool {
	return strings.TrimSpace(c.Summary.Endpoint) != ""
}

// Load reads the YAML config file, applies environment overrides and
// defaults. A missing file is not an error; env and defaults still apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envString("FOLIO_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if v := envString("FOLIO_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envString("FOLIO_APP_ID"); v != "" {
		cfg.AppID = v
	}
	if v := envString("FOLIO_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := envString("FOLIO_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envString("FOLIO_ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := envString("FOLIO_EMBED_TOKEN_SECRET"); v != "" {
		cfg.EmbedTokenSecret = v
	}
	if v := envString("FOLIO_SUMMARY_ENDPOINT"); v != "" {
		cfg.Summary.Endpoint = v
	}
	if v := envString("FOLIO_SUMMARY_API_KEY"); v != "" {
		cfg.Summary.APIKey = v
	}
	if v := envString("FOLIO_CONTACT_ENDPOINT"); v != "" {
		cfg.Contact.Endpoint = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port <= 0 {
		cfg.Port = 2333
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "production"
	}
	if strings.TrimSpace(cfg.AppID) == "" {
		cfg.AppID = DefaultAppID
	}
	if cfg.Summary.TimeoutSeconds <= 0 {
		cfg.Summary.TimeoutSeconds = 30
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
