package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// Provider selects the generation backend: "gemini" or "openai".
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Model is the backend model name. Empty means the provider default.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// BaseURL overrides the provider API endpoint (OpenRouter, local servers, tests).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is read from the environment when empty. Prefer FORGE_API_KEY
	// over writing credentials to disk; Forge never writes this field back.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature and TopP are the sampling parameters sent with every request.
	// Nil means unset; an explicit 0 is kept.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty" yaml:"top_p,omitempty"`

	// RequestTimeoutSeconds bounds a single generation call.
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty" yaml:"request_timeout_seconds,omitempty"`

	// HistoryCapacity is the maximum number of history entries kept.
	// Values above 50 are clamped to 50.
	HistoryCapacity int `json:"history_capacity,omitempty" yaml:"history_capacity,omitempty"`

	// Bind and Port are the web UI listen address.
	Bind string `json:"bind,omitempty" yaml:"bind,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// PublicURL is the origin used when building share links outside a request
	// (CLI, MCP). Defaults to http://<bind>:<port>.
	PublicURL string `json:"public_url,omitempty" yaml:"public_url,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty" yaml:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty" yaml:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" yaml:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "prompt", "history", "share".
	DisabledTypes []string `json:"disabled_types,omitempty" yaml:"disabled_types,omitempty"`
}

// Default sampling parameters.
const (
	DefaultTemperature = 0.8
	DefaultTopP        = 0.9
)

// Float returns a pointer to v, for setting optional float fields.
func Float(v float64) *float64 { return &v }

// SamplingTemperature returns the configured temperature, or the default when unset.
func (c *Config) SamplingTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// SamplingTopP returns the configured top-p, or the default when unset.
func (c *Config) SamplingTopP() float64 {
	if c.TopP == nil {
		return DefaultTopP
	}
	return *c.TopP
}

// MaxHistoryCapacity is the hard upper bound on stored history entries.
const MaxHistoryCapacity = 50

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:              "gemini",
		Temperature:           Float(DefaultTemperature),
		TopP:                  Float(DefaultTopP),
		RequestTimeoutSeconds: 60,
		HistoryCapacity:       MaxHistoryCapacity,
		Bind:                  "127.0.0.1",
		Port:                  8642,
	}
}

// Load loads configuration from baseDir/config.json, falling back to
// baseDir/config.yaml, then applies environment overrides.
// Returns default config (plus env) if neither file exists.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.forge.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if isZero(cfg) {
		cfg, err = loadFileRaw(filepath.Join(baseDir, "config.yaml"))
		if err != nil {
			return nil, err
		}
	}
	merged := Merge(DefaultConfig(), cfg)
	ApplyEnv(merged, os.Getenv)
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
// The format is chosen by extension: .yaml/.yml use YAML, everything else JSON.
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ApplyEnv overrides credentials and provider selection from the environment.
// FORGE_API_KEY wins over the provider-specific variables.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv("FORGE_PROVIDER")); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(getenv("FORGE_MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(getenv("FORGE_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}

	if v := strings.TrimSpace(getenv("FORGE_API_KEY")); v != "" {
		cfg.APIKey = v
		return
	}
	if cfg.APIKey != "" {
		return
	}
	switch cfg.Provider {
	case "gemini":
		cfg.APIKey = strings.TrimSpace(getenv("GEMINI_API_KEY"))
	case "openai":
		cfg.APIKey = strings.TrimSpace(getenv("OPENAI_API_KEY"))
	}
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		Provider:              pickString(overlay.Provider, base.Provider),
		Model:                 pickString(overlay.Model, base.Model),
		BaseURL:               pickString(overlay.BaseURL, base.BaseURL),
		APIKey:                pickString(overlay.APIKey, base.APIKey),
		Bind:                  pickString(overlay.Bind, base.Bind),
		PublicURL:             pickString(overlay.PublicURL, base.PublicURL),
		Temperature:           pickFloat(overlay.Temperature, base.Temperature),
		TopP:                  pickFloat(overlay.TopP, base.TopP),
		RequestTimeoutSeconds: pickInt(overlay.RequestTimeoutSeconds, base.RequestTimeoutSeconds),
		HistoryCapacity:       pickInt(overlay.HistoryCapacity, base.HistoryCapacity),
		Port:                  pickInt(overlay.Port, base.Port),
		DBMaxOpenConns:        pickInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:        pickInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
	}

	if result.HistoryCapacity > MaxHistoryCapacity {
		result.HistoryCapacity = MaxHistoryCapacity
	}

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

func pickString(overlay, base string) string {
	if strings.TrimSpace(overlay) != "" {
		return strings.TrimSpace(overlay)
	}
	return base
}

func pickInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

func pickFloat(overlay, base *float64) *float64 {
	if overlay != nil {
		v := *overlay
		return &v
	}
	if base != nil {
		v := *base
		return &v
	}
	return nil
}

// isZero reports whether cfg carries no settings at all.
func isZero(cfg *Config) bool {
	return cfg.Provider == "" && cfg.Model == "" && cfg.BaseURL == "" && cfg.APIKey == "" &&
		cfg.Temperature == nil && cfg.TopP == nil && cfg.RequestTimeoutSeconds == 0 &&
		cfg.HistoryCapacity == 0 && cfg.Bind == "" && cfg.Port == 0 && cfg.PublicURL == "" &&
		cfg.DBMaxOpenConns == 0 && cfg.DBMaxIdleConns == 0 &&
		len(cfg.DisabledTools) == 0 && len(cfg.DisabledTypes) == 0
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// ShareBaseURL returns the origin and path share links are built against
// when no incoming request is available.
func (c *Config) ShareBaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/") + "/"
	}
	return fmt.Sprintf("http://%s:%d/", c.Bind, c.Port)
}
