// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the planner configuration.
type Config struct {
	Planner   PlannerConfig   `toml:"planner"`
	LLM       LLMConfig       `toml:"llm"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Events    EventsConfig    `toml:"events"`
}

// PlannerConfig bounds the resolution loop.
type PlannerConfig struct {
	MaxOutputTokens int     `toml:"max_output_tokens"`
	Temperature     float64 `toml:"temperature"`
	HistoryWindow   int     `toml:"history_window"` // Conversation turns included in the user prompt
}

// LLMConfig contains model provider settings.
type LLMConfig struct {
	Provider  string `toml:"provider"` // anthropic, openrouter, openai-compat, litellm, ollama
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	BaseURL   string `toml:"base_url"` // Custom API endpoint (OpenRouter, LiteLLM, Ollama, LMStudio)
}

// CatalogConfig lists the tool discovery roots.
type CatalogConfig struct {
	SkillPaths    []string `toml:"skill_paths"`
	SubagentPaths []string `toml:"subagent_paths"`
	Watch         bool     `toml:"watch"` // Invalidate the catalog cache on filesystem changes
}

// TelemetryConfig contains tracing exporter settings.
type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"` // OTLP endpoint (e.g., localhost:4317)
	Protocol string `toml:"protocol"` // grpc (default) or http
}

// EventsConfig contains plan lifecycle event publishing settings.
type EventsConfig struct {
	URL     string `toml:"url"` // NATS server URL; empty disables publishing
	Subject string `toml:"subject"`
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Planner: PlannerConfig{
			MaxOutputTokens: 4096,
			Temperature:     0.2,
			HistoryWindow:   6,
		},
		Catalog: CatalogConfig{
			SkillPaths:    []string{"./skills"},
			SubagentPaths: []string{"./subagents"},
		},
		Telemetry: TelemetryConfig{
			Protocol: "noop",
		},
		Events: EventsConfig{
			Subject: "planner",
		},
	}
}

// LoadFile loads configuration from a TOML file. Paths may use a leading ~.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(expandHome(path), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Catalog.SkillPaths = expandAll(cfg.Catalog.SkillPaths)
	cfg.Catalog.SubagentPaths = expandAll(cfg.Catalog.SubagentPaths)
	return cfg, nil
}

// LoadDefault loads configuration from planner.toml in the current
// directory, falling back to defaults when the file is absent.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, "planner.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// GetAPIKey returns the API key from the configured environment variable.
// If api_key_env is not set, uses the default env var for the provider.
func (c *Config) GetAPIKey() string {
	envVar := c.LLM.APIKeyEnv
	if envVar == "" {
		envVar = DefaultAPIKeyEnv(c.LLM.Provider)
	}
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

// DefaultAPIKeyEnv returns the default environment variable name for a provider.
func DefaultAPIKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "openai-compat", "litellm":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func expandAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = expandHome(p)
	}
	return out
}
