package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()
	if cfg.Planner.MaxOutputTokens != 4096 {
		t.Errorf("expected default token limit 4096, got %d", cfg.Planner.MaxOutputTokens)
	}
	if cfg.Planner.HistoryWindow != 6 {
		t.Errorf("expected default history window 6, got %d", cfg.Planner.HistoryWindow)
	}
	if cfg.Telemetry.Protocol != "noop" {
		t.Errorf("expected noop telemetry by default, got %q", cfg.Telemetry.Protocol)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.toml")
	content := `
[planner]
max_output_tokens = 8192
temperature = 0.5

[llm]
provider = "anthropic"
model = "claude-sonnet-4-5"
api_key_env = "MY_KEY"

[catalog]
skill_paths = ["./skills", "./extra-skills"]
watch = true

[events]
url = "nats://localhost:4222"
subject = "plans"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Planner.MaxOutputTokens != 8192 {
		t.Errorf("expected 8192, got %d", cfg.Planner.MaxOutputTokens)
	}
	if cfg.LLM.Model != "claude-sonnet-4-5" {
		t.Errorf("unexpected model %q", cfg.LLM.Model)
	}
	if len(cfg.Catalog.SkillPaths) != 2 {
		t.Errorf("unexpected skill paths %v", cfg.Catalog.SkillPaths)
	}
	if !cfg.Catalog.Watch {
		t.Error("expected watch enabled")
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("unexpected events url %q", cfg.Events.URL)
	}
	// Unset sections keep their defaults.
	if cfg.Planner.HistoryWindow != 6 {
		t.Errorf("expected default history window preserved, got %d", cfg.Planner.HistoryWindow)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.toml")
	if err := os.WriteFile(path, []byte("planner = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetAPIKey(t *testing.T) {
	cfg := New()
	cfg.LLM.APIKeyEnv = "PLANNER_TEST_KEY"
	t.Setenv("PLANNER_TEST_KEY", "from-env")
	if got := cfg.GetAPIKey(); got != "from-env" {
		t.Errorf("expected key from configured env var, got %q", got)
	}

	cfg = New()
	cfg.LLM.Provider = "anthropic"
	t.Setenv("ANTHROPIC_API_KEY", "provider-default")
	if got := cfg.GetAPIKey(); got != "provider-default" {
		t.Errorf("expected key from provider default env var, got %q", got)
	}
}

func TestDefaultAPIKeyEnv(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"openrouter", "OPENROUTER_API_KEY"},
		{"litellm", "OPENAI_API_KEY"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		if got := DefaultAPIKeyEnv(tt.provider); got != tt.want {
			t.Errorf("DefaultAPIKeyEnv(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
