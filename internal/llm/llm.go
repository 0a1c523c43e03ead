// Package llm defines the model call contract the planner depends on and
// the adapters to concrete backends. The planner treats the model as an
// opaque text-in/text-out function; everything transport-specific lives
// behind Provider.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// CompletionRequest is one model invocation.
type CompletionRequest struct {
	System          string
	User            string
	MaxOutputTokens int
	Temperature     float64
}

// Usage reports token consumption when the backend surfaces it.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// CompletionResponse carries untrusted model text plus usage accounting.
type CompletionResponse struct {
	Text  string
	Model string
	Usage Usage
}

// Provider is a text completion backend.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// Factory constructs a provider for a resolved API key. The orchestrator
// resolves the key per request, so providers cannot be bound to one at
// setup time.
type Factory interface {
	Provider(apiKey string) (Provider, error)
}

// Config selects and parameterizes a backend.
type Config struct {
	Provider string // anthropic, openrouter, openai-compat, ollama, litellm
	Model    string
	BaseURL  string
}

// configFactory builds providers from a Config with the key supplied late.
type configFactory struct {
	cfg Config
}

// NewFactory creates a factory for the configured backend. The provider
// name is inferred from the model name when left empty.
func NewFactory(cfg Config) (Factory, error) {
	if cfg.Provider == "" {
		cfg.Provider = InferProviderFromModel(cfg.Model)
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("cannot determine provider for model %q; set provider explicitly", cfg.Model)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model not configured")
	}
	return &configFactory{cfg: cfg}, nil
}

// Provider constructs the backend with the given API key.
func (f *configFactory) Provider(apiKey string) (Provider, error) {
	switch f.cfg.Provider {
	case "anthropic":
		return newAnthropicProvider(f.cfg.Model, apiKey, f.cfg.BaseURL), nil
	case "openrouter":
		url := f.cfg.BaseURL
		if url == "" {
			url = "https://openrouter.ai/api/v1"
		}
		return newOpenAICompatProvider(f.cfg.Model, apiKey, url), nil
	case "openai-compat", "litellm", "ollama", "lmstudio":
		if f.cfg.BaseURL == "" {
			return nil, fmt.Errorf("base_url is required for provider %s", f.cfg.Provider)
		}
		return newOpenAICompatProvider(f.cfg.Model, apiKey, f.cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", f.cfg.Provider)
	}
}

// staticFactory always returns the same provider. Used for composition and
// tests.
type staticFactory struct {
	provider Provider
}

// NewStaticFactory wraps an existing provider as a factory. The API key is
// ignored.
func NewStaticFactory(p Provider) Factory {
	return &staticFactory{provider: p}
}

func (f *staticFactory) Provider(string) (Provider, error) {
	return f.provider, nil
}

// InferProviderFromModel returns the provider name based on model name
// patterns, so users can specify just a model.
func InferProviderFromModel(model string) string {
	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude") {
		return "anthropic"
	}
	if strings.HasPrefix(model, "gpt-") ||
		strings.HasPrefix(model, "o1") ||
		strings.HasPrefix(model, "o3") {
		return "openrouter"
	}
	if strings.HasPrefix(model, "llama") ||
		strings.HasPrefix(model, "mistral") ||
		strings.HasPrefix(model, "mixtral") ||
		strings.HasPrefix(model, "gemma") {
		return "ollama"
	}
	return ""
}
