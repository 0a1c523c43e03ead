package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAICompat_Complete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "test-model",
			"choices": [{"message": {"content": "{\"plan\": true}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 34}
		}`))
	}))
	defer server.Close()

	p := newOpenAICompatProvider("test-model", "secret", server.URL)
	resp, err := p.Complete(context.Background(), CompletionRequest{
		System:          "you are a planner",
		User:            "plan this",
		MaxOutputTokens: 512,
		Temperature:     0.2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Text != `{"plan": true}` {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 34 {
		t.Errorf("unexpected usage %+v", resp.Usage)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody.MaxTokens != 512 || gotBody.Temperature != 0.2 {
		t.Errorf("unexpected request parameters %+v", gotBody)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("expected system then user message, got %+v", gotBody.Messages)
	}
}

func TestOpenAICompat_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := newOpenAICompatProvider("m", "", server.URL)
	_, err := p.Complete(context.Background(), CompletionRequest{System: "s", User: "u"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestOpenAICompat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	p := newOpenAICompatProvider("m", "bad", server.URL)
	_, err := p.Complete(context.Background(), CompletionRequest{System: "s", User: "u"})
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected API error surfaced, got %v", err)
	}
}

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"claude-sonnet-4-5", "anthropic"},
		{"gpt-4o", "openrouter"},
		{"o1-mini", "openrouter"},
		{"llama3.3", "ollama"},
		{"mixtral-8x7b", "ollama"},
		{"something-else", ""},
	}
	for _, tt := range tests {
		if got := InferProviderFromModel(tt.model); got != tt.want {
			t.Errorf("InferProviderFromModel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestNewFactory(t *testing.T) {
	if _, err := NewFactory(Config{Model: "claude-sonnet-4-5"}); err != nil {
		t.Errorf("expected provider inferred from model, got %v", err)
	}
	if _, err := NewFactory(Config{Model: "mystery-model"}); err == nil {
		t.Error("expected error for undeterminable provider")
	}
	if _, err := NewFactory(Config{Provider: "anthropic"}); err == nil {
		t.Error("expected error for missing model")
	}

	f, err := NewFactory(Config{Provider: "ollama", Model: "llama3.3"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Provider(""); err == nil {
		t.Error("expected error for missing base_url")
	}
}
