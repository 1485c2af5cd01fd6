package llm

import (
	"errors"
	"testing"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
)

func TestParseProviderModel(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{"provider only", "anthropic", "anthropic", "", false},
		{"provider and model", "openai:gpt-4o", "openai", "gpt-4o", false},
		{"compat provider", "ollama:qwen2.5-coder", "ollama", "qwen2.5-coder", false},
		{"spaces trimmed", " gemini : gemini-3-flash-preview ", "gemini", "gemini-3-flash-preview", false},
		{"unknown provider", "cohere", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, model, err := ParseProviderModel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got provider=%q model=%q", tt.input, provider, model)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProviderModel(%q): %v", tt.input, err)
			}
			if provider != tt.wantProvider || model != tt.wantModel {
				t.Errorf("ParseProviderModel(%q) = (%q, %q), want (%q, %q)",
					tt.input, provider, model, tt.wantProvider, tt.wantModel)
			}
		})
	}
}

func TestNewProviderMissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		provider string
	}{
		{"anthropic", "anthropic"},
		{"openai", "openai"},
		{"gemini", "gemini"},
		{"deepseek", "deepseek"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Provider: tt.provider}
			_, err := NewProvider(cfg)

			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Provider != tt.provider {
				t.Errorf("AuthError.Provider = %q, want %q", authErr.Provider, tt.provider)
			}
			if authErr.Hint == "" {
				t.Error("AuthError.Hint is empty, want an actionable hint")
			}
		})
	}
}

func TestNewProviderNoCredentialBackends(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"mock", &config.Config{Provider: "mock"}},
		{"local", &config.Config{Provider: "local", Local: config.LocalConfig{Command: "claude"}}},
		{"lmstudio", &config.Config{Provider: "lmstudio", LMStudio: config.LMStudioConfig{BaseURL: "http://localhost:1234/v1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			if p == nil {
				t.Fatal("NewProvider returned nil provider")
			}
		})
	}
}

func TestNewProviderUnknown(t *testing.T) {
	cfg := &config.Config{Provider: "telepathy"}
	if _, err := NewProvider(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProviderOllamaRequiresModel(t *testing.T) {
	cfg := &config.Config{Provider: "ollama", Ollama: config.OllamaConfig{BaseURL: "http://localhost:11434/v1"}}
	if _, err := NewProvider(cfg); err == nil {
		t.Fatal("expected error when ollama model is unset")
	}
}
