package llm

import (
	"fmt"
	"strings"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
)

// ProviderNames lists the selectable backend names.
func ProviderNames() []string {
	return []string{"anthropic", "openai", "gemini", "deepseek", "ollama", "lmstudio", "local", "mock"}
}

// ParseProviderModel parses "provider" or "provider:model" from a flag value.
// Model is empty when not specified.
func ParseProviderModel(s string) (string, string, error) {
	parts := strings.SplitN(s, ":", 2)
	provider := strings.TrimSpace(parts[0])
	if provider == "" {
		return "", "", fmt.Errorf("invalid provider format: %q", s)
	}
	model := ""
	if len(parts) == 2 {
		model = strings.TrimSpace(parts[1])
	}

	for _, name := range ProviderNames() {
		if provider == name {
			return provider, model, nil
		}
	}
	return "", "", fmt.Errorf("unknown provider: %s (valid: %s)", provider, strings.Join(ProviderNames(), ", "))
}

// NewProvider creates a suggestion backend from the config. A missing
// credential surfaces as an AuthError carrying an actionable hint; the editor
// shows it when a suggestion is requested.
func NewProvider(cfg *config.Config) (Provider, error) {
	provider, err := newProviderInternal(cfg)
	if err != nil {
		return nil, err
	}
	return WrapWithSanitize(provider), nil
}

// NewRawProvider creates a backend without the single-command response
// cleanup. Use it for multi-line answers such as command explanations.
func NewRawProvider(cfg *config.Config) (Provider, error) {
	return newProviderInternal(cfg)
}

func newProviderInternal(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, &AuthError{Provider: "anthropic", Hint: "set ANTHROPIC_API_KEY or run zsh-ai-cmd setup"}
		}
		return NewAnthropicProvider(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil

	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, &AuthError{Provider: "openai", Hint: "set OPENAI_API_KEY or run zsh-ai-cmd setup"}
		}
		return NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil

	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, &AuthError{Provider: "gemini", Hint: "set GEMINI_API_KEY or run zsh-ai-cmd setup"}
		}
		return NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model), nil

	case "deepseek":
		if cfg.DeepSeek.APIKey == "" {
			return nil, &AuthError{Provider: "deepseek", Hint: "set DEEPSEEK_API_KEY or run zsh-ai-cmd setup"}
		}
		return NewOpenAICompatProvider(cfg.DeepSeek.BaseURL, cfg.DeepSeek.APIKey, cfg.DeepSeek.Model, "deepseek"), nil

	case "ollama":
		if cfg.Ollama.Model == "" {
			return nil, fmt.Errorf("ollama: no model configured (set ollama.model in config)")
		}
		return NewOpenAICompatProvider(cfg.Ollama.BaseURL, cfg.Ollama.APIKey, cfg.Ollama.Model, "ollama"), nil

	case "lmstudio":
		return NewOpenAICompatProvider(cfg.LMStudio.BaseURL, cfg.LMStudio.APIKey, cfg.LMStudio.Model, "lmstudio"), nil

	case "local":
		return NewLocalProvider(cfg.Local.Command, cfg.Local.Model), nil

	case "mock":
		return NewMockProvider(), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: %s)", cfg.Provider, strings.Join(ProviderNames(), ", "))
	}
}
