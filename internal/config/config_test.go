package config

import (
	"testing"
	"time"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku-4-5",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-5-mini",
		},
		DeepSeek: DeepSeekConfig{
			Model: "deepseek-chat",
		},
	}

	cfg.ApplyOverrides("openai", "gpt-4o")
	if cfg.Provider != "openai" {
		t.Fatalf("provider=%q, want %q", cfg.Provider, "openai")
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("openai model=%q, want %q", cfg.OpenAI.Model, "gpt-4o")
	}
	if cfg.Anthropic.Model != "claude-haiku-4-5" {
		t.Fatalf("anthropic model changed unexpectedly: %q", cfg.Anthropic.Model)
	}

	cfg.ApplyOverrides("", "gpt-5-mini")
	if cfg.Provider != "openai" {
		t.Fatalf("provider changed unexpectedly: %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-5-mini" {
		t.Fatalf("openai model=%q, want %q", cfg.OpenAI.Model, "gpt-5-mini")
	}

	cfg.ApplyOverrides("deepseek", "deepseek-reasoner")
	if cfg.DeepSeek.Model != "deepseek-reasoner" {
		t.Fatalf("deepseek model=%q, want %q", cfg.DeepSeek.Model, "deepseek-reasoner")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("ZSH_AI_CMD_TEST_KEY", "sk-test-123")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"braced var", "${ZSH_AI_CMD_TEST_KEY}", "sk-test-123"},
		{"bare var", "$ZSH_AI_CMD_TEST_KEY", "sk-test-123"},
		{"literal", "sk-literal", "sk-literal"},
		{"empty", "", ""},
		{"unset var", "${ZSH_AI_CMD_UNSET_VAR}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.input); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveKeyCredentialsEnvFallback(t *testing.T) {
	t.Setenv("ZSH_AI_CMD_TEST_FALLBACK", "from-env")
	// Point the credential store at an empty dir so it cannot interfere.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	key := ""
	resolveKeyCredentials(&key, "ZSH_AI_CMD_TEST_FALLBACK", "")
	if key != "from-env" {
		t.Fatalf("key=%q, want %q", key, "from-env")
	}

	// A config-supplied value wins over the environment.
	key = "from-config"
	resolveKeyCredentials(&key, "ZSH_AI_CMD_TEST_FALLBACK", "")
	if key != "from-config" {
		t.Fatalf("key=%q, want %q", key, "from-config")
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		name string
		secs int
		want time.Duration
	}{
		{"default", 20, 20 * time.Second},
		{"unset clamps to floor", 0, 5 * time.Second},
		{"below floor", 2, 5 * time.Second},
		{"above ceiling", 600, 120 * time.Second},
		{"in range", 30, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TimeoutSeconds: tt.secs}
			if got := cfg.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := &Config{
		Provider:       "lmstudio",
		TimeoutSeconds: 30,
		Anthropic:      AnthropicConfig{Model: "claude-haiku-4-5"},
		OpenAI:         OpenAIConfig{Model: "gpt-5-mini"},
		Gemini:         GeminiConfig{Model: "gemini-3-flash-preview"},
		DeepSeek:       DeepSeekConfig{Model: "deepseek-chat"},
		Ollama:         OllamaConfig{BaseURL: "http://localhost:11434/v1", Model: "qwen2.5-coder:7b"},
		LMStudio:       LMStudioConfig{BaseURL: "http://buildbox:9999/v1", Model: "loaded-model"},
		Local:          LocalConfig{Command: "claude", Model: "sonnet"},
		Context:        ContextConfig{IncludeListing: true},
		History:        HistoryConfig{Enabled: true},
	}
	if err := Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Provider != "lmstudio" {
		t.Errorf("provider = %q", got.Provider)
	}
	if got.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds = %d", got.TimeoutSeconds)
	}
	if got.LMStudio.BaseURL != "http://buildbox:9999/v1" {
		t.Errorf("lmstudio base_url lost on save/load round-trip: got %q", got.LMStudio.BaseURL)
	}
	if got.LMStudio.Model != "loaded-model" {
		t.Errorf("lmstudio model = %q", got.LMStudio.Model)
	}
	if got.Ollama.Model != "qwen2.5-coder:7b" {
		t.Errorf("ollama model = %q", got.Ollama.Model)
	}
	if got.Local.Model != "sonnet" {
		t.Errorf("local model = %q", got.Local.Model)
	}
	if !got.Context.IncludeListing {
		t.Error("context.include_listing lost")
	}
}

func TestSaveFillsEmptyServerDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// A wizard-built config only fills the chosen backend; the other
	// sections must not shadow their defaults with empty values.
	in := &Config{
		Provider:       "anthropic",
		TimeoutSeconds: 20,
		Anthropic:      AnthropicConfig{Model: "claude-haiku-4-5"},
		History:        HistoryConfig{Enabled: true},
	}
	if err := Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.DeepSeek.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("deepseek base_url = %q", got.DeepSeek.BaseURL)
	}
	if got.Ollama.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("ollama base_url = %q", got.Ollama.BaseURL)
	}
	if got.LMStudio.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("lmstudio base_url = %q", got.LMStudio.BaseURL)
	}
	if got.Local.Command != "claude" {
		t.Errorf("local command = %q", got.Local.Command)
	}
	if got.OpenAI.Model != "gpt-5-mini" {
		t.Errorf("openai model = %q", got.OpenAI.Model)
	}
}

func TestGetConfigDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	want := dir + "/zsh-ai-cmd"
	if got != want {
		t.Errorf("GetConfigDir() = %q, want %q", got, want)
	}
}
