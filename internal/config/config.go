package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/credentials"
)

type Config struct {
	Provider       string          `mapstructure:"provider"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Debug          bool            `mapstructure:"debug"`
	Theme          ThemeConfig     `mapstructure:"theme"`
	Context        ContextConfig   `mapstructure:"context"`
	Guard          GuardConfig     `mapstructure:"guard"`
	History        HistoryConfig   `mapstructure:"history"`
	Anthropic      AnthropicConfig `mapstructure:"anthropic"`
	OpenAI         OpenAIConfig    `mapstructure:"openai"`
	Gemini         GeminiConfig    `mapstructure:"gemini"`
	DeepSeek       DeepSeekConfig  `mapstructure:"deepseek"`
	Ollama         OllamaConfig    `mapstructure:"ollama"`
	LMStudio       LMStudioConfig  `mapstructure:"lmstudio"`
	Local          LocalConfig     `mapstructure:"local"`
}

// ThemeConfig allows customization of UI colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB).
type ThemeConfig struct {
	Primary string `mapstructure:"primary"` // main accent (commands, highlights)
	Success string `mapstructure:"success"` // success states
	Error   string `mapstructure:"error"`   // error states
	Warning string `mapstructure:"warning"` // warnings, guard matches
	Muted   string `mapstructure:"muted"`   // dimmed text, ghost suggestions
	Text    string `mapstructure:"text"`    // primary text
	Spinner string `mapstructure:"spinner"` // loading spinner
}

// ContextConfig controls the environment details sent with each request.
type ContextConfig struct {
	IncludeListing bool     `mapstructure:"include_listing"` // Send working-directory entries
	MaxEntries     int      `mapstructure:"max_entries"`     // Cap on listing size (default 20)
	Ignore         []string `mapstructure:"ignore"`          // Listing ignore globs
}

// GuardConfig holds glob patterns for commands that require confirmation
// before execution.
type GuardConfig struct {
	Patterns []string `mapstructure:"patterns"`
}

// HistoryConfig controls the local suggestion history store.
type HistoryConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries"` // Oldest rows pruned beyond this
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// DeepSeekConfig configures the DeepSeek provider (OpenAI-compatible).
type DeepSeekConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // Default: https://api.deepseek.com/v1
}

// OllamaConfig configures the Ollama provider (OpenAI-compatible)
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"` // Default: http://localhost:11434/v1
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"` // Optional, Ollama ignores it
}

// LMStudioConfig configures the LM Studio provider (OpenAI-compatible)
type LMStudioConfig struct {
	BaseURL string `mapstructure:"base_url"` // Default: http://localhost:1234/v1
	Model   string `mapstructure:"model"`    // Optional, server falls back to the loaded model
	APIKey  string `mapstructure:"api_key"`  // Optional, LM Studio ignores it
}

// LocalConfig configures the local assistant CLI provider.
type LocalConfig struct {
	Command string `mapstructure:"command"` // Binary to spawn (default "claude")
	Model   string `mapstructure:"model"`
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	// A fresh instance per Load; the global viper accumulates search
	// paths across calls, which leaks state between reloads.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	setDefaults(v)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Resolve credentials for every backend; a missing key is not an error
	// here - the provider factory reports it when the backend is selected.
	resolveKeyCredentials(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY", "anthropic")
	resolveKeyCredentials(&cfg.OpenAI.APIKey, "OPENAI_API_KEY", "openai")
	resolveKeyCredentials(&cfg.Gemini.APIKey, "GEMINI_API_KEY", "gemini")
	resolveKeyCredentials(&cfg.DeepSeek.APIKey, "DEEPSEEK_API_KEY", "deepseek")
	resolveKeyCredentials(&cfg.Ollama.APIKey, "OLLAMA_API_KEY", "")
	resolveKeyCredentials(&cfg.LMStudio.APIKey, "LMSTUDIO_API_KEY", "")
	cfg.DeepSeek.BaseURL = expandEnv(cfg.DeepSeek.BaseURL)
	cfg.Ollama.BaseURL = expandEnv(cfg.Ollama.BaseURL)
	cfg.LMStudio.BaseURL = expandEnv(cfg.LMStudio.BaseURL)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "anthropic")
	v.SetDefault("timeout_seconds", 20)
	v.SetDefault("anthropic.model", "claude-haiku-4-5")
	v.SetDefault("openai.model", "gpt-5-mini")
	v.SetDefault("gemini.model", "gemini-3-flash-preview")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("deepseek.base_url", "https://api.deepseek.com/v1")
	// OpenAI-compatible local server defaults
	v.SetDefault("ollama.base_url", "http://localhost:11434/v1")
	v.SetDefault("lmstudio.base_url", "http://localhost:1234/v1")
	v.SetDefault("local.command", "claude")
	v.SetDefault("context.include_listing", false)
	v.SetDefault("context.max_entries", 20)
	v.SetDefault("context.ignore", []string{".git", "node_modules", "*.lock"})
	v.SetDefault("guard.patterns", DefaultGuardPatterns())
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 2000)
}

// DefaultGuardPatterns returns the stock destructive-command patterns.
func DefaultGuardPatterns() []string {
	return []string{
		"rm -rf *",
		"rm -fr *",
		"sudo rm *",
		"dd if=*",
		"mkfs*",
		"* > /dev/sd*",
		"chmod -R 777 *",
		"git push --force*",
	}
}

// Timeout returns the per-request deadline, clamped to a sane range.
func (c *Config) Timeout() time.Duration {
	secs := c.TimeoutSeconds
	if secs < 5 {
		secs = 5
	}
	if secs > 120 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}

// ApplyOverrides applies provider and model overrides to the config.
// If provider is non-empty, it overrides the global provider.
// If model is non-empty, it overrides the model for the active provider.
func (c *Config) ApplyOverrides(provider, model string) {
	if provider != "" {
		c.Provider = provider
	}
	if model != "" {
		switch c.Provider {
		case "anthropic":
			c.Anthropic.Model = model
		case "openai":
			c.OpenAI.Model = model
		case "gemini":
			c.Gemini.Model = model
		case "deepseek":
			c.DeepSeek.Model = model
		case "ollama":
			c.Ollama.Model = model
		case "lmstudio":
			c.LMStudio.Model = model
		case "local":
			c.Local.Model = model
		}
	}
}

// resolveKeyCredentials fills key from, in order: the config value
// (env-expanded), the named environment variable, then the platform secret
// store under service. An empty service skips the store lookup.
func resolveKeyCredentials(key *string, envVar, service string) {
	*key = expandEnv(*key)
	if *key == "" {
		*key = os.Getenv(envVar)
	}
	if *key == "" && service != "" {
		if secret, err := credentials.Lookup(service); err == nil {
			*key = secret
		}
	}
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for zsh-ai-cmd.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "zsh-ai-cmd"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "zsh-ai-cmd"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetLogDir returns the XDG data directory for debug logs.
// Uses $XDG_DATA_HOME if set, otherwise ~/.local/share
func GetLogDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "zsh-ai-cmd", "logs")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "zsh-ai-cmd-logs") // fallback
	}
	return filepath.Join(homeDir, ".local", "share", "zsh-ai-cmd", "logs")
}

// HistoryPath returns the location of the sqlite history database.
func HistoryPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "history.db"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// NeedsSetup returns true if config file doesn't exist
func NeedsSetup() bool {
	return !Exists()
}

// fallback returns v, or def when v is empty. An empty string in the saved
// file would otherwise shadow the viper default on the next Load.
func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Save writes the config to disk. Every backend section is written out so a
// wizard-collected value survives the next Load.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`provider: %s
timeout_seconds: %d

anthropic:
  model: %s
  # api_key: set here, or via ANTHROPIC_API_KEY, or the platform keychain

openai:
  model: %s

gemini:
  model: %s

deepseek:
  base_url: %s
  model: %s

ollama:
  base_url: %s
  model: %s

lmstudio:
  base_url: %s
  model: %s

local:
  command: %s
  model: %s

context:
  # Send up to max_entries working-directory names with each request
  include_listing: %t

history:
  enabled: %t
`, cfg.Provider, cfg.TimeoutSeconds,
		fallback(cfg.Anthropic.Model, "claude-haiku-4-5"),
		fallback(cfg.OpenAI.Model, "gpt-5-mini"),
		fallback(cfg.Gemini.Model, "gemini-3-flash-preview"),
		fallback(cfg.DeepSeek.BaseURL, "https://api.deepseek.com/v1"),
		fallback(cfg.DeepSeek.Model, "deepseek-chat"),
		fallback(cfg.Ollama.BaseURL, "http://localhost:11434/v1"), cfg.Ollama.Model,
		fallback(cfg.LMStudio.BaseURL, "http://localhost:1234/v1"), cfg.LMStudio.Model,
		fallback(cfg.Local.Command, "claude"), cfg.Local.Model,
		cfg.Context.IncludeListing, cfg.History.Enabled)

	return os.WriteFile(path, []byte(content), 0o600)
}
