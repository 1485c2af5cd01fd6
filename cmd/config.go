package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `View the effective configuration, with defaults applied and
secrets redacted.

Examples:
  zsh-ai-cmd config         # show effective config
  zsh-ai-cmd config path    # print config file path`,
	RunE: configShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Printf("# No config file (using defaults). Create one at:\n# %s\n\n", path)
	} else {
		fmt.Printf("# %s\n\n", path)
	}

	out, err := yaml.Marshal(redactedConfig(cfg))
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// redactedConfig flattens the config for display. API keys show only
// whether they resolved; where they came from is not re-derived.
func redactedConfig(cfg *config.Config) map[string]any {
	redact := func(key string) string {
		if key == "" {
			return "(not set)"
		}
		return "[set]"
	}

	return map[string]any{
		"provider":        cfg.Provider,
		"timeout_seconds": cfg.TimeoutSeconds,
		"debug":           cfg.Debug,
		"anthropic": map[string]any{
			"model":   cfg.Anthropic.Model,
			"api_key": redact(cfg.Anthropic.APIKey),
		},
		"openai": map[string]any{
			"model":   cfg.OpenAI.Model,
			"api_key": redact(cfg.OpenAI.APIKey),
		},
		"gemini": map[string]any{
			"model":   cfg.Gemini.Model,
			"api_key": redact(cfg.Gemini.APIKey),
		},
		"deepseek": map[string]any{
			"model":    cfg.DeepSeek.Model,
			"base_url": cfg.DeepSeek.BaseURL,
			"api_key":  redact(cfg.DeepSeek.APIKey),
		},
		"ollama": map[string]any{
			"model":    cfg.Ollama.Model,
			"base_url": cfg.Ollama.BaseURL,
		},
		"lmstudio": map[string]any{
			"model":    cfg.LMStudio.Model,
			"base_url": cfg.LMStudio.BaseURL,
		},
		"local": map[string]any{
			"command": cfg.Local.Command,
			"model":   cfg.Local.Model,
		},
		"context": map[string]any{
			"include_listing": cfg.Context.IncludeListing,
			"max_entries":     cfg.Context.MaxEntries,
			"ignore":          cfg.Context.Ignore,
		},
		"guard": map[string]any{
			"patterns": cfg.Guard.Patterns,
		},
		"history": map[string]any{
			"enabled":     cfg.History.Enabled,
			"max_entries": cfg.History.MaxEntries,
		},
	}
}
