package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List backends and their credential status",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := ui.NewStyles(os.Stdout)

	for _, name := range llm.ProviderNames() {
		marker := "  "
		if name == cfg.Provider {
			marker = st.Success.Render("* ")
		}

		model, status := providerStatus(cfg, name, st)
		if model == "" {
			model = st.Muted.Render("(server default)")
		}
		// Pad by display width; the styled cells carry escape codes.
		fmt.Println(marker + ui.PadANSI(name, 10) + " " + ui.PadANSI(model, 28) + " " + status)
	}

	fmt.Println()
	fmt.Println(st.Muted.Render("* active provider. Switch with --provider or the config file."))
	return nil
}

// providerStatus reports the model and a one-line credential status for a
// backend. Credentials were already resolved through the full cascade
// (config, environment, secret store) at load time.
func providerStatus(cfg *config.Config, name string, st *ui.Styles) (string, string) {
	ok := st.Success.Render
	missing := st.Error.Render
	none := st.Muted.Render

	switch name {
	case "anthropic":
		if cfg.Anthropic.APIKey != "" {
			return cfg.Anthropic.Model, ok("key set")
		}
		return cfg.Anthropic.Model, missing("no key (set ANTHROPIC_API_KEY)")
	case "openai":
		if cfg.OpenAI.APIKey != "" {
			return cfg.OpenAI.Model, ok("key set")
		}
		return cfg.OpenAI.Model, missing("no key (set OPENAI_API_KEY)")
	case "gemini":
		if cfg.Gemini.APIKey != "" {
			return cfg.Gemini.Model, ok("key set")
		}
		return cfg.Gemini.Model, missing("no key (set GEMINI_API_KEY)")
	case "deepseek":
		if cfg.DeepSeek.APIKey != "" {
			return cfg.DeepSeek.Model, ok("key set")
		}
		return cfg.DeepSeek.Model, missing("no key (set DEEPSEEK_API_KEY)")
	case "ollama":
		if cfg.Ollama.Model == "" {
			return "", missing("no model (set ollama.model)")
		}
		return cfg.Ollama.Model, none(cfg.Ollama.BaseURL)
	case "lmstudio":
		return cfg.LMStudio.Model, none(cfg.LMStudio.BaseURL)
	case "local":
		return cfg.Local.Model, none("runs " + cfg.Local.Command)
	case "mock":
		return "", none("built in (testing)")
	}
	return "", ""
}
