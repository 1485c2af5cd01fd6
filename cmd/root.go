package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/prompt"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/shell"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	flagProvider string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "zsh-ai-cmd",
	Short: "AI ghost-text suggestions for your command line",
	Long: `zsh-ai-cmd suggests shell commands as you type.

Run it bare for the interactive prompt: describe what you want or start
typing a command, press ctrl+g, and a ghost suggestion appears inline.
Tab accepts it; keep typing to refine or ignore it.

Examples:
  zsh-ai-cmd                                # interactive prompt, prints the line
  zsh-ai-cmd prompt --exec                  # interactive prompt, runs the line
  zsh-ai-cmd suggest "compress this folder" # one-shot suggestion
  zsh-ai-cmd suggest "disk usage" --pick    # run/edit/copy picker
  zsh-ai-cmd history                        # past suggestions
  zsh-ai-cmd providers                      # backend status`,
	Version:           Version,
	RunE:              runPrompt,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Backend override, \"name\" or \"name:model\" (anthropic, openai, gemini, deepseek, ollama, lmstudio, local, mock)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Record requests and responses to a debug log")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the configuration, running the setup wizard on first use,
// and applies the --provider override and theme.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if config.NeedsSetup() {
		cfg, err = ui.RunSetupWizard()
		if err != nil {
			return nil, fmt.Errorf("setup cancelled: %w", err)
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if flagProvider != "" {
		provider, model, err := llm.ParseProviderModel(flagProvider)
		if err != nil {
			return nil, err
		}
		cfg.ApplyOverrides(provider, model)
	}
	if flagDebug {
		cfg.Debug = true
	}

	ui.InitTheme(cfg.Theme)
	return cfg, nil
}

// buildProvider constructs the configured backend, wrapped with debug
// logging when enabled. The returned closer flushes the log; call it once
// the last request has finished.
func buildProvider(cfg *config.Config, raw bool) (llm.Provider, func(), error) {
	var provider llm.Provider
	var err error
	if raw {
		provider, err = llm.NewRawProvider(cfg)
	} else {
		provider, err = llm.NewProvider(cfg)
	}
	if err != nil {
		return nil, nil, err
	}

	if !cfg.Debug {
		return provider, func() {}, nil
	}

	logger, logErr := llm.NewDebugLogger(config.GetLogDir(), time.Now().Format("20060102-150405"))
	if logErr != nil {
		// Logging is best-effort; the provider still works without it.
		fmt.Fprintf(os.Stderr, "warning: debug log unavailable: %v\n", logErr)
		return provider, func() {}, nil
	}

	return llm.WithLogging(provider, logger), func() { logger.Close() }, nil
}

// runCommand executes a command via the user's shell after the guard check.
// The child's exit code becomes our own.
func runCommand(cfg *config.Config, command string) error {
	guard, err := shell.NewGuard(cfg.Guard.Patterns)
	if err != nil {
		return err
	}
	if pattern := guard.Match(command); pattern != "" {
		confirmed, err := ui.ConfirmRun(command, pattern)
		if err != nil || !confirmed {
			return err
		}
	}

	ui.ShowCommand(ui.DefaultStyles(), command)
	code, err := shell.Run(command, shell.Detect())
	if err != nil {
		return fmt.Errorf("failed to run command: %w", err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// suggestSystem builds the system prompt from the current environment.
func suggestSystem(cfg *config.Config) string {
	workdir, _ := os.Getwd()
	pc := prompt.Context{
		Shell:   shell.Detect(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		WorkDir: workdir,
	}
	if cfg.Context.IncludeListing {
		pc.Listing = prompt.WorkDirListing(workdir, cfg.Context.Ignore, cfg.Context.MaxEntries)
	}
	return prompt.System(pc)
}
