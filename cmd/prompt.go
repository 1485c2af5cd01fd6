package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/editor"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/history"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

var (
	promptExec    bool
	promptInitial string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactive prompt with ghost-text suggestions",
	Long: `An interactive one-line prompt. Type a description or a partial
command and press ctrl+g for an AI suggestion; it appears as dim ghost
text when it continues your line, or after a marker when it replaces it.
Tab accepts, esc dismisses, enter submits.

The submitted line is printed to stdout, so it composes with the shell:
  $(zsh-ai-cmd)

With --exec the line is executed instead, via your shell.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().BoolVarP(&promptExec, "exec", "x", false, "Execute the submitted line instead of printing it")
	promptCmd.Flags().StringVar(&promptInitial, "initial", "", "Pre-fill the input line")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	// The editor needs a terminal; stdin may be redirected as long as
	// /dev/tty is reachable.
	if !ui.IsTerminal(os.Stdin) {
		tty, err := ui.OpenTTY()
		if err != nil {
			return fmt.Errorf("the interactive prompt needs a terminal; try: zsh-ai-cmd suggest <text>")
		}
		tty.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var store *history.Store
	var seed []string
	if cfg.History.Enabled {
		if path, err := config.HistoryPath(); err == nil {
			if s, err := history.NewStore(path, cfg.History.MaxEntries); err == nil {
				store = s
				defer store.Close()
				seed, _ = store.Commands(ctx, 50)
			}
		}
	}

	var closeLog func()
	opts := editor.Options{
		ResolveProvider: func() (llm.Provider, error) {
			provider, closer, err := buildProvider(cfg, false)
			if err != nil {
				return nil, err
			}
			closeLog = closer
			return provider, nil
		},
		System:  suggestSystem(cfg),
		Timeout: cfg.Timeout(),
		History: seed,
		Initial: promptInitial,
	}

	result, err := editor.Run(opts)
	if closeLog != nil {
		closeLog()
	}
	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	if !result.Submitted {
		return nil
	}

	if store != nil {
		_ = store.Add(ctx, history.Entry{
			Input:    result.Line,
			Command:  result.Line,
			Provider: cfg.Provider,
			Accepted: true,
		})
	}

	if promptExec {
		return runCommand(cfg, result.Line)
	}
	fmt.Println(result.Line)
	return nil
}
