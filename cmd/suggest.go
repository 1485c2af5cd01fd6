package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/clipboard"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/history"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/llm"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/prompt"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/shell"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

var (
	suggestExec    bool
	suggestPick    bool
	suggestExplain bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <text...>",
	Short: "One-shot command suggestion",
	Long: `Translate a description into one shell command and print it.

The spinner runs on the terminal while stdout stays clean, so the output
composes with the shell:
  $(zsh-ai-cmd suggest find go files changed today)

Examples:
  zsh-ai-cmd suggest "compress this folder"
  zsh-ai-cmd suggest "disk usage by directory" --pick
  zsh-ai-cmd suggest "kill whatever is on port 8080" --exec
  zsh-ai-cmd suggest "recursive sed" --explain`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVarP(&suggestExec, "exec", "x", false, "Execute the suggested command")
	suggestCmd.Flags().BoolVarP(&suggestPick, "pick", "p", false, "Choose what to do with the suggestion (run/edit/copy)")
	suggestCmd.Flags().BoolVarP(&suggestExplain, "explain", "e", false, "Also explain what the command does")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	provider, closeLog, err := buildProvider(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	req := llm.Request{System: suggestSystem(cfg), Input: input}
	command, err := ui.RunWithSpinner(ctx, provider, req, cfg.Debug)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("suggestion failed: %s", llm.Describe(err))
	}

	recordSuggestion(cfg, input, command)

	if suggestExplain {
		// A fresh deadline; the suggestion call already spent part of ours.
		explainCtx, cancelExplain := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancelExplain()
		if err := explainCommand(explainCtx, cfg, command); err != nil {
			fmt.Fprintf(os.Stderr, "warning: explain failed: %s\n", llm.Describe(err))
		}
	}

	switch {
	case suggestPick:
		return pickAndRun(cfg, command)
	case suggestExec:
		return runCommand(cfg, command)
	default:
		fmt.Println(command)
		return nil
	}
}

func pickAndRun(cfg *config.Config, command string) error {
	action, err := ui.PickAction(command)
	if err != nil {
		// Esc on the picker is a cancel, not a failure.
		return nil
	}

	switch action {
	case ui.ActionRun:
		markAccepted(cfg, command)
		return runCommand(cfg, command)
	case ui.ActionEdit:
		edited, err := ui.EditCommand(command)
		if err != nil || edited == "" {
			return nil
		}
		markAccepted(cfg, command)
		return runCommand(cfg, edited)
	case ui.ActionCopy:
		markAccepted(cfg, command)
		return clipboard.CopyText(command)
	default:
		return nil
	}
}

// explainCommand makes a second, unsanitized request and renders the
// markdown answer to stderr so stdout stays machine-readable.
func explainCommand(ctx context.Context, cfg *config.Config, command string) error {
	raw, closeLog, err := buildProvider(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	req := llm.Request{
		System: prompt.ExplainSystem(shell.Detect()),
		Input:  prompt.ExplainUser(command),
	}
	explanation, err := ui.RunWithSpinner(ctx, raw, req, cfg.Debug)
	if err != nil {
		return err
	}

	width := ui.TerminalWidth()
	if width > 100 {
		width = 100
	}
	fmt.Fprint(os.Stderr, ui.RenderMarkdown(explanation, width))
	return nil
}

func recordSuggestion(cfg *config.Config, input, command string) {
	if !cfg.History.Enabled {
		return
	}
	path, err := config.HistoryPath()
	if err != nil {
		return
	}
	store, err := history.NewStore(path, cfg.History.MaxEntries)
	if err != nil {
		return
	}
	defer store.Close()
	_ = store.Add(context.Background(), history.Entry{
		Input:    input,
		Command:  command,
		Provider: cfg.Provider,
	})
}

func markAccepted(cfg *config.Config, command string) {
	if !cfg.History.Enabled {
		return
	}
	path, err := config.HistoryPath()
	if err != nil {
		return
	}
	store, err := history.NewStore(path, cfg.History.MaxEntries)
	if err != nil {
		return
	}
	defer store.Close()
	_ = store.MarkAccepted(context.Background(), command)
}
