package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/config"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/history"
	"github.com/kylesnowschwartz/zsh-ai-cmd/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Past suggestions",
	Long: `List, search or clear the suggestion history.

Examples:
  zsh-ai-cmd history
  zsh-ai-cmd history -n 50
  zsh-ai-cmd history search docker
  zsh-ai-cmd history clear`,
	RunE: runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Fuzzy-search past suggestions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistorySearch,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show")
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.NewStore(path, 0)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Search(context.Background(), strings.Join(args, " "), historyLimit)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Printf("Cleared %d entries\n", count)
	return nil
}

func printEntries(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println("No history yet")
		return
	}

	st := ui.NewStyles(os.Stdout)
	highlighter := ui.NewCommandHighlighter()
	width := ui.TerminalWidth()

	for _, e := range entries {
		marker := " "
		if e.Accepted {
			marker = st.Success.Render("✓")
		}
		line := fmt.Sprintf("%s %s  %s",
			st.Muted.Render(e.CreatedAt.Format("Jan 02 15:04")),
			marker,
			highlighter.Highlight(e.Command),
		)
		fmt.Println(truncate.StringWithTail(line, uint(width), "…"))

		if e.Input != "" && e.Input != e.Command {
			detail := "    " + st.Muted.Render("from: "+e.Input)
			fmt.Println(truncate.StringWithTail(detail, uint(width), "…"))
		}
	}
}
