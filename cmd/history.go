package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Norgate-AV/issbuild/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const noBuildsRecorded = "No builds recorded"

var historyCmd = &cobra.Command{
	Use:          "history [project]",
	Short:        "List recorded builds",
	RunE:         runHistoryList,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

var historyClearCmd = &cobra.Command{
	Use:          "clear [project]",
	Short:        "Remove all recorded builds",
	RunE:         runHistoryClear,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

var historyStatsCmd = &cobra.Command{
	Use:          "stats [project]",
	Short:        "Show build history statistics",
	RunE:         runHistoryStats,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of builds to list (0 for all)")

	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatsCmd)
}

// openHistory opens the history store of the project given in args. It
// returns a nil store when no build has been recorded there yet, so reading
// the history never creates it.
func openHistory(args []string) (*history.Store, error) {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	dir := historyDir(abs)
	if !history.Exists(dir) {
		return nil, nil
	}

	return history.Open(dir)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openHistory(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if store == nil {
		fmt.Fprintln(out, noBuildsRecorded)
		return nil
	}
	defer store.Close()

	entries, err := store.List(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, noBuildsRecorded)
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, e := range entries {
		status := green("ok    ")
		if !e.Success {
			status = red(fmt.Sprintf("%-6s", "failed"))
		}

		fmt.Fprintf(out, "%s  %s  %s %s (%s)  %s",
			e.Timestamp.Local().Format(time.DateTime),
			status,
			e.ProductName,
			e.Version,
			e.Target,
			e.Duration.Round(time.Millisecond),
		)

		if e.ErrorKind != "" {
			fmt.Fprintf(out, "  %s", e.ErrorKind)
		}

		fmt.Fprintln(out)
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory(args)
	if err != nil {
		return err
	}

	if store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), noBuildsRecorded)
		return nil
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Build history cleared")
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openHistory(args)
	if err != nil {
		return err
	}

	if store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), noBuildsRecorded)
		return nil
	}
	defer store.Close()

	total, succeeded, err := store.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Builds:    %d\n", total)
	fmt.Fprintf(out, "Succeeded: %d\n", succeeded)
	fmt.Fprintf(out, "Failed:    %d\n", total-succeeded)

	if last, err := store.Last(); err == nil && last != nil {
		fmt.Fprintf(out, "Last:      %s %s at %s\n", last.ProductName, last.Version, last.Timestamp.Local().Format(time.DateTime))
	}

	return nil
}
