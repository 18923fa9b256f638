package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/cli"
	"github.com/example/relay/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "relay",
		Short:   "relay - queue-to-merge pipeline driver",
		Version: version.String(),
		Long: `relay drives a GitHub issue/PR pipeline: it derives the current stage
from the planning queue and open issues and PRs, promotes queued work into
issues, keeps the gap-analysis issue healthy, and merges PRs that pass the
readiness gate.`,
	}

	// Read-only views
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Actions
	rootCmd.AddCommand(cli.EnsureGapCmd())
	rootCmd.AddCommand(cli.PromoteCmd())
	rootCmd.AddCommand(cli.MergeCmd())

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
