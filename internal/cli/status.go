// Package cli contains the cobra command constructors. Commands are thin:
// they call one primary-port operation through wire and render the result.
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/relay/internal/models"
	"github.com/example/relay/internal/wire"
)

// stepCount is the number of stages in one full pipeline pass.
const stepCount = 9

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the pipeline's current stage",
		Long: `Derive and display the pipeline's current stage from fresh queue and
GitHub state. Read-only: status never mutates anything, so it is safe to run
at any time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := wire.LoopService().GetStageSnapshot(context.Background())
			if err != nil {
				return fmt.Errorf("failed to derive stage: %w", err)
			}
			printSnapshot(snapshot)
			return nil
		},
	}
}

func printSnapshot(snapshot *models.StageSnapshot) {
	bold := color.New(color.Bold)
	bold.Printf("Stage: %s", snapshot.Stage)
	fmt.Printf("  (step %d of %d)\n", snapshot.StepIndex+1, stepCount)
	fmt.Printf("%s\n\n", snapshot.StageLabel)

	if snapshot.Focus != nil {
		printFocus(snapshot.Focus)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Pending queue files\t%d\n", snapshot.Counts.Pending)
	fmt.Fprintf(w, "  development\t%d\n", snapshot.Counts.PendingDevelopment)
	fmt.Fprintf(w, "  capability-update\t%d\n", snapshot.Counts.PendingCapabilityUpdates)
	fmt.Fprintf(w, "  excluded\t%d\n", snapshot.Counts.PendingExcluded)
	fmt.Fprintf(w, "Open issues\t%d\n", snapshot.Counts.OpenIssues)
	fmt.Fprintf(w, "  gap-analysis\t%d\n", snapshot.Counts.OpenGapAnalysisIssues)
	fmt.Fprintf(w, "Open pull requests\t%d\n", snapshot.Counts.OpenPullRequests)
	fmt.Fprintf(w, "  ready to merge\t%d\n", snapshot.Counts.ReadyPullRequests)
	w.Flush()

	if snapshot.LastAction != nil {
		fmt.Printf("\nLast action: %s (%s)\n", snapshot.LastAction.Summary,
			snapshot.LastAction.CreatedAt.Format("2006-01-02 15:04"))
	}

	printWarnings(snapshot.Warnings)
}

func printFocus(focus *models.Focus) {
	if focus.Title != "" {
		fmt.Printf("Working: %s\n", focus.Title)
	}
	if focus.IssueNumber != 0 {
		fmt.Printf("  issue #%d  %s\n", focus.IssueNumber, focus.IssueURL)
	}
	if focus.PullRequestNumber != 0 {
		fmt.Printf("  PR #%d  %s\n", focus.PullRequestNumber, focus.PullRequestURL)
	}
	if focus.QueuePath != "" {
		fmt.Printf("  queue file %s\n", focus.QueuePath)
	}
	fmt.Println()
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	yellow := color.New(color.FgYellow)
	fmt.Println()
	for _, warning := range warnings {
		yellow.Printf("⚠ %s\n", warning)
	}
}
