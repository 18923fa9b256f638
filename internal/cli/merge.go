package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/relay/internal/core/merge"
	"github.com/example/relay/internal/wire"
)

// MergeCmd returns the merge command
func MergeCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the highest-priority ready pull request",
		Long: `Evaluate every open pull request against the readiness gate and merge at
most one: the highest-priority ready PR (capability-update before
gap-analysis before development, lowest number within a category).

A merged development PR spawns its capability-update follow-up issue.

Use --dry-run to see the evaluation without merging anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if dryRun {
				return runMergeDryRun(ctx)
			}

			result, err := wire.LoopService().MergeNextReadyPullRequest(ctx)
			if errors.Is(err, merge.ErrNoReadyPullRequest) {
				fmt.Println("No pull request is ready to merge")
				return nil
			}
			var refused *merge.RefusedError
			if errors.As(err, &refused) {
				color.New(color.FgRed).Printf("✗ Refused to merge PR #%d:\n", refused.Number)
				for _, reason := range refused.Reasons {
					fmt.Printf("  - %s\n", reason)
				}
				return err
			}
			if err != nil {
				return fmt.Errorf("failed to merge: %w", err)
			}

			fmt.Printf("✓ Merged %s PR #%d (%s)\n", result.Category, result.PullRequestNumber, result.MergeSHA)
			if result.BranchDeleted {
				fmt.Println("  head branch deleted")
			}
			if result.CapabilityIssueNumber != 0 {
				fmt.Printf("  capability-update issue #%d\n", result.CapabilityIssueNumber)
				if result.CapabilityIssueURL != "" {
					fmt.Printf("  %s\n", result.CapabilityIssueURL)
				}
			}

			printWarnings(result.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate readiness without merging")
	return cmd
}

func runMergeDryRun(ctx context.Context) error {
	readiness, err := wire.LoopService().ListReadiness(ctx)
	if err != nil {
		return fmt.Errorf("failed to evaluate pull requests: %w", err)
	}
	if len(readiness) == 0 {
		fmt.Println("No open pull requests")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PR\tCATEGORY\tREADY\tBLOCKERS")
	for _, entry := range readiness {
		status := green("yes")
		if !entry.Ready {
			status = red("no")
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n",
			entry.PullRequest.Number,
			entry.PullRequest.Category,
			status,
			strings.Join(entry.Reasons, ", "),
		)
	}
	return w.Flush()
}
