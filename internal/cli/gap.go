package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/wire"
)

// EnsureGapCmd returns the ensure-gap command
func EnsureGapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-gap",
		Short: "Ensure exactly one open gap-analysis issue exists",
		Long: `Create the gap-analysis issue if none is open, repair a known-unsafe
legacy body in place, and otherwise do nothing. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := wire.LoopService().EnsureGapAnalysisIssue(context.Background())
			if err != nil {
				return fmt.Errorf("failed to ensure gap-analysis issue: %w", err)
			}

			switch {
			case result.Created:
				fmt.Printf("✓ Created gap-analysis issue #%d\n", result.IssueNumber)
			case result.Repaired:
				fmt.Printf("✓ Repaired gap-analysis issue #%d\n", result.IssueNumber)
			default:
				fmt.Printf("Gap-analysis issue #%d already open; nothing to do\n", result.IssueNumber)
			}
			if result.IssueURL != "" {
				fmt.Printf("  %s\n", result.IssueURL)
			}

			printWarnings(result.Warnings)
			return nil
		},
	}
}
