package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/core/queue"
	"github.com/example/relay/internal/wire"
)

// PromoteCmd returns the promote command
func PromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote",
		Short: "Promote the oldest pending queue file to a GitHub issue",
		Long: `Convert the oldest pending queue file into a GitHub issue and move the
file to processed/. Exactly one item is promoted per invocation; files with
the excluded- prefix are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := wire.LoopService().PromoteNextQueueItem(context.Background())
			if errors.Is(err, queue.ErrEmptyQueue) {
				fmt.Println("Queue is empty; nothing to promote")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to promote queue item: %w", err)
			}

			if result.Created {
				fmt.Printf("✓ Promoted to issue #%d: %s\n", result.IssueNumber, result.IssueTitle)
			} else {
				fmt.Printf("✓ Completed earlier promotion of issue #%d\n", result.IssueNumber)
			}
			if result.IssueURL != "" {
				fmt.Printf("  %s\n", result.IssueURL)
			}
			fmt.Printf("  %s -> %s\n", result.QueuePath, result.ProcessedPath)

			printWarnings(result.Warnings)
			return nil
		},
	}
}
