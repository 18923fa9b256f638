package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded pipeline actions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := wire.LedgerService().History(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No actions recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tKIND\tSUMMARY")
			for _, event := range events {
				when := event.CreatedAt.Format("2006-01-02 15:04")
				fmt.Fprintf(w, "%s\t%s\t%s\n", when, event.Kind, event.Summary)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of actions to show")
	return cmd
}
