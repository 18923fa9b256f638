package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/example/relay/internal/wire"
)

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-derive the stage when the queue changes",
		Long: `Watch the pending queue directory and re-derive the stage on every
change, plus on a fixed interval to pick up GitHub-side changes. Watch is
read-only, like status. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			pendingDir := wire.Config().PendingDir(cwd)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(pendingDir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", pendingDir, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			refresh := func() {
				snapshot, err := wire.LoopService().GetStageSnapshot(ctx)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to derive stage: %v\n", err)
					return
				}
				fmt.Print("\033[H\033[2J")
				printSnapshot(snapshot)
				fmt.Printf("\nWatching %s (refresh every %s, Ctrl-C to stop)\n", pendingDir, interval)
			}

			refresh()
			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
						refresh()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
				case <-ticker.C:
					refresh()
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 60*time.Second, "periodic refresh interval")
	return cmd
}
