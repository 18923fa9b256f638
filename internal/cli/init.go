package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/config"
	"github.com/example/relay/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var assignee string

	cmd := &cobra.Command{
		Use:   "init <owner/repo>",
		Short: "Initialize relay in the current directory",
		Long: `Create .relay/config.json, the queue directories, and the action ledger
database in the current directory. The argument is the target GitHub
repository in owner/repo form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := config.LoadConfig(cwd); err == nil {
				return fmt.Errorf("relay is already initialized here")
			}

			cfg := config.DefaultConfig(args[0])
			cfg.Assignee = assignee
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}
			fmt.Println("✓ Wrote .relay/config.json")

			for _, dir := range []string{cfg.PendingDir(cwd), cfg.ProcessedDir(cwd)} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			}
			fmt.Printf("✓ Created queue directories under %s\n", cfg.QueueDir)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize ledger database: %w", err)
			}
			fmt.Println("✓ Initialized action ledger at .relay/relay.db")

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  relay doctor")
			fmt.Println("  relay status")
			return nil
		},
	}

	cmd.Flags().StringVar(&assignee, "assignee", "", "actor created issues are assigned to")
	return cmd
}
