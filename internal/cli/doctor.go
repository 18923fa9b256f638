package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/example/relay/internal/adapters/filesystem"
	"github.com/example/relay/internal/config"
	"github.com/example/relay/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the relay environment",
		Long: `Comprehensive environment health check for relay.

Validates:
- gh CLI installation and authentication
- .relay/config.json presence and contents
- Queue directory structure
- Issue template integrity
- Action ledger database

Examples:
  relay doctor              # Run full health check
  relay doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			results := []CheckResult{
				checkGhBinary(),
				checkGhAuth(),
			}
			cfg, cfgResult := checkConfig(cwd)
			results = append(results, cfgResult)
			if cfg != nil {
				results = append(results, checkQueueDirs(cwd, cfg))
				results = append(results, checkTemplates(cfg))
				results = append(results, checkLedger())
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "exit code only, no output")
	return cmd
}

func checkGhBinary() CheckResult {
	if _, err := exec.LookPath("gh"); err != nil {
		return CheckResult{Name: "gh binary", Status: "✗", Details: "gh not found in PATH; install the GitHub CLI"}
	}
	return CheckResult{Name: "gh binary", Status: "✓"}
}

func checkGhAuth() CheckResult {
	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return CheckResult{Name: "gh auth", Status: "✗", Details: "gh is not authenticated; run `gh auth login`"}
	}
	return CheckResult{Name: "gh auth", Status: "✓"}
}

func checkConfig(cwd string) (*config.Config, CheckResult) {
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil, CheckResult{Name: "config", Status: "✗", Details: "no .relay/config.json; run `relay init <owner/repo>`"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, CheckResult{Name: "config", Status: "✗", Details: err.Error()}
	}
	return cfg, CheckResult{Name: "config", Status: "✓"}
}

func checkQueueDirs(cwd string, cfg *config.Config) CheckResult {
	for _, dir := range []string{cfg.PendingDir(cwd), cfg.ProcessedDir(cwd)} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return CheckResult{Name: "queue dirs", Status: "✗", Details: fmt.Sprintf("%s is missing", dir)}
		}
	}
	return CheckResult{Name: "queue dirs", Status: "✓"}
}

func checkTemplates(cfg *config.Config) CheckResult {
	store := filesystem.NewTemplateStore(cfg.TemplateDir)
	if _, err := store.LoadGapAnalysisTemplate(); err != nil {
		return CheckResult{Name: "templates", Status: "✗", Details: err.Error()}
	}
	if _, err := store.LoadCapabilityUpdateTemplate(); err != nil {
		return CheckResult{Name: "templates", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "templates", Status: "✓"}
}

func checkLedger() CheckResult {
	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "action ledger", Status: "✗", Details: err.Error()}
	}
	if err := database.Ping(); err != nil {
		return CheckResult{Name: "action ledger", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "action ledger", Status: "✓"}
}
