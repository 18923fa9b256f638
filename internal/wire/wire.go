// Package wire provides dependency injection for the relay application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/example/relay/internal/adapters/filesystem"
	"github.com/example/relay/internal/adapters/github"
	"github.com/example/relay/internal/adapters/sqlite"
	"github.com/example/relay/internal/app"
	"github.com/example/relay/internal/config"
	"github.com/example/relay/internal/db"
	"github.com/example/relay/internal/ports/primary"
)

var (
	cfg           *config.Config
	loopService   primary.LoopService
	ledgerService primary.LedgerService
	once          sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// LoopService returns the singleton LoopService instance.
func LoopService() primary.LoopService {
	once.Do(initServices)
	return loopService
}

// LedgerService returns the singleton LedgerService instance.
func LedgerService() primary.LedgerService {
	once.Do(initServices)
	return ledgerService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.LoadConfig(cwd)
	if err != nil {
		log.Fatalf("no relay configuration found (run `relay init` first): %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	gateway := github.NewGateway(cfg.Repository, time.Duration(cfg.GhTimeoutSeconds)*time.Second)
	queueStore := filesystem.NewQueueStore(cfg.PendingDir(cwd), cfg.ProcessedDir(cwd))
	templateStore := filesystem.NewTemplateStore(cfg.TemplateDir)
	ledger := sqlite.NewLedgerRepository(database)

	// Primary services
	snapshot := app.NewSnapshotService(gateway, queueStore, ledger)
	gapSvc := app.NewGapService(gateway, templateStore, ledger, cfg.Assignee)
	promote := app.NewPromoteService(gateway, queueStore, ledger, cfg.Assignee)
	mergeSvc := app.NewMergeService(gateway, templateStore, ledger, cfg.MergeMethod, cfg.DeleteMergedBranches, cfg.Assignee)

	loopService = app.NewLoopService(snapshot, gapSvc, promote, mergeSvc)
	ledgerService = app.NewLedgerService(ledger)
}
