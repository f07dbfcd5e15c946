package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/common"
	"github.com/ternarybob/finquant/internal/interfaces"
	"github.com/ternarybob/finquant/internal/services/artifacts"
	"github.com/ternarybob/finquant/internal/services/market"
	"github.com/ternarybob/finquant/internal/services/screener"
	"github.com/ternarybob/finquant/internal/services/verdict"
	"github.com/ternarybob/finquant/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Archive is nil unless [storage.badger] enabled = true
	Archive interfaces.ArchiveStorage

	Sessions  *screener.ChromeSessionFactory
	Assembler *screener.Assembler
	Writer    *artifacts.Writer
	Market    *market.Fetcher
	Builder   *verdict.Builder
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initArchive(); err != nil {
		return nil, fmt.Errorf("failed to initialize archive: %w", err)
	}

	app.initServices()

	logger.Debug().
		Str("snapshot_dir", cfg.Output.SnapshotDir).
		Str("report_dir", cfg.Output.ReportDir).
		Bool("headless", cfg.Screener.Headless).
		Bool("archive_enabled", app.Archive != nil).
		Msg("Application initialization complete")

	return app, nil
}

// initArchive opens the Badger verdict archive when enabled
func (a *App) initArchive() error {
	if !a.Config.Storage.Badger.Enabled {
		return nil
	}

	archive, err := badger.OpenArchive(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.Archive = archive

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Archive initialized")
	return nil
}

// initServices builds the pipeline components in dependency order
func (a *App) initServices() {
	a.Sessions = screener.NewChromeSessionFactory(a.Config.Screener, a.Logger)
	a.Assembler = screener.NewAssembler(a.Logger)
	a.Writer = artifacts.NewWriter(a.Config.Output.SnapshotDir, a.Config.Output.ReportDir, a.Logger)
	a.Market = market.NewYahooFetcher(a.Config.Market, a.Logger)

	opts := []verdict.Option{verdict.WithSnapshotBudget(a.Config.Output.SnapshotBudget)}
	if a.Archive != nil {
		opts = append(opts, verdict.WithArchive(a.Archive))
	}
	a.Builder = verdict.NewBuilder(a.Sessions, a.Assembler, a.Writer, a.Market, a.Logger, opts...)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.Archive != nil {
		if err := a.Archive.Close(); err != nil {
			return fmt.Errorf("failed to close archive: %w", err)
		}
		a.Logger.Debug().Msg("Archive closed")
	}
	return nil
}
