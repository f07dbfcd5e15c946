package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finquant/internal/app"
	"github.com/ternarybob/finquant/internal/common"
)

var (
	// Command-line flags
	configFiles []string
	logLevel    string
	headful     bool

	// Global state
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "finquant",
	Short: "Capture screener.in company fundamentals and price statistics",
	Long: `FinQuant captures a company's disclosure page from screener.in, normalises its
financial tables into JSON artifacts and fuses them with a 30-day price summary.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&headful, "headful", false, "Show the browser window")

	rootCmd.AddCommand(verdictCmd, marketCmd, historyCmd, versionCmd)
}

func main() {
	common.LoadVersionFromFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig runs the startup sequence:
// 1. Load config (defaults -> file1 -> file2 -> ... -> .env -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Initialize logger
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("finquant.toml"); err == nil {
			configFiles = append(configFiles, "finquant.toml")
		} else if _, err := os.Stat("deployments/local/finquant.toml"); err == nil {
			configFiles = append(configFiles, "deployments/local/finquant.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		common.GetLogger().Error().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		return err
	}

	common.ApplyFlagOverrides(config, logLevel, headful)
	logger = common.InitLogger(config)

	logger.Debug().
		Strs("config_files", configFiles).
		Str("log_level", config.Logging.Level).
		Strs("log_output", config.Logging.Output).
		Str("environment", config.Environment).
		Msg("Application configuration loaded")

	return nil
}

// newApp wires the pipeline from the loaded configuration
func newApp() (*app.App, error) {
	application, err := app.New(config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}
