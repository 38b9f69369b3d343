package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/cohort/cmd/cohort/ui"
	"github.com/tsawler/cohort/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded deployment config
	cfg config.Config

	// Logger
	logger *zap.Logger

	// runID tags every log line of one invocation.
	runID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cohort",
	Short: "cohort - student group allocation",
	Long: `cohort splits a student roster into groups, balanced across academic
branches or packed uniformly, and reports a per-branch summary of each
grouping.

Rosters can be XLSX workbooks, CSV/TSV files, HTML pages, or scanned images
(with the ocr build tag). Branch codes are read from roll numbers: the first
two consecutive capital letters, e.g. 21CS001 -> CS.

Run without arguments to start the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for the dashboard (it has its own UI)
		if cmd.Use == "cohort" && cmd.CalledAs() == "cohort" {
			return nil
		}

		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		runID = uuid.NewString()
		logger = logger.With(zap.String("run_id", runID))

		cfg, err = loadConfig()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		return ui.Run(cfg)
	},
}

// loadConfig reads the deployment config file. An explicit --config path must
// exist; the default path is optional.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadIfPresent("cohort.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: cohort.yaml if present)")

	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(splitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
