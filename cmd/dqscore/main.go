// cmd/dqscore/main.go
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/David-Botos/data-quality/pkg/config"
)

var (
	appConfig *config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:               "dqscore",
	Short:             "Profile and score the quality of tabular datasets",
	Long:              `dqscore profiles CSV, XLSX, JSON and SQL tables: column types, missing values, duplicates, outliers, a 0-100 quality score and remediation advice`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tablesCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file (default dqscore.toml if present)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-rows", -1, "profile at most this many rows (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and the logger before any subcommand runs
func setup(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	maxRows, err := cmd.Root().PersistentFlags().GetInt("max-rows")
	if err != nil {
		return fmt.Errorf("failed to get max-rows flag: %w", err)
	}
	if maxRows >= 0 {
		cfg.MaxRows = maxRows
	}

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorMode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("unknown color mode: %s", colorMode)
	}

	logger, err = config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	appConfig = cfg
	return nil
}

// isTerminal reports whether the file is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
