// cmd/dqscore/profile.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile [flags] <file|table>",
	Short: "Profile a dataset and print its quality report",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	profileCmd.Flags().Bool("no-cache", false, "ignore and do not update the report cache")
	addSourceFlags(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	ds, err := loadDataset(cmd.Context(), cmd, args[0])
	if err != nil {
		return err
	}

	var cache *store.Cache
	if !noCache {
		if cache, err = openCache(); err != nil {
			return err
		}
	}

	key := store.Key(converter.Fingerprint(ds), appConfig.MaxRows)
	report, hit, err := cache.Get(key)
	if err != nil {
		logger.Warn("Cache lookup failed", zap.Error(err))
	}
	if !hit {
		report = newProfiler().Analyze(ds)
		if err := cache.Put(key, report); err != nil {
			logger.Warn("Failed to cache report", zap.Error(err))
		}
	}

	if format == "json" {
		return writeJSON(os.Stdout, report)
	}
	printReport(os.Stdout, args[0], report)
	return nil
}
