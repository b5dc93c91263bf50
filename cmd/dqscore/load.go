// cmd/dqscore/load.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-quality/pkg/connector"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/profiler"
	"github.com/David-Botos/data-quality/pkg/source"
	"github.com/David-Botos/data-quality/pkg/store"
)

// addSourceFlags registers the flags that select a SQL table instead of a file
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "read from a database (postgres|snowflake|sqlite) instead of a file")
	cmd.Flags().String("db", "", "database file for --source sqlite")
	cmd.Flags().Int("limit", 0, "read at most this many rows from a table (0 = all)")
}

// openSource connects to the database named by --source
func openSource(ctx context.Context, cmd *cobra.Command) (connector.DatabaseConnector, error) {
	name, err := cmd.Flags().GetString("source")
	if err != nil {
		return nil, fmt.Errorf("failed to get source flag: %w", err)
	}
	if name == "" {
		return nil, errors.New("--source is required")
	}
	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, fmt.Errorf("failed to get db flag: %w", err)
	}

	factory := connector.NewConnectorFactory(appConfig, logger)
	return factory.CreateSourceConnector(ctx, name, dbPath)
}

// loadDataset reads a dataset from a file, or from a table when --source is set
func loadDataset(ctx context.Context, cmd *cobra.Command, target string) (model.Dataset, error) {
	name, err := cmd.Flags().GetString("source")
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to get source flag: %w", err)
	}
	if name == "" {
		return source.DecodeFile(target)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to get limit flag: %w", err)
	}

	conn, err := openSource(ctx, cmd)
	if err != nil {
		return model.Dataset{}, err
	}
	defer conn.Close()

	return source.NewTableReader(conn, logger).ReadTable(ctx, target, limit)
}

// newProfiler builds a profiler from the loaded configuration
func newProfiler() *profiler.Profiler {
	return profiler.NewProfiler(logger, profiler.Config{MaxRows: appConfig.MaxRows})
}

// openCache builds the report cache from the loaded configuration
func openCache() (*store.Cache, error) {
	return store.NewCache(appConfig.CacheDir, appConfig.CacheSize, logger)
}
