// cmd/dqscore/batch.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-quality/pkg/batch"
	"github.com/David-Botos/data-quality/pkg/source"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <file|table>...",
	Short: "Profile many datasets concurrently and rank them by quality",
	Long:  `Profile several files, or several tables when --source is set, with a bounded worker pool. Datasets are listed worst score first.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().Int("workers", 0, "max datasets profiled at once (0 = config or CPU count)")
	batchCmd.Flags().Bool("all-tables", false, "with --source, profile every table in the schema")
	batchCmd.Flags().String("include", "", "with --all-tables, only tables matching this pattern (LIKE or glob)")
	batchCmd.Flags().String("exclude", "", "with --all-tables, skip tables matching this pattern")
	batchCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addSourceFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	workers, err := flags.GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers flag: %w", err)
	}
	if workers <= 0 {
		workers = appConfig.WorkerPoolSize
	}
	allTables, err := flags.GetBool("all-tables")
	if err != nil {
		return fmt.Errorf("failed to get all-tables flag: %w", err)
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	sourceName, err := flags.GetString("source")
	if err != nil {
		return fmt.Errorf("failed to get source flag: %w", err)
	}

	var jobs []batch.Job
	if sourceName == "" {
		for _, path := range args {
			jobs = append(jobs, batch.NewFileJob(path))
		}
	} else {
		limit, err := flags.GetInt("limit")
		if err != nil {
			return fmt.Errorf("failed to get limit flag: %w", err)
		}
		conn, err := openSource(ctx, cmd)
		if err != nil {
			return err
		}
		defer conn.Close()

		tables := args
		if allTables {
			include, err := flags.GetString("include")
			if err != nil {
				return fmt.Errorf("failed to get include flag: %w", err)
			}
			exclude, err := flags.GetString("exclude")
			if err != nil {
				return fmt.Errorf("failed to get exclude flag: %w", err)
			}
			listed, err := conn.ListTables(ctx)
			if err != nil {
				return err
			}
			tables = batch.FilterTables(listed, include, exclude)
		}
		reader := source.NewTableReader(conn, logger)
		for _, name := range tables {
			jobs = append(jobs, batch.NewTableJob(reader, name, limit))
		}
	}
	if len(jobs) == 0 {
		return errors.New("no datasets given")
	}

	cache, err := openCache()
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(logger, newProfiler(), cache, workers)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, jobs)
	if err != nil {
		return fmt.Errorf("batch run interrupted: %w", err)
	}

	if format == "json" {
		type entry struct {
			Name     string   `json:"name"`
			Success  bool     `json:"success"`
			Score    int      `json:"score"`
			CacheHit bool     `json:"cacheHit"`
			Errors   []string `json:"errors,omitempty"`
		}
		entries := make([]entry, 0, len(summary.Results))
		for _, r := range summary.Results {
			e := entry{Name: r.Name, Success: r.Success, Score: r.Score(), CacheHit: r.CacheHit}
			for _, rec := range r.Errors {
				e.Errors = append(e.Errors, rec.String())
			}
			entries = append(entries, e)
		}
		return writeJSON(os.Stdout, entries)
	}

	t := &table{}
	t.add("DATASET", "SCORE", "ROWS", "COLUMNS", "CACHED")
	for _, r := range summary.Ranked() {
		t.add(r.Name,
			scoreColor(r.Score()).Sprint(r.Score()),
			fmt.Sprint(r.Report.RowCount),
			fmt.Sprint(len(r.Report.Columns)),
			fmt.Sprint(r.CacheHit))
	}
	t.render(os.Stdout)

	for _, r := range summary.Results {
		for _, rec := range r.Errors {
			poorColor.Fprintln(os.Stdout, rec.String())
		}
	}
	fmt.Fprint(os.Stdout, runner.Metrics().GenerateReport())
	return nil
}
