// cmd/dqscore/clean.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/David-Botos/data-quality/pkg/cleaner"
	"github.com/David-Botos/data-quality/pkg/connector"
	"github.com/David-Botos/data-quality/pkg/diff"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/source"
	"github.com/David-Botos/data-quality/pkg/store"
)

const defaultIDColumn = cleaner.DefaultIDColumn

var cleanCmd = &cobra.Command{
	Use:   "clean [flags] <file|table>",
	Short: "Auto-clean a dataset and export it as CSV",
	Long:  `Fill missing values (column median for numeric columns, empty text elsewhere), optionally normalize text, and write the cleaned dataset as CSV.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringP("out", "o", "", "output CSV path (default <name>_cleaned.csv)")
	cleanCmd.Flags().Bool("normalize", false, "trim and collapse whitespace in text cells")
	cleanCmd.Flags().String("case", string(cleaner.CaseNone), "letter case for normalized text (none|lower|upper|title)")
	cleanCmd.Flags().Bool("coerce-numbers", false, "convert numeric strings in numeric columns to numbers")
	cleanCmd.Flags().Bool("no-impute", false, "leave missing values untouched")
	cleanCmd.Flags().Bool("tag-ids", false, "add a "+defaultIDColumn+" column so later diffs can use --mode identity")
	cleanCmd.Flags().Bool("audit", false, "record every change in the configured audit database")
	addSourceFlags(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	out, err := flags.GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	normalize, err := flags.GetBool("normalize")
	if err != nil {
		return fmt.Errorf("failed to get normalize flag: %w", err)
	}
	caseMode, err := flags.GetString("case")
	if err != nil {
		return fmt.Errorf("failed to get case flag: %w", err)
	}
	coerce, err := flags.GetBool("coerce-numbers")
	if err != nil {
		return fmt.Errorf("failed to get coerce-numbers flag: %w", err)
	}
	noImpute, err := flags.GetBool("no-impute")
	if err != nil {
		return fmt.Errorf("failed to get no-impute flag: %w", err)
	}
	tagIDs, err := flags.GetBool("tag-ids")
	if err != nil {
		return fmt.Errorf("failed to get tag-ids flag: %w", err)
	}
	audit, err := flags.GetBool("audit")
	if err != nil {
		return fmt.Errorf("failed to get audit flag: %w", err)
	}

	name := filepath.Base(args[0])
	if out == "" {
		out = strings.TrimSuffix(name, filepath.Ext(name)) + "_cleaned.csv"
	}

	ds, err := loadDataset(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	var operations []model.CleaningOperation
	if tagIDs {
		var tagOps []model.CleaningOperation
		ds, tagOps = cleaner.TagRowIDs(ds, defaultIDColumn, name)
		operations = append(operations, tagOps...)
	}

	var recorder cleaner.Recorder
	if audit {
		conn, err := connector.NewConnectorFactory(appConfig, logger).CreateAuditConnector(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		sink, err := store.NewAuditSink(ctx, conn, logger)
		if err != nil {
			return err
		}
		recorder = sink
	}

	if recorder != nil && len(operations) > 0 {
		if err := recorder.RecordCleaningOperations(ctx, operations); err != nil {
			return fmt.Errorf("failed to record row id operations: %w", err)
		}
	}

	opts := cleaner.Options{
		DatasetName:   name,
		ImputeMissing: !noImpute,
		CoerceNumbers: coerce,
		NormalizeText: normalize,
		CaseMode:      cleaner.CaseMode(caseMode),
		IDColumn:      defaultIDColumn,
	}
	c, err := cleaner.NewAutoCleaner(logger, recorder, opts)
	if err != nil {
		return err
	}

	cleaned, cleanOps, err := c.Clean(ctx, ds)
	if err != nil {
		return err
	}
	operations = append(operations, cleanOps...)

	if err := source.ExportCSVFile(out, cleaned); err != nil {
		return err
	}

	before := newProfiler().Analyze(ds)
	after := newProfiler().Analyze(cleaned)

	fmt.Fprintf(os.Stdout, "Wrote %s (%d rows, %d changes)\n", out, cleaned.Len(), len(operations))
	fmt.Fprint(os.Stdout, "Quality score: ")
	scoreColor(before.Score.Final).Fprintf(os.Stdout, "%d", before.Score.Final)
	fmt.Fprint(os.Stdout, " -> ")
	scoreColor(after.Score.Final).Fprintf(os.Stdout, "%d\n\n", after.Score.Final)

	diffOpts := diff.Options{Mode: model.DiffPositional}
	if tagIDs {
		diffOpts = diff.Options{Mode: model.DiffIdentity, IDColumn: defaultIDColumn}
	}
	result, err := diff.Compare(ds, cleaned, diffOpts)
	if err != nil {
		return fmt.Errorf("failed to compare datasets: %w", err)
	}
	printDiff(os.Stdout, result, diff.MissingSummary(ds, cleaned))
	return nil
}
