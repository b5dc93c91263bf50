// cmd/dqscore/diff.go
package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/diff"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/source"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <original> <cleaned>",
	Short: "Compare an original dataset with a cleaned variant",
	Long:  `Compare two dataset files row by row. Positional mode pairs rows by index; identity mode pairs them by an id column such as the one written by "clean --tag-ids".`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	addDiffFlags(diffCmd)
}

func addDiffFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", string(model.DiffPositional), "row alignment (positional|identity)")
	cmd.Flags().String("id-column", "", "id column for identity mode (detected when empty)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDiff(cmd *cobra.Command, args []string) error {
	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	idColumn, err := cmd.Flags().GetString("id-column")
	if err != nil {
		return fmt.Errorf("failed to get id-column flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	original, err := source.DecodeFile(args[0])
	if err != nil {
		return err
	}
	cleaned, err := source.DecodeFile(args[1])
	if err != nil {
		return err
	}

	opts := diff.Options{Mode: model.DiffMode(mode), IDColumn: idColumn}
	if opts.Mode == model.DiffIdentity && opts.IDColumn == "" {
		opts.IDColumn = diff.DetectIDColumn(original, cleaned)
		if opts.IDColumn == "" {
			return errors.New(`no id column found; pass --id-column or tag rows with "clean --tag-ids"`)
		}
		logger.Info("Detected id column", zap.String("column", opts.IDColumn))
	}

	// Positional diffs misattribute every row after a deletion
	if opts.Mode == model.DiffPositional && cleaned.Len() < original.Len() {
		logger.Warn("Cleaned dataset has fewer rows; positional diff may misalign rows, consider --mode identity",
			zap.Int("originalRows", original.Len()),
			zap.Int("cleanedRows", cleaned.Len()))
	}

	result, err := diff.Compare(original, cleaned, opts)
	if err != nil {
		return fmt.Errorf("failed to compare datasets: %w", err)
	}
	deltas := diff.MissingSummary(original, cleaned)

	out := cmd.OutOrStdout()
	if format == "json" {
		return writeJSON(out, struct {
			Diff    model.DiffResult     `json:"diff"`
			Missing []model.MissingDelta `json:"missing"`
		}{result, deltas})
	}
	printDiff(out, result, deltas)
	return nil
}

// sortedKeys returns the map keys in lexical order
func sortedKeys(m map[string]model.CellDiff) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
