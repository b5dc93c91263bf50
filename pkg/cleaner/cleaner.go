// pkg/cleaner/cleaner.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// DefaultIDColumn is the column that carries generated row identities
const DefaultIDColumn = "_row_id"

// Recorder persists the operations of a cleaning pass
type Recorder interface {
	RecordCleaningOperations(ctx context.Context, operations []model.CleaningOperation) error
}

// Options selects the cleaning steps
type Options struct {
	DatasetName   string   // Recorded on every operation
	ImputeMissing bool     // Median for numeric columns, "" elsewhere
	CoerceNumbers bool     // Numeric strings in integer/number columns become numbers
	NormalizeText bool     // Trim, collapse inner whitespace, NFC
	CaseMode      CaseMode // Applied when NormalizeText is set
	IDColumn      string   // Row id column skipped by every step
}

// DefaultOptions mirrors the auto-clean export: impute only
func DefaultOptions() Options {
	return Options{
		ImputeMissing: true,
		CaseMode:      CaseNone,
		IDColumn:      DefaultIDColumn,
	}
}

// AutoCleaner produces a cleaned copy of a dataset and an audit of every change
type AutoCleaner struct {
	logger   *zap.Logger
	recorder Recorder
	opts     Options
	now      func() time.Time
}

// NewAutoCleaner creates a new AutoCleaner. recorder may be nil.
func NewAutoCleaner(logger *zap.Logger, recorder Recorder, opts Options) (*AutoCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if opts.CaseMode == "" {
		opts.CaseMode = CaseNone
	}
	if _, err := caserFor(opts.CaseMode); err != nil {
		return nil, err
	}

	return &AutoCleaner{
		logger:   logger,
		recorder: recorder,
		opts:     opts,
		now:      time.Now,
	}, nil
}

// Clean returns a cleaned deep copy of ds; the input is never modified.
// Operations are returned even when recording them fails.
func (c *AutoCleaner) Clean(ctx context.Context, ds model.Dataset) (model.Dataset, []model.CleaningOperation, error) {
	cleaned := ds.Clone()
	if len(cleaned.Columns) == 0 {
		cleaned.Columns = ds.ColumnNames()
	}

	var operations []model.CleaningOperation
	for _, col := range cleaned.ColumnNames() {
		if col == c.opts.IDColumn {
			continue
		}

		if c.opts.CoerceNumbers {
			operations = append(operations, c.coerceColumn(cleaned, col)...)
		}
		if c.opts.ImputeMissing {
			operations = append(operations, c.imputeColumn(cleaned, col)...)
		}
		if c.opts.NormalizeText {
			ops, err := c.normalizeColumn(cleaned, col)
			if err != nil {
				return model.Dataset{}, nil, err
			}
			operations = append(operations, ops...)
		}
	}

	c.logger.Info("Cleaned dataset",
		zap.String("dataset", c.opts.DatasetName),
		zap.Int("rows", cleaned.Len()),
		zap.Int("operations", len(operations)),
		zap.Any("by_operation", countByOperation(operations)))

	// If operations were performed, record them
	if c.recorder != nil && len(operations) > 0 {
		if err := c.recorder.RecordCleaningOperations(ctx, operations); err != nil {
			return cleaned, operations, fmt.Errorf("failed to record cleaning operations: %w", err)
		}
	}

	return cleaned, operations, nil
}

// operation builds an audit record for a cell change
func (c *AutoCleaner) operation(
	row model.Row,
	rowIndex int,
	column string,
	original, updated interface{},
	op, reason string,
) model.CleaningOperation {
	var rowID string
	if c.opts.IDColumn != "" && row != nil {
		if id, ok := row[c.opts.IDColumn]; ok && !converter.IsMissing(id) {
			rowID = converter.ToString(id)
		}
	}

	return model.CleaningOperation{
		Dataset:           c.opts.DatasetName,
		ColumnName:        column,
		RowIndex:          rowIndex,
		RowIdentifier:     rowID,
		OriginalValue:     original,
		NewValue:          updated,
		CleaningOperation: op,
		CleaningReason:    reason,
		CleanedAt:         c.now().UTC(),
	}
}

// countByOperation tallies operations for logging
func countByOperation(operations []model.CleaningOperation) map[string]int {
	counts := make(map[string]int)
	for _, op := range operations {
		counts[op.CleaningOperation]++
	}
	return counts
}
