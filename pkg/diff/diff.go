// pkg/diff/diff.go
package diff

import (
	"errors"
	"fmt"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// Options selects how original and cleaned rows are aligned
type Options struct {
	Mode     model.DiffMode // Defaults to positional
	IDColumn string         // Required for identity mode
}

// Compare diffs two datasets using the alignment selected in opts
func Compare(original, cleaned model.Dataset, opts Options) (model.DiffResult, error) {
	switch opts.Mode {
	case "", model.DiffPositional:
		return Positional(original, cleaned), nil
	case model.DiffIdentity:
		return ByIdentity(original, cleaned, opts.IDColumn)
	default:
		return model.DiffResult{}, fmt.Errorf("unknown diff mode: %s", opts.Mode)
	}
}

// Positional aligns rows by index. Original rows whose exact content still
// exists anywhere in cleaned are skipped; the rest are Removed when cleaned
// has no row at that index, or Changed when any cell differs.
// Cleaned rows past the end of the original are never visited.
func Positional(original, cleaned model.Dataset) model.DiffResult {
	result := model.DiffResult{
		Mode:    model.DiffPositional,
		Removed: make([]model.RemovedRow, 0),
		Changed: make([]model.ChangedRow, 0),
	}

	columns := diffColumns(original, cleaned)
	cleanedKeys := canonicalSet(cleaned.Rows)

	for i, origRow := range original.Rows {
		if _, ok := cleanedKeys[converter.CanonicalRow(origRow)]; ok {
			continue
		}

		if i >= len(cleaned.Rows) {
			result.Removed = append(result.Removed, model.RemovedRow{
				Index:       i,
				OriginalRow: origRow,
			})
			continue
		}

		cleanRow := cleaned.Rows[i]
		if cells := compareCells(columns, origRow, cleanRow); len(cells) > 0 {
			result.Changed = append(result.Changed, model.ChangedRow{
				Index:       i,
				CellDiffs:   cells,
				OriginalRow: origRow,
				CleanedRow:  cleanRow,
			})
		}
	}

	return result
}

// ByIdentity aligns rows by the value of idColumn. Original ids absent from
// cleaned are Removed, matched rows with differing cells are Changed and
// cleaned rows whose id never appeared are Added. Rows without an id fall
// back to exact content matching.
func ByIdentity(original, cleaned model.Dataset, idColumn string) (model.DiffResult, error) {
	if idColumn == "" {
		return model.DiffResult{}, errors.New("identity diff requires an id column")
	}

	result := model.DiffResult{
		Mode:    model.DiffIdentity,
		Removed: make([]model.RemovedRow, 0),
		Changed: make([]model.ChangedRow, 0),
		Added:   make([]model.AddedRow, 0),
	}

	columns := diffColumns(original, cleaned)

	// Index cleaned rows by id; first occurrence wins
	cleanedByID := make(map[string]int, len(cleaned.Rows))
	for i, row := range cleaned.Rows {
		id, ok := rowID(row, idColumn)
		if !ok {
			continue
		}
		if _, exists := cleanedByID[id]; !exists {
			cleanedByID[id] = i
		}
	}
	cleanedKeys := canonicalSet(cleaned.Rows)
	originalKeys := canonicalSet(original.Rows)

	matched := make(map[int]struct{}, len(cleaned.Rows))
	for i, origRow := range original.Rows {
		id, ok := rowID(origRow, idColumn)
		if !ok {
			if _, exists := cleanedKeys[converter.CanonicalRow(origRow)]; !exists {
				result.Removed = append(result.Removed, model.RemovedRow{Index: i, OriginalRow: origRow})
			}
			continue
		}

		j, exists := cleanedByID[id]
		if !exists {
			result.Removed = append(result.Removed, model.RemovedRow{Index: i, OriginalRow: origRow})
			continue
		}
		matched[j] = struct{}{}

		cleanRow := cleaned.Rows[j]
		if cells := compareCells(columns, origRow, cleanRow); len(cells) > 0 {
			result.Changed = append(result.Changed, model.ChangedRow{
				Index:       i,
				CellDiffs:   cells,
				OriginalRow: origRow,
				CleanedRow:  cleanRow,
			})
		}
	}

	for j, cleanRow := range cleaned.Rows {
		if _, ok := matched[j]; ok {
			continue
		}
		if _, ok := rowID(cleanRow, idColumn); !ok {
			if _, exists := originalKeys[converter.CanonicalRow(cleanRow)]; exists {
				continue
			}
		}
		result.Added = append(result.Added, model.AddedRow{Index: j, CleanedRow: cleanRow})
	}

	return result, nil
}

// diffColumns resolves the compared columns from the original, falling back to cleaned
func diffColumns(original, cleaned model.Dataset) []string {
	if len(original.Rows) > 0 || len(original.Columns) > 0 {
		if columns := original.ColumnNames(); len(columns) > 0 {
			return columns
		}
	}
	return cleaned.ColumnNames()
}

// canonicalSet indexes rows by their canonical serialized form
func canonicalSet(rows []model.Row) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		set[converter.CanonicalRow(row)] = struct{}{}
	}
	return set
}

// rowID reads the identity cell of a row
func rowID(row model.Row, idColumn string) (string, bool) {
	if row == nil {
		return "", false
	}
	value := row[idColumn]
	if converter.IsMissing(value) {
		return "", false
	}
	return converter.NormalizeKey(value), true
}

// compareCells returns the per-column differences of two rows by string form;
// nil compares equal to ""
func compareCells(columns []string, origRow, cleanRow model.Row) map[string]model.CellDiff {
	var cells map[string]model.CellDiff
	for _, col := range columns {
		before := cell(origRow, col)
		after := cell(cleanRow, col)
		if converter.ToString(before) == converter.ToString(after) {
			continue
		}
		if cells == nil {
			cells = make(map[string]model.CellDiff)
		}
		cells[col] = model.CellDiff{Before: before, After: after}
	}
	return cells
}

func cell(row model.Row, col string) interface{} {
	if row == nil {
		return nil
	}
	return row[col]
}

// MissingSummary compares missing counts per column before and after cleaning.
// Percentages are relative to each dataset's own row count.
func MissingSummary(original, cleaned model.Dataset) []model.MissingDelta {
	columns := diffColumns(original, cleaned)
	deltas := make([]model.MissingDelta, 0, len(columns))

	for _, col := range columns {
		before := countMissing(original.Values(col))
		after := countMissing(cleaned.Values(col))
		deltas = append(deltas, model.MissingDelta{
			Column:           col,
			BeforeMissing:    before,
			AfterMissing:     after,
			BeforeTotal:      original.Len(),
			AfterTotal:       cleaned.Len(),
			BeforeMissingPct: converter.Percent(before, original.Len()),
			AfterMissingPct:  converter.Percent(after, cleaned.Len()),
		})
	}
	return deltas
}

func countMissing(values []interface{}) int {
	n := 0
	for _, v := range values {
		if converter.IsMissing(v) {
			n++
		}
	}
	return n
}
