// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// CaseMode is the letter case applied during text normalization
type CaseMode string

const (
	CaseNone  CaseMode = "none"
	CaseLower CaseMode = "lower"
	CaseUpper CaseMode = "upper"
	CaseTitle CaseMode = "title"
)

// caserFor resolves a case mode; nil means leave case untouched
func caserFor(mode CaseMode) (*cases.Caser, error) {
	var c cases.Caser
	switch mode {
	case CaseNone:
		return nil, nil
	case CaseLower:
		c = cases.Lower(language.Und)
	case CaseUpper:
		c = cases.Upper(language.Und)
	case CaseTitle:
		c = cases.Title(language.Und)
	default:
		return nil, fmt.Errorf("unknown case mode: %s", mode)
	}
	return &c, nil
}

// Median returns the middle element of the sorted numbers (upper middle for even counts)
func Median(nums []float64) (float64, bool) {
	if len(nums) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2], true
}

// imputeColumn fills missing cells with the column median when the column
// holds native numbers, otherwise with ""
func (c *AutoCleaner) imputeColumn(ds model.Dataset, col string) []model.CleaningOperation {
	var nums []float64
	for _, v := range ds.Values(col) {
		if converter.IsNumericCell(v) {
			n, _ := converter.ToNumber(v)
			nums = append(nums, n)
		}
	}
	median, hasMedian := Median(nums)

	var operations []model.CleaningOperation
	for i, row := range ds.Rows {
		if row == nil {
			row = model.Row{}
			ds.Rows[i] = row
		}
		original, exists := row[col]
		if !converter.IsMissing(original) {
			continue
		}

		if hasMedian {
			row[col] = median
			operations = append(operations,
				c.operation(row, i, col, original, median, model.OpMedianImputation, "missing_value"))
			continue
		}

		row[col] = ""
		// "" to "" is not a change
		if exists && original != nil {
			continue
		}
		operations = append(operations,
			c.operation(row, i, col, original, "", model.OpBlankFill, "missing_value"))
	}
	return operations
}

// coerceColumn converts numeric strings to numbers in columns inferred as integer or number
func (c *AutoCleaner) coerceColumn(ds model.Dataset, col string) []model.CleaningOperation {
	colType := converter.InferColumnType(ds.Values(col))
	if colType != model.TypeInteger && colType != model.TypeNumber {
		return nil
	}

	var operations []model.CleaningOperation
	for i, row := range ds.Rows {
		if row == nil {
			continue
		}
		s, ok := row[col].(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		n, ok := converter.ToNumber(s)
		if !ok || !converter.IsFinite(n) {
			continue
		}
		row[col] = n
		operations = append(operations,
			c.operation(row, i, col, s, n, model.OpTypeStandardize, "converted_to_number"))
	}
	return operations
}

// normalizeColumn cleans whitespace, Unicode form and case of text cells
func (c *AutoCleaner) normalizeColumn(ds model.Dataset, col string) ([]model.CleaningOperation, error) {
	caser, err := caserFor(c.opts.CaseMode)
	if err != nil {
		return nil, err
	}

	var operations []model.CleaningOperation
	for i, row := range ds.Rows {
		if row == nil {
			continue
		}
		s, ok := row[col].(string)
		if !ok || s == "" {
			continue
		}
		normalized := NormalizeText(s, caser)
		if normalized == s {
			continue
		}
		row[col] = normalized
		operations = append(operations,
			c.operation(row, i, col, s, normalized, model.OpStringNormalize, "whitespace_or_case"))
	}
	return operations, nil
}

// NormalizeText trims, collapses inner whitespace, applies NFC and an optional case mapping
func NormalizeText(s string, caser *cases.Caser) string {
	out := strings.Join(strings.Fields(norm.NFC.String(s)), " ")
	if caser != nil {
		out = caser.String(out)
	}
	return out
}

// TagRowIDs returns a copy of ds whose idColumn holds a valid UUID on every row.
// Existing valid UUIDs are kept so tagging is idempotent.
func TagRowIDs(ds model.Dataset, idColumn, datasetName string) (model.Dataset, []model.CleaningOperation) {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}

	tagged := ds.Clone()
	columns := ds.ColumnNames()
	if !contains(columns, idColumn) {
		columns = append([]string{idColumn}, columns...)
	}
	tagged.Columns = columns
	tagged.ColumnCount = len(columns)

	var operations []model.CleaningOperation
	for i, row := range tagged.Rows {
		if row == nil {
			row = model.Row{}
			tagged.Rows[i] = row
		}
		value, exists := row[idColumn]
		id, op := ensureRowID(value, exists, idColumn, datasetName, i)
		row[idColumn] = id
		if op != nil {
			operations = append(operations, *op)
		}
	}
	return tagged, operations
}

// ensureRowID ensures the id cell contains a valid UUID
// Always returns a valid UUID string, generating a new one if necessary
func ensureRowID(
	value interface{},
	exists bool,
	idColumn, datasetName string,
	rowIndex int,
) (string, *model.CleaningOperation) {
	reason := ""
	switch {
	case !exists || value == nil:
		reason = "missing_row_id"
	case converter.ToString(value) == "":
		reason = "empty_row_id"
	case !isValidUUID(converter.ToString(value)):
		reason = "invalid_row_id"
	default:
		// Already valid UUID
		return converter.ToString(value), nil
	}

	newID := uuid.New().String()
	return newID, &model.CleaningOperation{
		Dataset:           datasetName,
		ColumnName:        idColumn,
		RowIndex:          rowIndex,
		RowIdentifier:     newID,
		OriginalValue:     value,
		NewValue:          newID,
		CleaningOperation: model.OpRowIDGeneration,
		CleaningReason:    reason,
	}
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
