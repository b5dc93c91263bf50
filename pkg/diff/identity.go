// pkg/diff/identity.go
package diff

import (
	"strings"

	"github.com/David-Botos/data-quality/pkg/model"
)

// isIDColumnName matches the usual names of identity columns
func isIDColumnName(name string) bool {
	name = strings.ToUpper(name)
	return name == "ID" || name == "UUID" || name == "_ROW_ID" ||
		strings.HasSuffix(name, "_ID") || strings.HasSuffix(name, "_UUID") ||
		strings.HasPrefix(name, "UUID_")
}

// DetectIDColumn picks a column usable for identity diffing: present in both
// datasets, named like an identifier, and holding a distinct non-missing
// value on every original row. Returns "" when none qualifies.
func DetectIDColumn(original, cleaned model.Dataset) string {
	inCleaned := make(map[string]struct{})
	for _, col := range cleaned.ColumnNames() {
		inCleaned[col] = struct{}{}
	}

	for _, col := range original.ColumnNames() {
		if _, ok := inCleaned[col]; !ok || !isIDColumnName(col) {
			continue
		}
		if uniqueIDs(original, col) {
			return col
		}
	}
	return ""
}

// uniqueIDs reports whether every row has a distinct id in col
func uniqueIDs(ds model.Dataset, col string) bool {
	seen := make(map[string]struct{}, ds.Len())
	for _, row := range ds.Rows {
		id, ok := rowID(row, col)
		if !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return ds.Len() > 0
}
