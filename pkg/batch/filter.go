// pkg/batch/filter.go
package batch

import (
	"path"
	"strings"
)

// FilterTables keeps the tables matching include and not matching exclude.
// Patterns accept SQL LIKE wildcards (% and _) as well as glob syntax;
// an empty pattern matches everything for include and nothing for exclude.
func FilterTables(tables []string, include, exclude string) []string {
	filtered := make([]string, 0, len(tables))
	for _, table := range tables {
		if shouldIncludeTable(table, include, exclude) {
			filtered = append(filtered, table)
		}
	}
	return filtered
}

// shouldIncludeTable checks if a table should be included based on patterns
func shouldIncludeTable(tableName, includePattern, excludePattern string) bool {
	// If include pattern is specified, table must match it
	if includePattern != "" && !matchPattern(tableName, includePattern) {
		return false
	}

	// If exclude pattern is specified, table must not match it
	if excludePattern != "" && matchPattern(tableName, excludePattern) {
		return false
	}

	return true
}

// matchPattern matches case-insensitively; a malformed pattern matches nothing
func matchPattern(s, pattern string) bool {
	glob := strings.NewReplacer("%", "*", "_", "?").Replace(strings.ToLower(pattern))
	ok, err := path.Match(glob, strings.ToLower(s))
	return err == nil && ok
}
