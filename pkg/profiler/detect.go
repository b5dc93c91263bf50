// pkg/profiler/detect.go
package profiler

import (
	"github.com/David-Botos/data-quality/pkg/converter"
)

// CountMissing counts nil and empty-string cells
func CountMissing(values []interface{}) int {
	count := 0
	for _, v := range values {
		if converter.IsMissing(v) {
			count++
		}
	}
	return count
}

// FindDuplicateValues returns the trimmed string forms that occur at least twice
// among the non-missing values
func FindDuplicateValues(values []interface{}) map[string]struct{} {
	counts := make(map[string]int)
	for _, v := range values {
		if converter.IsMissing(v) {
			continue
		}
		counts[converter.NormalizeKey(v)]++
	}

	dups := make(map[string]struct{})
	for key, n := range counts {
		if n >= 2 {
			dups[key] = struct{}{}
		}
	}
	return dups
}

// CountDuplicates counts every position whose value belongs to the duplicate set,
// so ["a","b","a"] yields 2
func CountDuplicates(values []interface{}) int {
	dups := FindDuplicateValues(values)
	if len(dups) == 0 {
		return 0
	}

	count := 0
	for _, v := range values {
		if converter.IsMissing(v) {
			continue
		}
		if _, ok := dups[converter.NormalizeKey(v)]; ok {
			count++
		}
	}
	return count
}

// CountUnique counts distinct non-nil values; "" counts as a value here
func CountUnique(values []interface{}) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if v == nil {
			continue
		}
		seen[converter.UniqueKey(v)] = struct{}{}
	}
	return len(seen)
}
