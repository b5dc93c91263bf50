// pkg/converter/converter.go
package converter

import (
	"github.com/David-Botos/data-quality/pkg/model"
)

// NonMissing drops nil and empty-string cells
func NonMissing(values []interface{}) []interface{} {
	cleaned := make([]interface{}, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// InferColumnType classifies a column from its non-missing values.
// Checks run in a fixed order (date, integer, number, string) and stop at
// the first that holds for every value.
func InferColumnType(values []interface{}) model.ColumnType {
	cleaned := NonMissing(values)
	if len(cleaned) == 0 {
		return model.TypeUnknown
	}

	if all(cleaned, func(v interface{}) bool { return DetectDateFormat(v) != nil }) {
		return model.TypeDate
	}

	if all(cleaned, func(v interface{}) bool {
		n, ok := ToNumber(v)
		return ok && IsWholeNumber(n)
	}) {
		return model.TypeInteger
	}

	if all(cleaned, func(v interface{}) bool {
		_, ok := ToNumber(v)
		return ok
	}) {
		return model.TypeNumber
	}

	return model.TypeString
}

// all reports whether pred holds for every value
func all(values []interface{}, pred func(interface{}) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}
