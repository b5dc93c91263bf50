// pkg/model/cleaning.go
package model

import (
	"time"
)

// CleaningOperation represents a single cell change made by the auto-clean pass
type CleaningOperation struct {
	Dataset           string      // Dataset name (file name or table)
	ColumnName        string      // Column that was cleaned
	RowIndex          int         // Position of the row in the dataset
	RowIdentifier     string      // Row id when rows are tagged, otherwise empty
	OriginalValue     interface{} // Original value (may be nil)
	NewValue          interface{} // New value after cleaning
	CleaningOperation string      // Type of cleaning performed (e.g., "median_imputation")
	CleaningReason    string      // Reason for cleaning (e.g., "missing_value")
	CleanedAt         time.Time   // When the cleaning occurred
}

// Cleaning operation names
const (
	OpMedianImputation = "median_imputation"
	OpBlankFill        = "blank_fill"
	OpStringNormalize  = "string_normalization"
	OpTypeStandardize  = "type_standardization"
	OpRowIDGeneration  = "uuid_generation"
)
