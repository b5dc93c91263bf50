// pkg/model/profile.go
package model

import "time"

// ColumnType is the inferred underlying type of a column
type ColumnType string

const (
	TypeUnknown ColumnType = "unknown"
	TypeInteger ColumnType = "integer"
	TypeNumber  ColumnType = "number"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
)

// ContextLabel names the semantic role a column was validated against
type ContextLabel string

const (
	ContextEmail   ContextLabel = "email"
	ContextName    ContextLabel = "name"
	ContextAge     ContextLabel = "age"
	ContextPhone   ContextLabel = "phone"
	ContextGeneric ContextLabel = "string"
)

// ContextResult is the validity tally of a column against its expected format
type ContextResult struct {
	Valid int          `json:"valid"`
	Total int          `json:"total"`
	Label ContextLabel `json:"label"`
}

// Ratio returns valid/total, treating an empty column as fully valid
func (c ContextResult) Ratio() float64 {
	if c.Total == 0 {
		return 1
	}
	return float64(c.Valid) / float64(c.Total)
}

// ColumnProfile summarizes one column of a dataset
type ColumnProfile struct {
	Name           string        `json:"name"`
	Type           ColumnType    `json:"type"`
	UniqueCount    int           `json:"uniqueCount"`
	MissingCount   int           `json:"missingCount"`
	DuplicateCount int           `json:"duplicateCount"` // All occurrences of repeated values
	OutlierIndices []int         `json:"outlierIndices"` // Row positions in the full dataset
	Context        ContextResult `json:"context"`
}

// Outliers returns the number of flagged rows
func (p ColumnProfile) Outliers() int {
	return len(p.OutlierIndices)
}

// HasIssues reports whether any count-based issue was found
func (p ColumnProfile) HasIssues() bool {
	return p.MissingCount > 0 || p.DuplicateCount > 0 || len(p.OutlierIndices) > 0
}

// DateKind identifies which heuristic recognized a date value
type DateKind string

const (
	DateUnixSeconds DateKind = "unix-seconds"
	DateUnixMillis  DateKind = "unix-ms"
	DateExcel       DateKind = "excel"
	DateISO         DateKind = "iso"
	DateSlash       DateKind = "slash"
	DateYYYYSlash   DateKind = "yyyy-slash"
	DateDash        DateKind = "dash"
)

// DateParseResult is a recovered date and the format it was recognized by
type DateParseResult struct {
	Kind  DateKind
	Value time.Time
}

// DateRange is the span of parsed dates in a date column
type DateRange struct {
	Min   time.Time `json:"min"`
	Max   time.Time `json:"max"`
	Count int       `json:"count"`
}

// CellFlag marks the issues found on a single cell
type CellFlag struct {
	Missing   bool `json:"missing"`
	Duplicate bool `json:"duplicate"`
	Outlier   bool `json:"outlier"`
}
