// pkg/model/diff.go
package model

// DiffMode tells the caller how rows were aligned
type DiffMode string

const (
	DiffPositional DiffMode = "positional"
	DiffIdentity   DiffMode = "identity"
)

// CellDiff holds a cell value before and after cleaning
type CellDiff struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// RemovedRow is an original row with no counterpart in the cleaned dataset
type RemovedRow struct {
	Index       int `json:"index"`
	OriginalRow Row `json:"originalRow"`
}

// ChangedRow is an original row whose cells differ in the cleaned dataset
type ChangedRow struct {
	Index       int                 `json:"index"`
	CellDiffs   map[string]CellDiff `json:"cellDiffs"`
	OriginalRow Row                 `json:"originalRow"`
	CleanedRow  Row                 `json:"cleanedRow"`
}

// AddedRow is a cleaned row whose identity is absent from the original
type AddedRow struct {
	Index      int `json:"index"`
	CleanedRow Row `json:"cleanedRow"`
}

// DiffResult is the row-level difference between an original and a cleaned dataset
type DiffResult struct {
	Mode    DiffMode     `json:"mode"`
	Removed []RemovedRow `json:"removed"`
	Changed []ChangedRow `json:"changed"`
	Added   []AddedRow   `json:"added,omitempty"`
}

// IsEmpty reports whether no differences were found
func (d DiffResult) IsEmpty() bool {
	return len(d.Removed) == 0 && len(d.Changed) == 0 && len(d.Added) == 0
}

// MissingDelta compares a column's missing values before and after cleaning
type MissingDelta struct {
	Column           string `json:"column"`
	BeforeMissing    int    `json:"beforeMissing"`
	AfterMissing     int    `json:"afterMissing"`
	BeforeTotal      int    `json:"beforeTotal"`
	AfterTotal       int    `json:"afterTotal"`
	BeforeMissingPct int    `json:"beforeMissingPct"`
	AfterMissingPct  int    `json:"afterMissingPct"`
}
