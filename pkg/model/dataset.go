// pkg/model/dataset.go
package model

import (
	"fmt"
	"sort"
)

// Row is one record of a dataset keyed by column name.
// Cells are nil, "", a number, a string, a bool or a time.Time.
type Row map[string]interface{}

// Dataset is an ordered sequence of rows
type Dataset struct {
	Columns     []string // Column order as decoded (optional)
	ColumnCount int      // Fallback column count when there are no rows
	Rows        []Row    // Row order is significant for diffing only
}

// NewDataset wraps rows into a Dataset with an explicit column order
func NewDataset(columns []string, rows []Row) Dataset {
	return Dataset{
		Columns:     columns,
		ColumnCount: len(columns),
		Rows:        rows,
	}
}

// ColumnNames resolves the column set of the dataset.
// Explicit columns win, then the keys of the first row (sorted, since map
// order is not stable), then synthetic col1..colN names.
func (d Dataset) ColumnNames() []string {
	if len(d.Columns) > 0 {
		return d.Columns
	}

	if len(d.Rows) > 0 && d.Rows[0] != nil {
		names := make([]string, 0, len(d.Rows[0]))
		for name := range d.Rows[0] {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}

	names := make([]string, d.ColumnCount)
	for i := range names {
		names[i] = fmt.Sprintf("col%d", i+1)
	}
	return names
}

// Values projects a column across all rows; missing keys become nil
func (d Dataset) Values(column string) []interface{} {
	values := make([]interface{}, len(d.Rows))
	for i, row := range d.Rows {
		if row == nil {
			continue
		}
		values[i] = row[column]
	}
	return values
}

// Len returns the number of rows
func (d Dataset) Len() int {
	return len(d.Rows)
}

// Clone returns a deep copy of the rows so callers can mutate the copy freely
func (d Dataset) Clone() Dataset {
	rows := make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		if row == nil {
			continue
		}
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		rows[i] = copied
	}

	columns := make([]string, len(d.Columns))
	copy(columns, d.Columns)

	return Dataset{
		Columns:     columns,
		ColumnCount: d.ColumnCount,
		Rows:        rows,
	}
}
