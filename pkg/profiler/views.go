// pkg/profiler/views.go
package profiler

import (
	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// CellFlags marks each cell of each row with the issues found in its column
func CellFlags(ds model.Dataset, profiles map[string]model.ColumnProfile) []map[string]model.CellFlag {
	columns := ds.ColumnNames()

	dupSets := make(map[string]map[string]struct{}, len(columns))
	outlierSets := make(map[string]map[int]struct{}, len(columns))
	for _, col := range columns {
		dupSets[col] = FindDuplicateValues(ds.Values(col))

		outliers := make(map[int]struct{})
		for _, idx := range profiles[col].OutlierIndices {
			outliers[idx] = struct{}{}
		}
		outlierSets[col] = outliers
	}

	flags := make([]map[string]model.CellFlag, ds.Len())
	for i, row := range ds.Rows {
		rowFlags := make(map[string]model.CellFlag, len(columns))
		for _, col := range columns {
			var value interface{}
			if row != nil {
				value = row[col]
			}

			var flag model.CellFlag
			if converter.IsMissing(value) {
				flag.Missing = true
			} else if _, ok := dupSets[col][converter.NormalizeKey(value)]; ok {
				flag.Duplicate = true
			}
			if _, ok := outlierSets[col][i]; ok {
				flag.Outlier = true
			}
			rowFlags[col] = flag
		}
		flags[i] = rowFlags
	}

	return flags
}

// StringStore collects the distinct non-empty values of each string column
// in first-seen order. Values are kept as written so " Bob" and "Bob" stay
// separate editable entries.
func StringStore(ds model.Dataset, profiles map[string]model.ColumnProfile) map[string][]string {
	store := make(map[string][]string)
	for _, col := range ds.ColumnNames() {
		if profiles[col].Type != model.TypeString {
			continue
		}

		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, v := range ds.Values(col) {
			s := converter.ToString(v)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			values = append(values, s)
		}
		store[col] = values
	}
	return store
}

// DateRanges returns the min/max parsed date of each date column
func DateRanges(ds model.Dataset, profiles map[string]model.ColumnProfile) map[string]model.DateRange {
	ranges := make(map[string]model.DateRange)
	for _, col := range ds.ColumnNames() {
		if profiles[col].Type != model.TypeDate {
			continue
		}
		if rng, ok := converter.DateRange(ds.Values(col)); ok {
			ranges[col] = rng
		}
	}
	return ranges
}

// Issue breakdown labels
const (
	IssueMissing       = "Missing Values"
	IssueDuplicates    = "Duplicate Values"
	IssueOutliers      = "Outliers"
	IssueNormalization = "Normalization Needed"
)

// IssueBreakdown returns chart-ready issue counts with their share of all cells.
// Normalization Needed is the sum of every per-column issue count.
func IssueBreakdown(score model.QualityScore, profiles []model.ColumnProfile) []model.IssueBar {
	normalization := 0
	for _, p := range profiles {
		normalization += p.MissingCount + p.DuplicateCount + p.Outliers()
	}

	total := score.TotalCells
	return []model.IssueBar{
		{Name: IssueMissing, Count: score.Totals.Missing, Percent: converter.Percent(score.Totals.Missing, total)},
		{Name: IssueDuplicates, Count: score.Totals.Duplicates, Percent: converter.Percent(score.Totals.Duplicates, total)},
		{Name: IssueOutliers, Count: score.Totals.Outliers, Percent: converter.Percent(score.Totals.Outliers, total)},
		{Name: IssueNormalization, Count: normalization, Percent: converter.Percent(normalization, total)},
	}
}
