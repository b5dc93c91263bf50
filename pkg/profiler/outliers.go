// pkg/profiler/outliers.go
package profiler

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// sigmaThreshold is the number of standard deviations beyond which a value is flagged
const sigmaThreshold = 3

// boundsPolicy flags values outside [min, max] in columns whose name contains keyword
type boundsPolicy struct {
	keyword string
	min     float64
	max     float64
}

// Domain bounds checked in addition to the statistical rule
var boundsPolicies = []boundsPolicy{
	{keyword: "age", min: 0, max: 120},
}

// numericCell is a coerced value and its position in the full column
type numericCell struct {
	index int
	value float64
}

// DetectOutliers returns the ascending row positions flagged by the 3-sigma rule
// or by a domain bound. Date columns skip the 3-sigma rule; domain bounds
// apply whatever the inferred type, since small numbers also read as serial dates.
func DetectOutliers(values []interface{}, colType model.ColumnType, column string) []int {
	cells := numericCells(values)
	if len(cells) == 0 {
		return nil
	}

	flagged := make(map[int]struct{})

	// Statistical rule over the population standard deviation
	if colType != model.TypeDate {
		nums := make([]float64, len(cells))
		for i, c := range cells {
			nums[i] = c.value
		}
		mean, std := stat.PopMeanStdDev(nums, nil)
		if std > 0 && !math.IsNaN(std) {
			for _, c := range cells {
				if math.Abs(c.value-mean) > sigmaThreshold*std {
					flagged[c.index] = struct{}{}
				}
			}
		}
	}

	// Domain bounds
	lower := strings.ToLower(column)
	for _, policy := range boundsPolicies {
		if !strings.Contains(lower, policy.keyword) {
			continue
		}
		for _, c := range cells {
			if c.value < policy.min || c.value > policy.max {
				flagged[c.index] = struct{}{}
			}
		}
	}

	if len(flagged) == 0 {
		return nil
	}

	indices := make([]int, 0, len(flagged))
	for idx := range flagged {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// numericCells coerces non-missing values, dropping those with no numeric reading
func numericCells(values []interface{}) []numericCell {
	cells := make([]numericCell, 0, len(values))
	for i, v := range values {
		if converter.IsMissing(v) {
			continue
		}
		n, ok := converter.ToNumber(v)
		if !ok {
			continue
		}
		cells = append(cells, numericCell{index: i, value: n})
	}
	return cells
}
