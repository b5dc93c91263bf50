// pkg/scoring/score.go
package scoring

import (
	"math"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// Score weights and bounds
const (
	missingWeight   = 40
	duplicateWeight = 30
	outlierWeight   = 20
	contextWeight   = 10

	partialFloor   = 34
	partialCeiling = 90
)

// ComputeQualityScore combines per-column issue counts and context validity
// into a 0-100 score
func ComputeQualityScore(profiles []model.ColumnProfile, rowCount, columnCount int) model.QualityScore {
	totalCells := max(1, rowCount*max(1, columnCount))

	var totals model.IssueTotals
	for _, p := range profiles {
		totals.Missing += p.MissingCount
		totals.Duplicates += p.DuplicateCount
		totals.Outliers += p.Outliers()
	}

	missingRatio := ratio(totals.Missing, totalCells)
	duplicateRatio := ratio(totals.Duplicates, totalCells)
	outlierRatio := ratio(totals.Outliers, totalCells)

	partial := converter.Round(missingWeight*(1-missingRatio) +
		duplicateWeight*(1-duplicateRatio) +
		outlierWeight*(1-outlierRatio))
	partial = clamp(partial, partialFloor, partialCeiling)

	contextScore := converter.Round(contextWeight * contextAverage(profiles))

	return model.QualityScore{
		Partial:      partial,
		Totals:       totals,
		TotalCells:   totalCells,
		ContextScore: contextScore,
		Final:        clamp(partial+contextScore, 0, 100),
	}
}

// contextAverage is the mean context validity ratio; no columns counts as fully valid
func contextAverage(profiles []model.ColumnProfile) float64 {
	if len(profiles) == 0 {
		return 1
	}
	sum := 0.0
	for _, p := range profiles {
		sum += p.Context.Ratio()
	}
	return sum / float64(len(profiles))
}

// ratio returns part/total capped at 1
func ratio(part, total int) float64 {
	return math.Min(1, float64(part)/float64(total))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
