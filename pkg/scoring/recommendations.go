// pkg/scoring/recommendations.go
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// CleanDatasetText is the single line produced when nothing needs attention
const CleanDatasetText = "No immediate issues detected — dataset looks clean."

// GenerateRecommendations emits remediation lines per column in column order.
// An empty result is replaced by exactly one clean-dataset line.
func GenerateRecommendations(columns []string, profiles map[string]model.ColumnProfile) []model.Recommendation {
	recs := make([]model.Recommendation, 0)

	for _, col := range columns {
		p, ok := profiles[col]
		if !ok {
			continue
		}

		if p.MissingCount > 0 {
			recs = append(recs, model.Recommendation{
				Column:   col,
				Text:     fmt.Sprintf(`%d missing in column "%s" — consider imputation or dropping rows.`, p.MissingCount, col),
				Category: model.CategoryMissing,
			})
		}
		if p.DuplicateCount > 0 {
			recs = append(recs, model.Recommendation{
				Column:   col,
				Text:     fmt.Sprintf(`%d duplicate values found in "%s" — consider deduplication.`, p.DuplicateCount, col),
				Category: model.CategoryDuplicate,
			})
		}
		if p.Outliers() > 0 {
			recs = append(recs, model.Recommendation{
				Column:   col,
				Text:     fmt.Sprintf(`%d outliers detected in "%s" — inspect and correct.`, p.Outliers(), col),
				Category: model.CategoryOutlier,
			})
		}
		if p.Type == model.TypeString {
			recs = append(recs, model.Recommendation{
				Column:   col,
				Text:     fmt.Sprintf(`String column "%s" is editable — consider normalization (trim/case).`, col),
				Category: model.CategoryNormalization,
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, model.Recommendation{
			Text:     CleanDatasetText,
			Category: model.CategoryClean,
		})
	}

	return recs
}

// severity weighs missing values above outliers
func severity(p model.ColumnProfile) int {
	return p.MissingCount*3 + p.Outliers()*2
}

// RankColumns orders profiles from most to least severe, keeping input order on ties
func RankColumns(profiles []model.ColumnProfile) []model.ColumnProfile {
	ranked := make([]model.ColumnProfile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return severity(ranked[i]) > severity(ranked[j])
	})
	return ranked
}

// PriorityFor labels a column by its missing and outlier counts
func PriorityFor(p model.ColumnProfile) model.Priority {
	switch {
	case p.MissingCount > 40 || p.Outliers() > 20:
		return model.PriorityCritical
	case p.MissingCount > 10 || p.Outliers() > 5:
		return model.PriorityHigh
	case p.MissingCount > 0 || p.Outliers() > 0:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Summary renders a plain-text overview of a scored dataset
func Summary(score model.QualityScore, rowCount, columnCount int) string {
	if rowCount == 0 {
		return "No data available to analyze."
	}

	cells := score.TotalCells
	var b strings.Builder
	fmt.Fprintf(&b, "Your dataset has %d rows and %d columns, totaling %d cells.\n", rowCount, columnCount, cells)
	fmt.Fprintf(&b, "Missing values: %d (%d%%).\n", score.Totals.Missing, converter.Percent(score.Totals.Missing, cells))
	fmt.Fprintf(&b, "Duplicates: %d (%d%%).\n", score.Totals.Duplicates, converter.Percent(score.Totals.Duplicates, cells))
	fmt.Fprintf(&b, "Outliers: %d (%d%%).\n", score.Totals.Outliers, converter.Percent(score.Totals.Outliers, cells))
	fmt.Fprintf(&b, "Quality score: %d/100.", score.Final)
	return b.String()
}
