// pkg/profiler/profiler.go
package profiler

import (
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/scoring"
)

// Config holds profiling limits
type Config struct {
	MaxRows int // Rows beyond this are ignored (0 means no limit)
}

// Profiler orchestrates type inference and issue detection over a dataset
type Profiler struct {
	logger *zap.Logger
	config Config
}

// NewProfiler creates a new Profiler
func NewProfiler(logger *zap.Logger, cfg Config) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		logger: logger,
		config: cfg,
	}
}

// MaxRows returns the row cap applied before profiling
func (p *Profiler) MaxRows() int {
	return p.config.MaxRows
}

// ProfileColumn builds the profile of a single column
func (p *Profiler) ProfileColumn(ds model.Dataset, column string) model.ColumnProfile {
	return profileValues(column, p.capped(ds).Values(column))
}

// ProfileDataset profiles every column of the dataset
func (p *Profiler) ProfileDataset(ds model.Dataset) map[string]model.ColumnProfile {
	return p.profileAll(p.capped(ds))
}

// Analyze runs the full assessment: profiles, score, recommendations and
// the per-cell views derived from them
func (p *Profiler) Analyze(ds model.Dataset) *model.Report {
	start := time.Now()
	ds = p.capped(ds)

	columns := ds.ColumnNames()
	profiles := p.profileAll(ds)

	ordered := make([]model.ColumnProfile, 0, len(columns))
	for _, col := range columns {
		ordered = append(ordered, profiles[col])
	}

	score := scoring.ComputeQualityScore(ordered, ds.Len(), len(columns))

	report := &model.Report{
		Fingerprint:     converter.Fingerprint(ds),
		RowCount:        ds.Len(),
		Columns:         columns,
		Profiles:        profiles,
		Score:           score,
		Recommendations: scoring.GenerateRecommendations(columns, profiles),
		Issues:          IssueBreakdown(score, ordered),
		CellFlags:       CellFlags(ds, profiles),
		StringStore:     StringStore(ds, profiles),
		DateRanges:      DateRanges(ds, profiles),
	}

	p.logger.Info("Dataset analyzed",
		zap.Int("rows", report.RowCount),
		zap.Int("columns", len(columns)),
		zap.Int("score", score.Final),
		zap.Int("recommendations", len(report.Recommendations)),
		zap.Duration("duration", time.Since(start)))

	return report
}

// profileAll profiles each resolved column
func (p *Profiler) profileAll(ds model.Dataset) map[string]model.ColumnProfile {
	columns := ds.ColumnNames()
	profiles := make(map[string]model.ColumnProfile, len(columns))

	for _, col := range columns {
		profile := profileValues(col, ds.Values(col))
		profiles[col] = profile

		p.logger.Debug("Profiled column",
			zap.String("column", col),
			zap.String("type", string(profile.Type)),
			zap.Int("missing", profile.MissingCount),
			zap.Int("duplicates", profile.DuplicateCount),
			zap.Int("outliers", profile.Outliers()),
			zap.String("context", string(profile.Context.Label)))
	}

	return profiles
}

// capped applies the row limit
func (p *Profiler) capped(ds model.Dataset) model.Dataset {
	if p.config.MaxRows <= 0 || ds.Len() <= p.config.MaxRows {
		return ds
	}

	p.logger.Warn("Dataset exceeds row limit, extra rows ignored",
		zap.Int("rows", ds.Len()),
		zap.Int("max_rows", p.config.MaxRows))

	limited := ds
	limited.Rows = ds.Rows[:p.config.MaxRows]
	return limited
}

// profileValues computes the profile of one column's values
func profileValues(column string, values []interface{}) model.ColumnProfile {
	colType := converter.InferColumnType(values)

	return model.ColumnProfile{
		Name:           column,
		Type:           colType,
		UniqueCount:    CountUnique(values),
		MissingCount:   CountMissing(values),
		DuplicateCount: CountDuplicates(values),
		OutlierIndices: DetectOutliers(values, colType, column),
		Context:        CheckContext(values, column),
	}
}
