// pkg/batch/metrics.go
package batch

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Metrics tracks counters for a batch run. Safe for concurrent use.
type Metrics struct {
	mu          sync.Mutex
	logger      *zap.Logger
	StartTime   time.Time
	EndTime     time.Time
	Succeeded   int
	Failed      int
	CacheHits   int
	TotalRows   int64
	TotalCells  int64
	ScoreSum    int
	ErrorCounts map[ErrorCategory]int
}

// NewMetrics creates a new Metrics instance
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{
		logger:      logger,
		StartTime:   time.Now(),
		ErrorCounts: make(map[ErrorCategory]int),
	}
}

// RecordResult folds one job result into the counters
func (m *Metrics) RecordResult(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range result.Errors {
		m.ErrorCounts[e.Category]++
	}
	if !result.Success {
		m.Failed++
		return
	}

	m.Succeeded++
	if result.CacheHit {
		m.CacheHits++
	}
	if result.Report != nil {
		m.TotalRows += int64(result.Report.RowCount)
		m.TotalCells += int64(result.Report.Score.TotalCells)
		m.ScoreSum += result.Report.Score.Final
	}

	if m.logger != nil {
		m.logger.Debug("Recorded dataset result",
			zap.String("dataset", result.Name),
			zap.Int("score", result.Score()),
			zap.Bool("cacheHit", result.CacheHit),
			zap.Duration("duration", result.Duration))
	}
}

// Complete marks the end of the run
func (m *Metrics) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EndTime = time.Now()
}

// Duration returns the total duration of the run
func (m *Metrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// AverageScore returns the mean final score of successful datasets
func (m *Metrics) AverageScore() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.averageScore()
}

func (m *Metrics) averageScore() float64 {
	if m.Succeeded == 0 {
		return 0
	}
	return float64(m.ScoreSum) / float64(m.Succeeded)
}

// formatDuration formats a duration to a human-readable string
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// getPercentage safely calculates a percentage, avoiding division by zero
func getPercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// sortedCategories returns the recorded categories in severity order
func (m *Metrics) sortedCategories() []ErrorCategory {
	categories := make([]ErrorCategory, 0, len(m.ErrorCounts))
	for category := range m.ErrorCounts {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// GenerateReport creates a plain-text metrics report
func (m *Metrics) GenerateReport() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.Succeeded + m.Failed
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`
Batch Profiling Report
======================
Duration:                %s
Datasets:                %d
Successful:              %d (%.1f%%)
Failed:                  %d (%.1f%%)
Cache Hits:              %d
Total Rows:              %d
Total Cells:             %d
Average Score:           %.1f
`,
		formatDuration(m.Duration()),
		total,
		m.Succeeded, getPercentage(float64(m.Succeeded), float64(total)),
		m.Failed, getPercentage(float64(m.Failed), float64(total)),
		m.CacheHits,
		m.TotalRows,
		m.TotalCells,
		m.averageScore(),
	))

	// Add error distribution
	if len(m.ErrorCounts) > 0 {
		sb.WriteString("\nError Distribution\n-----------------\n")
		totalErrors := 0
		for _, count := range m.ErrorCounts {
			totalErrors += count
		}
		for _, category := range m.sortedCategories() {
			count := m.ErrorCounts[category]
			sb.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n",
				category, count, getPercentage(float64(count), float64(totalErrors))))
		}
	}

	return sb.String()
}

// ToJSON serializes metrics to JSON
func (m *Metrics) ToJSON() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	errorCounts := make(map[string]int, len(m.ErrorCounts))
	for category, count := range m.ErrorCounts {
		errorCounts[category.String()] = count
	}

	return json.Marshal(struct {
		Duration     string         `json:"duration"`
		Succeeded    int            `json:"succeeded"`
		Failed       int            `json:"failed"`
		CacheHits    int            `json:"cacheHits"`
		TotalRows    int64          `json:"totalRows"`
		TotalCells   int64          `json:"totalCells"`
		AverageScore float64        `json:"averageScore"`
		ErrorCounts  map[string]int `json:"errorCounts"`
	}{
		Duration:     formatDuration(m.Duration()),
		Succeeded:    m.Succeeded,
		Failed:       m.Failed,
		CacheHits:    m.CacheHits,
		TotalRows:    m.TotalRows,
		TotalCells:   m.TotalCells,
		AverageScore: m.averageScore(),
		ErrorCounts:  errorCounts,
	})
}
