// pkg/batch/job.go
package batch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/source"
)

// LoadFunc produces the dataset a job profiles
type LoadFunc func(ctx context.Context) (model.Dataset, error)

// Job is one dataset to profile
type Job struct {
	ID        string    // Unique job identifier
	Name      string    // Display name (file name or table)
	Load      LoadFunc  // Dataset loader
	CreatedAt time.Time // Job creation timestamp
}

// NewJob creates a job around an arbitrary loader
func NewJob(name string, load LoadFunc) Job {
	return Job{
		ID:        uuid.New().String(),
		Name:      name,
		Load:      load,
		CreatedAt: time.Now(),
	}
}

// NewFileJob creates a job that decodes a CSV, XLSX or JSON file
func NewFileJob(path string) Job {
	return NewJob(filepath.Base(path), func(context.Context) (model.Dataset, error) {
		return source.DecodeFile(path)
	})
}

// NewTableJob creates a job that reads a SQL table
func NewTableJob(reader *source.TableReader, table string, limit int) Job {
	return NewJob(table, func(ctx context.Context) (model.Dataset, error) {
		return reader.ReadTable(ctx, table, limit)
	})
}

// Result represents the outcome of profiling one dataset
type Result struct {
	JobID     string
	Name      string
	Success   bool
	CacheHit  bool
	Report    *model.Report
	Errors    []ErrorRecord
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewResult initializes a result for a job
func NewResult(job Job) *Result {
	return &Result{
		JobID:     job.ID,
		Name:      job.Name,
		StartTime: time.Now(),
		Errors:    make([]ErrorRecord, 0),
	}
}

// Complete marks the job as complete and calculates duration
func (r *Result) Complete(success bool) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = success && len(r.Errors) == 0
}

// AddError adds an error to the result
func (r *Result) AddError(err ErrorRecord) {
	r.Errors = append(r.Errors, err)
	r.Success = false
}

// HasErrors checks if any errors occurred
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Score returns the final quality score, or -1 when the job failed
func (r *Result) Score() int {
	if r.Report == nil {
		return -1
	}
	return r.Report.Score.Final
}

// Summary is the outcome of a whole batch, results in job order
type Summary struct {
	Results   []Result
	Succeeded int
	Failed    int
	CacheHits int
	Duration  time.Duration
}

// Ranked returns the successful results, worst quality first
func (s *Summary) Ranked() []Result {
	ranked := make([]Result, 0, s.Succeeded)
	for _, r := range s.Results {
		if r.Success {
			ranked = append(ranked, r)
		}
	}
	sortByScore(ranked)
	return ranked
}
