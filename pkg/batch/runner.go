// pkg/batch/runner.go
package batch

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/profiler"
	"github.com/David-Botos/data-quality/pkg/store"
)

// Runner profiles independent datasets concurrently
type Runner struct {
	logger   *zap.Logger
	profiler *profiler.Profiler
	cache    *store.Cache // Optional
	workers  int
	metrics  *Metrics
}

// NewRunner creates a runner with at most workers jobs in flight.
// workers <= 0 uses the number of CPUs.
func NewRunner(logger *zap.Logger, prof *profiler.Profiler, cache *store.Cache, workers int) (*Runner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if prof == nil {
		return nil, errors.New("profiler cannot be nil")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		logger:   logger,
		profiler: prof,
		cache:    cache,
		workers:  workers,
		metrics:  NewMetrics(logger),
	}, nil
}

// Metrics returns the counters accumulated by Run
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run profiles every job. A failing job is recorded in its result and does
// not stop the others; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Summary, error) {
	start := time.Now()
	results := make([]Result, len(jobs))

	r.logger.Info("Starting batch profiling",
		zap.Int("datasets", len(jobs)),
		zap.Int("workers", r.workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			skipped := NewResult(job)
			skipped.AddError(NewErrorRecord(err, ErrorCategoryCanceled).WithDataset(job.Name))
			skipped.Complete(false)
			results[i] = *skipped
			continue
		}
		i, job := i, job
		g.Go(func() error {
			result := r.runJob(gctx, job)
			results[i] = *result
			r.metrics.RecordResult(*result)
			return gctx.Err()
		})
	}

	err := g.Wait()
	r.metrics.Complete()

	summary := &Summary{Results: results, Duration: time.Since(start)}
	for _, res := range results {
		switch {
		case res.Success:
			summary.Succeeded++
			if res.CacheHit {
				summary.CacheHits++
			}
		default:
			summary.Failed++
		}
	}

	r.logger.Info("Batch profiling completed",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("cacheHits", summary.CacheHits),
		zap.Duration("duration", summary.Duration))

	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// runJob loads and profiles a single dataset, consulting the cache first
func (r *Runner) runJob(ctx context.Context, job Job) *Result {
	result := NewResult(job)
	logger := r.logger.With(zap.String("dataset", job.Name), zap.String("jobID", job.ID))

	// Step 1: Load the dataset
	ds, err := job.Load(ctx)
	if err != nil {
		record := NewErrorRecord(err, CategorizeError(err)).WithDataset(job.Name)
		logger.Warn("Failed to load dataset",
			zap.String("category", record.Category.String()),
			zap.Error(err))
		result.AddError(record)
		result.Complete(false)
		return result
	}

	// Step 2: Check the cache
	key := store.Key(converter.Fingerprint(ds), r.profiler.MaxRows())
	if report, ok, err := r.cache.Get(key); err != nil {
		logger.Warn("Cache lookup failed", zap.Error(err))
	} else if ok {
		result.Report = report
		result.CacheHit = true
		result.Complete(true)
		return result
	}

	// Step 3: Profile and store
	result.Report = r.profiler.Analyze(ds)
	if err := r.cache.Put(key, result.Report); err != nil {
		logger.Warn("Failed to cache report", zap.Error(err))
	}

	result.Complete(true)
	return result
}

// sortByScore orders results worst score first, keeping job order on ties
func sortByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() < results[j].Score()
	})
}
