// pkg/batch/batch_test.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/profiler"
	"github.com/David-Botos/data-quality/pkg/source"
	"github.com/David-Botos/data-quality/pkg/store"
)

func staticJob(name string, ds model.Dataset, loads *int32) Job {
	return NewJob(name, func(context.Context) (model.Dataset, error) {
		if loads != nil {
			atomic.AddInt32(loads, 1)
		}
		return ds, nil
	})
}

func cleanDataset() model.Dataset {
	return model.NewDataset([]string{"a"}, []model.Row{{"a": "x"}, {"a": "y"}})
}

func newRunner(t *testing.T, cache *store.Cache, workers int) *Runner {
	t.Helper()
	r, err := NewRunner(zap.NewNop(), profiler.NewProfiler(zap.NewNop(), profiler.Config{}), cache, workers)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewRunnerValidation(t *testing.T) {
	if _, err := NewRunner(nil, profiler.NewProfiler(nil, profiler.Config{}), nil, 1); err == nil {
		t.Error("expected error for nil logger")
	}
	if _, err := NewRunner(zap.NewNop(), nil, nil, 1); err == nil {
		t.Error("expected error for nil profiler")
	}
	r, _ := NewRunner(zap.NewNop(), profiler.NewProfiler(nil, profiler.Config{}), nil, 0)
	if r.workers <= 0 {
		t.Error("workers should default to CPU count")
	}
}

func TestRunMixedJobs(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte("name,age\nAnn,30\nBob,\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs := []Job{
		NewFileJob(good),
		NewFileJob(filepath.Join(dir, "absent.csv")),
		NewFileJob(filepath.Join(dir, "notes.txt")),
		staticJob("clean", cleanDataset(), nil),
	}

	r := newRunner(t, nil, 2)
	summary, err := r.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 2 {
		t.Fatalf("succeeded=%d failed=%d", summary.Succeeded, summary.Failed)
	}

	// Results stay in job order
	if summary.Results[0].Name != "good.csv" || !summary.Results[0].Success {
		t.Errorf("first result = %+v", summary.Results[0])
	}
	if got := summary.Results[1].Errors[0].Category; got != ErrorCategorySource {
		t.Errorf("missing file category = %s", got)
	}
	if got := summary.Results[2].Errors[0].Category; got != ErrorCategoryValidation {
		t.Errorf("unsupported format category = %s", got)
	}
	if summary.Results[3].Score() != 100 {
		t.Errorf("clean dataset score = %d", summary.Results[3].Score())
	}

	ranked := summary.Ranked()
	if len(ranked) != 2 || ranked[0].Name != "good.csv" {
		t.Errorf("ranked = %v", ranked)
	}

	raw, err := r.Metrics().ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["failed"].(float64) != 2 {
		t.Errorf("metrics failed = %v", decoded["failed"])
	}
	if !strings.Contains(r.Metrics().GenerateReport(), "Validation: 1") {
		t.Errorf("report missing error distribution:\n%s", r.Metrics().GenerateReport())
	}
}

func TestRunUsesCache(t *testing.T) {
	cache, err := store.NewCache(t.TempDir(), 8, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	r := newRunner(t, cache, 1)

	var loads int32
	jobs := []Job{staticJob("one", cleanDataset(), &loads), staticJob("two", cleanDataset(), &loads)}
	summary, err := r.Run(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	// Identical content: the second job is served from cache
	if summary.CacheHits != 1 {
		t.Errorf("cache hits = %d, want 1", summary.CacheHits)
	}
	if loads != 2 {
		t.Errorf("loads = %d, want 2", loads)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 3)
	for i := range jobs {
		jobs[i] = staticJob(fmt.Sprintf("job%d", i), cleanDataset(), nil)
	}
	summary, err := newRunner(t, nil, 1).Run(ctx, jobs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if summary.Failed != 3 {
		t.Errorf("failed = %d, want 3", summary.Failed)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCategory
	}{
		{nil, ErrorCategoryNone},
		{context.DeadlineExceeded, ErrorCategoryCanceled},
		{fmt.Errorf("failed: %w", source.ErrNoUsableRows), ErrorCategoryValidation},
		{fmt.Errorf("open: %w", os.ErrNotExist), ErrorCategorySource},
		{errors.New("connection refused"), ErrorCategoryConnectionLevel},
		{errors.New("failed to parse CSV"), ErrorCategoryDataConversion},
		{errors.New("something odd"), ErrorCategorySource},
	}
	for _, tt := range tests {
		if got := CategorizeError(tt.err); got != tt.want {
			t.Errorf("CategorizeError(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestErrorRecordString(t *testing.T) {
	rec := NewErrorRecord(errors.New("boom"), ErrorCategorySource).WithDataset("a.csv")
	want := "[Source] Dataset: a.csv Error: boom"
	if got := rec.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if rec.Recoverable {
		t.Error("source errors are not recoverable")
	}
}

func TestFilterTables(t *testing.T) {
	tables := []string{"CUSTOMERS", "customer_notes", "orders", "order_items", "tmp_load"}
	tests := []struct {
		name             string
		include, exclude string
		want             []string
	}{
		{"no patterns", "", "", tables},
		{"prefix like", "customer%", "", []string{"CUSTOMERS", "customer_notes"}},
		{"glob exclude", "", "tmp_*", []string{"CUSTOMERS", "customer_notes", "orders", "order_items"}},
		{"both", "order%", "%items", []string{"orders"}},
		{"single char", "order_", "", []string{"orders"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTables(tables, tt.include, tt.exclude)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("FilterTables = %v, want %v", got, tt.want)
			}
		})
	}
}
