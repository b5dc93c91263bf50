package scoring

import (
	"strings"
	"testing"

	"github.com/David-Botos/data-quality/pkg/model"
)

func profile(name string, colType model.ColumnType, missing, dups, outliers int) model.ColumnProfile {
	indices := make([]int, outliers)
	for i := range indices {
		indices[i] = i
	}
	return model.ColumnProfile{
		Name:           name,
		Type:           colType,
		MissingCount:   missing,
		DuplicateCount: dups,
		OutlierIndices: indices,
	}
}

func TestComputeQualityScore(t *testing.T) {
	cases := []struct {
		name     string
		profiles []model.ColumnProfile
		rows     int
		cols     int
		partial  int
		context  int
		final    int
	}{
		{
			name:     "clean dataset",
			profiles: []model.ColumnProfile{profile("a", model.TypeInteger, 0, 0, 0), profile("b", model.TypeNumber, 0, 0, 0)},
			rows:     10, cols: 2,
			partial: 90, context: 10, final: 100,
		},
		{
			name:     "empty dataset",
			profiles: nil,
			rows:     0, cols: 0,
			partial: 90, context: 10, final: 100,
		},
		{
			name: "saturated issues hit the floor",
			profiles: []model.ColumnProfile{{
				Name: "a", MissingCount: 10, DuplicateCount: 10, OutlierIndices: make([]int, 10),
				Context: model.ContextResult{Valid: 0, Total: 5},
			}},
			rows: 10, cols: 1,
			partial: 34, context: 0, final: 34,
		},
		{
			name:     "quarter missing",
			profiles: []model.ColumnProfile{profile("a", model.TypeInteger, 5, 0, 0)},
			rows:     20, cols: 1,
			partial: 80, context: 10, final: 90,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeQualityScore(tc.profiles, tc.rows, tc.cols)
			if got.Partial != tc.partial || got.ContextScore != tc.context || got.Final != tc.final {
				t.Fatalf("score = %+v, want partial %d context %d final %d", got, tc.partial, tc.context, tc.final)
			}
		})
	}
}

func TestContextScoreRoundsHalfUp(t *testing.T) {
	profiles := []model.ColumnProfile{
		{Name: "email", Context: model.ContextResult{Valid: 1, Total: 2}},
		{Name: "city", Context: model.ContextResult{}},
	}
	got := ComputeQualityScore(profiles, 2, 2)
	// average ratio 0.75 -> 7.5 -> 8
	if got.ContextScore != 8 {
		t.Fatalf("context score = %d, want 8", got.ContextScore)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	columns := []string{"age", "name"}
	profiles := map[string]model.ColumnProfile{
		"age":  profile("age", model.TypeInteger, 2, 3, 1),
		"name": profile("name", model.TypeString, 0, 0, 0),
	}

	recs := GenerateRecommendations(columns, profiles)
	want := []model.Recommendation{
		{Column: "age", Text: `2 missing in column "age" — consider imputation or dropping rows.`, Category: model.CategoryMissing},
		{Column: "age", Text: `3 duplicate values found in "age" — consider deduplication.`, Category: model.CategoryDuplicate},
		{Column: "age", Text: `1 outliers detected in "age" — inspect and correct.`, Category: model.CategoryOutlier},
		{Column: "name", Text: `String column "name" is editable — consider normalization (trim/case).`, Category: model.CategoryNormalization},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %+v", len(recs), len(want), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("rec %d = %+v, want %+v", i, recs[i], want[i])
		}
	}
}

func TestGenerateRecommendationsFallback(t *testing.T) {
	columns := []string{"id"}
	profiles := map[string]model.ColumnProfile{"id": profile("id", model.TypeInteger, 0, 0, 0)}

	recs := GenerateRecommendations(columns, profiles)
	if len(recs) != 1 {
		t.Fatalf("expected exactly one line, got %+v", recs)
	}
	if recs[0].Text != CleanDatasetText || recs[0].Category != model.CategoryClean {
		t.Fatalf("unexpected fallback %+v", recs[0])
	}
}

func TestRankColumns(t *testing.T) {
	profiles := []model.ColumnProfile{
		profile("low", model.TypeString, 0, 5, 0),
		profile("outliers", model.TypeInteger, 0, 0, 3),
		profile("missing", model.TypeInteger, 3, 0, 0),
		profile("tie", model.TypeInteger, 0, 0, 3),
	}
	ranked := RankColumns(profiles)

	names := make([]string, len(ranked))
	for i, p := range ranked {
		names[i] = p.Name
	}
	want := "missing,outliers,tie,low"
	if strings.Join(names, ",") != want {
		t.Fatalf("ranking = %v, want %s", names, want)
	}
	if profiles[0].Name != "low" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestPriorityFor(t *testing.T) {
	cases := []struct {
		missing, outliers int
		want              model.Priority
	}{
		{41, 0, model.PriorityCritical},
		{0, 21, model.PriorityCritical},
		{11, 0, model.PriorityHigh},
		{0, 6, model.PriorityHigh},
		{1, 0, model.PriorityMedium},
		{0, 5, model.PriorityMedium},
		{0, 0, model.PriorityLow},
	}
	for _, tc := range cases {
		got := PriorityFor(profile("c", model.TypeInteger, tc.missing, 0, tc.outliers))
		if got != tc.want {
			t.Errorf("PriorityFor(missing=%d, outliers=%d) = %s, want %s", tc.missing, tc.outliers, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	score := ComputeQualityScore([]model.ColumnProfile{profile("a", model.TypeInteger, 1, 0, 0)}, 4, 1)
	text := Summary(score, 4, 1)
	for _, want := range []string{"4 rows and 1 columns", "Missing values: 1 (25%)", "Quality score: 90/100."} {
		if !strings.Contains(text, want) {
			t.Errorf("summary %q missing %q", text, want)
		}
	}
	if Summary(score, 0, 1) != "No data available to analyze." {
		t.Fatal("expected empty-dataset summary")
	}
}
