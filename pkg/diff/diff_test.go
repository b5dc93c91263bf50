package diff

import (
	"testing"

	"github.com/David-Botos/data-quality/pkg/model"
)

func rows(values ...interface{}) []model.Row {
	out := make([]model.Row, len(values))
	for i, v := range values {
		out[i] = model.Row{"a": v}
	}
	return out
}

func TestPositionalIdempotent(t *testing.T) {
	ds := model.NewDataset([]string{"id", "name"}, []model.Row{
		{"id": 1, "name": "Ann"},
		{"id": 2, "name": nil},
		{"id": 3, "name": ""},
	})

	result := Positional(ds, ds.Clone())
	if !result.IsEmpty() {
		t.Fatalf("diff against a copy should be empty, got %+v", result)
	}
	if result.Mode != model.DiffPositional {
		t.Fatalf("mode = %s", result.Mode)
	}
}

func TestPositionalRemoved(t *testing.T) {
	original := model.Dataset{Rows: rows(1, 2)}
	cleaned := model.Dataset{Rows: rows(1)}

	result := Positional(original, cleaned)
	if len(result.Changed) != 0 {
		t.Fatalf("changed = %+v", result.Changed)
	}
	if len(result.Removed) != 1 || result.Removed[0].Index != 1 || result.Removed[0].OriginalRow["a"] != 2 {
		t.Fatalf("removed = %+v", result.Removed)
	}
}

func TestPositionalChanged(t *testing.T) {
	original := model.NewDataset([]string{"age", "city"}, []model.Row{
		{"age": nil, "city": " paris"},
		{"age": 40, "city": "Rome"},
	})
	cleaned := model.NewDataset([]string{"age", "city"}, []model.Row{
		{"age": 40, "city": "Paris"},
		{"age": 40, "city": "Rome"},
	})

	result := Positional(original, cleaned)
	if len(result.Removed) != 0 || len(result.Changed) != 1 {
		t.Fatalf("result = %+v", result)
	}
	changed := result.Changed[0]
	if changed.Index != 0 || len(changed.CellDiffs) != 2 {
		t.Fatalf("changed = %+v", changed)
	}
	if changed.CellDiffs["age"].Before != nil || changed.CellDiffs["age"].After != 40 {
		t.Fatalf("age diff = %+v", changed.CellDiffs["age"])
	}
}

func TestPositionalStringEqualRowsNotReported(t *testing.T) {
	// {a: 1} and {a: "1"} serialize differently but compare equal by string form
	original := model.Dataset{Rows: rows(1)}
	cleaned := model.Dataset{Rows: rows("1")}

	if result := Positional(original, cleaned); !result.IsEmpty() {
		t.Fatalf("expected neither removed nor changed, got %+v", result)
	}

	// nil and "" are equal by string form
	if result := Positional(model.Dataset{Rows: rows(nil)}, model.Dataset{Rows: rows("")}); !result.IsEmpty() {
		t.Fatalf("nil vs empty should not be reported, got %+v", result)
	}
}

func TestPositionalMisalignment(t *testing.T) {
	// Dropping row 0 shifts every later row; A and C still exist in cleaned
	original := model.Dataset{Rows: rows("A", "B", "C")}
	cleaned := model.Dataset{Rows: rows("B2", "C")}

	result := Positional(original, cleaned)
	if len(result.Removed) != 0 || len(result.Changed) != 2 {
		t.Fatalf("result = %+v", result)
	}
	if result.Changed[1].Index != 1 || result.Changed[1].CellDiffs["a"].After != "C" {
		t.Fatalf("misaligned change = %+v", result.Changed[1])
	}
}

func TestByIdentity(t *testing.T) {
	original := model.NewDataset([]string{"_row_id", "v"}, []model.Row{
		{"_row_id": "r1", "v": 1},
		{"_row_id": "r2", "v": 2},
		{"_row_id": "r3", "v": nil},
	})
	cleaned := model.NewDataset([]string{"_row_id", "v"}, []model.Row{
		{"_row_id": "r3", "v": 5},
		{"_row_id": "r1", "v": 1},
		{"_row_id": "r4", "v": 9},
	})

	result, err := ByIdentity(original, cleaned, "_row_id")
	if err != nil {
		t.Fatalf("ByIdentity: %v", err)
	}
	if result.Mode != model.DiffIdentity {
		t.Fatalf("mode = %s", result.Mode)
	}
	if len(result.Removed) != 1 || result.Removed[0].Index != 1 {
		t.Fatalf("removed = %+v", result.Removed)
	}
	if len(result.Changed) != 1 || result.Changed[0].Index != 2 || result.Changed[0].CellDiffs["v"].After != 5 {
		t.Fatalf("changed = %+v", result.Changed)
	}
	if len(result.Added) != 1 || result.Added[0].Index != 2 {
		t.Fatalf("added = %+v", result.Added)
	}
}

func TestByIdentityRequiresColumn(t *testing.T) {
	if _, err := ByIdentity(model.Dataset{}, model.Dataset{}, ""); err == nil {
		t.Fatal("expected an error without an id column")
	}
}

func TestCompare(t *testing.T) {
	ds := model.Dataset{Rows: rows(1, 2)}

	result, err := Compare(ds, ds, Options{})
	if err != nil || result.Mode != model.DiffPositional {
		t.Fatalf("default mode = %s, err = %v", result.Mode, err)
	}
	if _, err := Compare(ds, ds, Options{Mode: "fuzzy"}); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestMissingSummary(t *testing.T) {
	original := model.NewDataset([]string{"a"}, rows(nil, "", 3, 4))
	cleaned := model.NewDataset([]string{"a"}, rows(3.5, "", 3))

	deltas := MissingSummary(original, cleaned)
	if len(deltas) != 1 {
		t.Fatalf("deltas = %+v", deltas)
	}
	d := deltas[0]
	if d.BeforeMissing != 2 || d.AfterMissing != 1 || d.BeforeMissingPct != 50 || d.AfterMissingPct != 33 {
		t.Fatalf("delta = %+v", d)
	}
}

func TestDetectIDColumn(t *testing.T) {
	tests := []struct {
		name    string
		orig    model.Dataset
		cleaned model.Dataset
		want    string
	}{
		{
			name:    "customer_id",
			orig:    model.NewDataset([]string{"name", "customer_id"}, []model.Row{{"name": "a", "customer_id": 1.0}, {"name": "b", "customer_id": 2.0}}),
			cleaned: model.NewDataset([]string{"name", "customer_id"}, nil),
			want:    "customer_id",
		},
		{
			name:    "duplicate ids rejected",
			orig:    model.NewDataset([]string{"id"}, []model.Row{{"id": "x"}, {"id": "x"}}),
			cleaned: model.NewDataset([]string{"id"}, nil),
			want:    "",
		},
		{
			name:    "missing id rejected",
			orig:    model.NewDataset([]string{"uuid"}, []model.Row{{"uuid": "x"}, {"uuid": ""}}),
			cleaned: model.NewDataset([]string{"uuid"}, nil),
			want:    "",
		},
		{
			name:    "absent from cleaned",
			orig:    model.NewDataset([]string{"id"}, []model.Row{{"id": 1.0}}),
			cleaned: model.NewDataset([]string{"name"}, nil),
			want:    "",
		},
		{
			name:    "not an id name",
			orig:    model.NewDataset([]string{"idea"}, []model.Row{{"idea": 1.0}}),
			cleaned: model.NewDataset([]string{"idea"}, nil),
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectIDColumn(tt.orig, tt.cleaned); got != tt.want {
				t.Errorf("DetectIDColumn = %q, want %q", got, tt.want)
			}
		})
	}
}
