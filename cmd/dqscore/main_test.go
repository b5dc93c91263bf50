package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
)

func TestFit(t *testing.T) {
	cases := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"pads short values", "age", 6, "age   "},
		{"exact width", "column", 6, "column"},
		{"truncates long values", "customer_email", 8, "custome…"},
		{"wide runes", "日本語", 4, "日… "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fit(tc.value, tc.width)
			if got != tc.want {
				t.Fatalf("fit(%q, %d) = %q, want %q", tc.value, tc.width, got, tc.want)
			}
			if w := runewidth.StringWidth(got); w != tc.width {
				t.Fatalf("width = %d, want %d", w, tc.width)
			}
		})
	}
}

func TestScoreColor(t *testing.T) {
	cases := []struct {
		score int
		want  *color.Color
	}{
		{100, goodColor},
		{80, goodColor},
		{79, fairColor},
		{50, fairColor},
		{49, poorColor},
		{0, poorColor},
	}
	for _, tc := range cases {
		if got := scoreColor(tc.score); got != tc.want {
			t.Errorf("scoreColor(%d) picked the wrong band", tc.score)
		}
	}
}

// writeCSV writes content into dir and returns the path
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// newDiffCommand builds an isolated diff command writing into out
func newDiffCommand(out *bytes.Buffer, flags map[string]string) (*cobra.Command, error) {
	cmd := &cobra.Command{Use: "diff", RunE: runDiff}
	addDiffFlags(cmd)
	cmd.SetOut(out)
	for name, value := range flags {
		if err := cmd.Flags().Set(name, value); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

type diffOutput struct {
	Diff    model.DiffResult     `json:"diff"`
	Missing []model.MissingDelta `json:"missing"`
}

func TestRunDiff(t *testing.T) {
	logger = zap.NewNop()
	color.NoColor = true

	dir := t.TempDir()
	original := writeCSV(t, dir, "original.csv", "id,name,age\n1,Ann,30\n2,Bob,\n3,Cy,41\n")
	cleaned := writeCSV(t, dir, "cleaned.csv", "id,name,age\n1,Ann,30\n2,Bob,35\n3,Cy,41\n")

	t.Run("positional json", func(t *testing.T) {
		var out bytes.Buffer
		cmd, err := newDiffCommand(&out, map[string]string{"format": "json"})
		if err != nil {
			t.Fatal(err)
		}
		if err := runDiff(cmd, []string{original, cleaned}); err != nil {
			t.Fatalf("runDiff: %v", err)
		}

		var got diffOutput
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("decode output: %v\n%s", err, out.String())
		}
		if got.Diff.Mode != model.DiffPositional {
			t.Fatalf("mode = %s", got.Diff.Mode)
		}
		if len(got.Diff.Removed) != 0 || len(got.Diff.Changed) != 1 || got.Diff.Changed[0].Index != 1 {
			t.Fatalf("diff = %+v", got.Diff)
		}
		if _, ok := got.Diff.Changed[0].CellDiffs["age"]; !ok {
			t.Fatalf("expected an age change, got %+v", got.Diff.Changed[0].CellDiffs)
		}
	})

	t.Run("identity detects id column", func(t *testing.T) {
		var out bytes.Buffer
		cmd, err := newDiffCommand(&out, map[string]string{"mode": "identity"})
		if err != nil {
			t.Fatal(err)
		}
		if err := runDiff(cmd, []string{original, cleaned}); err != nil {
			t.Fatalf("runDiff: %v", err)
		}
		if !strings.Contains(out.String(), "Diff (identity)") || !strings.Contains(out.String(), "row 1 changed") {
			t.Fatalf("unexpected output:\n%s", out.String())
		}
	})

	t.Run("identity without id column", func(t *testing.T) {
		plain := writeCSV(t, dir, "plain.csv", "name\nAnn\n")
		var out bytes.Buffer
		cmd, err := newDiffCommand(&out, map[string]string{"mode": "identity"})
		if err != nil {
			t.Fatal(err)
		}
		if err := runDiff(cmd, []string{plain, plain}); err == nil {
			t.Fatal("expected an error when no id column can be found")
		}
	})
}
