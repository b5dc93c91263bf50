// cmd/dqscore/render.go
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/scoring"
)

const maxCellWidth = 28

var (
	headingColor = color.New(color.Bold)
	goodColor    = color.New(color.FgGreen, color.Bold)
	fairColor    = color.New(color.FgYellow, color.Bold)
	poorColor    = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)

	categoryColors = map[model.Category]*color.Color{
		model.CategoryMissing:       color.New(color.FgYellow),
		model.CategoryDuplicate:     color.New(color.FgMagenta),
		model.CategoryOutlier:       color.New(color.FgRed),
		model.CategoryNormalization: color.New(color.FgCyan),
		model.CategoryClean:         color.New(color.FgGreen),
	}

	priorityColors = map[model.Priority]*color.Color{
		model.PriorityCritical: color.New(color.FgRed, color.Bold),
		model.PriorityHigh:     color.New(color.FgRed),
		model.PriorityMedium:   color.New(color.FgYellow),
		model.PriorityLow:      color.New(color.FgGreen),
	}
)

// writeJSON emits v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// scoreColor picks the color band for a 0-100 score
func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return goodColor
	case score >= 50:
		return fairColor
	default:
		return poorColor
	}
}

// fit truncates or pads a cell to exactly width display columns
func fit(value string, width int) string {
	if runewidth.StringWidth(value) > width {
		value = runewidth.Truncate(value, width, "…")
	}
	return runewidth.FillRight(value, width)
}

// table renders aligned rows; the first row is the header
type table struct {
	rows [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	if len(t.rows) == 0 {
		return
	}
	widths := make([]int, len(t.rows[0]))
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = min(max(widths[i], runewidth.StringWidth(cell)), maxCellWidth)
		}
	}

	for r, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fit(cell, widths[i])
		}
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if r == 0 {
			headingColor.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}

// printReport renders a profiling report for humans
func printReport(w io.Writer, name string, report *model.Report) {
	headingColor.Fprintf(w, "%s\n", name)
	fmt.Fprintln(w, scoring.Summary(report.Score, report.RowCount, len(report.Columns)))
	fmt.Fprintln(w)

	fmt.Fprint(w, "Quality score: ")
	scoreColor(report.Score.Final).Fprintf(w, "%d/100", report.Score.Final)
	dimColor.Fprintf(w, "  (issues %d, context %d/10)\n", report.Score.Partial, report.Score.ContextScore)

	for _, bar := range report.Issues {
		fmt.Fprintf(w, "  %s %d (%d%%)\n", fit(bar.Name, 20), bar.Count, bar.Percent)
	}
	fmt.Fprintln(w)

	t := &table{}
	t.add("COLUMN", "TYPE", "UNIQUE", "MISSING", "DUPLICATES", "OUTLIERS", "CONTEXT", "PRIORITY")
	for _, p := range scoring.RankColumns(report.OrderedProfiles()) {
		t.add(
			p.Name,
			string(p.Type),
			fmt.Sprint(p.UniqueCount),
			fmt.Sprint(p.MissingCount),
			fmt.Sprint(p.DuplicateCount),
			fmt.Sprint(p.Outliers()),
			fmt.Sprintf("%s %d/%d", p.Context.Label, p.Context.Valid, p.Context.Total),
			priorityColors[scoring.PriorityFor(p)].Sprint(scoring.PriorityFor(p)),
		)
	}
	t.render(w)

	if len(report.DateRanges) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Date ranges")
		for _, col := range report.Columns {
			if r, ok := report.DateRanges[col]; ok {
				fmt.Fprintf(w, "  %s %s .. %s (%d values)\n",
					fit(col, 20), r.Min.Format("2006-01-02"), r.Max.Format("2006-01-02"), r.Count)
			}
		}
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Recommendations")
	for _, rec := range report.Recommendations {
		c, ok := categoryColors[rec.Category]
		if !ok {
			c = dimColor
		}
		fmt.Fprintf(w, "  %s %s\n", c.Sprint("•"), rec.Text)
	}
}

// printDiff renders a diff result and the per-column missing summary
func printDiff(w io.Writer, result model.DiffResult, deltas []model.MissingDelta) {
	headingColor.Fprintf(w, "Diff (%s)\n", result.Mode)
	if result.IsEmpty() {
		goodColor.Fprintln(w, "No differences.")
	}

	for _, removed := range result.Removed {
		poorColor.Fprintf(w, "- row %d removed: %s\n", removed.Index, converter.CanonicalRow(removed.OriginalRow))
	}
	for _, added := range result.Added {
		goodColor.Fprintf(w, "+ row %d added: %s\n", added.Index, converter.CanonicalRow(added.CleanedRow))
	}
	for _, changed := range result.Changed {
		fairColor.Fprintf(w, "~ row %d changed\n", changed.Index)
		for _, col := range sortedKeys(changed.CellDiffs) {
			d := changed.CellDiffs[col]
			fmt.Fprintf(w, "    %s %s -> %s\n", fit(col, 20), displayValue(d.Before), displayValue(d.After))
		}
	}

	if len(deltas) == 0 {
		return
	}
	fmt.Fprintln(w)
	t := &table{}
	t.add("COLUMN", "MISSING BEFORE", "MISSING AFTER")
	for _, d := range deltas {
		t.add(d.Column,
			fmt.Sprintf("%d (%d%%)", d.BeforeMissing, d.BeforeMissingPct),
			fmt.Sprintf("%d (%d%%)", d.AfterMissing, d.AfterMissingPct))
	}
	t.render(w)
}

// displayValue shows missing cells distinctly from values
func displayValue(v interface{}) string {
	if v == nil {
		return dimColor.Sprint("<nil>")
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return converter.ToString(v)
}
