// pkg/source/source.go
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

var (
	// ErrNoUsableRows is returned when a source decodes to no rows or only empty rows
	ErrNoUsableRows = errors.New("no usable rows")
	// ErrUnsupportedFormat is returned for file types without a decoder
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format identifies a file decoder
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatFromName picks the decoder from a file extension
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch Format(ext) {
	case FormatCSV, FormatXLSX, FormatJSON:
		return Format(ext), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Decode reads a dataset in the given format
func Decode(r io.Reader, format Format) (model.Dataset, error) {
	var (
		ds  model.Dataset
		err error
	)

	switch format {
	case FormatCSV:
		ds, err = ReadCSV(r)
	case FormatXLSX:
		ds, err = ReadXLSX(r)
	case FormatJSON:
		ds, err = ReadJSON(r)
	default:
		return model.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return model.Dataset{}, err
	}

	if !hasUsableRows(ds) {
		return model.Dataset{}, ErrNoUsableRows
	}
	return ds, nil
}

// DecodeFile opens and decodes a dataset file, choosing the format by extension
func DecodeFile(path string) (model.Dataset, error) {
	logger := zap.L().Named("source")

	format, err := FormatFromName(path)
	if err != nil {
		return model.Dataset{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f, format)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	logger.Debug("Decoded dataset",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.ColumnNames())))

	return ds, nil
}

// hasUsableRows reports whether any row holds a non-missing value
func hasUsableRows(ds model.Dataset) bool {
	for _, row := range ds.Rows {
		for _, v := range row {
			if !converter.IsMissing(v) {
				return true
			}
		}
	}
	return false
}

var plainNumber = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`)

// typeCell converts a raw spreadsheet cell the way sheet readers do:
// plain numbers become float64, TRUE/FALSE become bool, the rest stays text
func typeCell(raw string) interface{} {
	if plainNumber.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	switch strings.ToUpper(raw) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return raw
}

// headerNames names blank headers __EMPTY, __EMPTY_1, ... and suffixes repeats with _1, _2
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	empty := 0

	for i, h := range raw {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = "__EMPTY"
			if empty > 0 {
				name = fmt.Sprintf("__EMPTY_%d", empty)
			}
			empty++
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// rowsFromGrid turns a header row plus records into a dataset.
// Empty cells are left out of the row and blank records are skipped.
func rowsFromGrid(grid [][]string) model.Dataset {
	if len(grid) == 0 {
		return model.Dataset{}
	}

	columns := headerNames(grid[0])
	rows := make([]model.Row, 0, len(grid)-1)

	for _, record := range grid[1:] {
		row := make(model.Row, len(columns))
		for i, raw := range record {
			if i >= len(columns) || raw == "" {
				continue
			}
			row[columns[i]] = typeCell(raw)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return model.NewDataset(columns, rows)
}
