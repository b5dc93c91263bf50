// pkg/source/csv.go
package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// ReadCSV decodes comma-separated text with a header row
func ReadCSV(r io.Reader) (model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grid, err := reader.ReadAll()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rowsFromGrid(grid), nil
}

// ExportCSV writes the dataset with a header of column names and each cell
// JSON-encoded, so strings are quoted and numbers are bare. nil becomes "".
func ExportCSV(w io.Writer, ds model.Dataset) error {
	bw := bufio.NewWriter(w)
	columns := ds.ColumnNames()

	if _, err := bw.WriteString(strings.Join(columns, ",") + "\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cells := make([]string, len(columns))
	for i, row := range ds.Rows {
		for j, col := range columns {
			var value interface{}
			if row != nil {
				value = row[col]
			}
			encoded, err := encodeCell(value)
			if err != nil {
				return fmt.Errorf("failed to encode row %d column %s: %w", i, col, err)
			}
			cells[j] = encoded
		}
		if _, err := bw.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return bw.Flush()
}

// ExportCSVFile writes the dataset to a file
func ExportCSVFile(path string, ds model.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ExportCSV(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encodeCell JSON-encodes one cell; non-finite numbers encode as null
func encodeCell(value interface{}) (string, error) {
	if value == nil {
		value = ""
	}
	if f, ok := value.(float64); ok && !converter.IsFinite(f) {
		return "null", nil
	}
	data, err := json.MarshalNoEscape(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
