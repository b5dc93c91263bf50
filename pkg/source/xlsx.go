// pkg/source/xlsx.go
package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/David-Botos/data-quality/pkg/model"
)

// ReadXLSX decodes the first sheet of a workbook with a header row.
// Cells are read raw, so dates arrive as serial numbers.
func ReadXLSX(r io.Reader) (model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Dataset{}, ErrNoUsableRows
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rowsFromGrid(grid), nil
}
