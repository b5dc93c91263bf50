// pkg/converter/canonical.go
package converter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/David-Botos/data-quality/pkg/model"
)

// CanonicalRow serializes a row with sorted keys so equal rows produce equal strings.
// Non-finite floats serialize as null.
func CanonicalRow(row model.Row) string {
	data, err := json.Marshal(sanitizeRow(row))
	if err != nil {
		// Only exotic cell types get here; fall back to their printed form
		return fmt.Sprintf("%v", row)
	}
	return string(data)
}

// sanitizeRow replaces values the JSON encoder rejects
func sanitizeRow(row model.Row) model.Row {
	if row == nil {
		return nil
	}
	clean := make(model.Row, len(row))
	for k, v := range row {
		switch f := v.(type) {
		case float64:
			if !IsFinite(f) {
				v = nil
			}
		case float32:
			if !IsFinite(float64(f)) {
				v = nil
			}
		}
		clean[k] = v
	}
	return clean
}

// Fingerprint derives a stable content hash of a dataset.
// Column order and row order both contribute.
func Fingerprint(ds model.Dataset) string {
	h := sha256.New()

	columns, err := json.Marshal(ds.ColumnNames())
	if err == nil {
		h.Write(columns)
	}
	h.Write([]byte{'\n'})

	for _, row := range ds.Rows {
		h.Write([]byte(CanonicalRow(row)))
		h.Write([]byte{'\n'})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Round rounds half up (2.5 -> 3, -2.5 -> -2)
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent returns round(part/total*100), treating a zero total as one
func Percent(part, total int) int {
	if total <= 0 {
		total = 1
	}
	return Round(float64(part) / float64(total) * 100)
}
