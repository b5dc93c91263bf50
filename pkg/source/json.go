// pkg/source/json.go
package source

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/David-Botos/data-quality/pkg/model"
)

// ReadJSON decodes an array of objects. Non-object elements are skipped.
// Object keys carry no order, so columns resolve from the first row's sorted keys.
func ReadJSON(r io.Reader) (model.Dataset, error) {
	var items []interface{}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return model.Dataset{}, fmt.Errorf("failed to decode JSON: %w", err)
	}

	rows := make([]model.Row, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		rows = append(rows, model.Row(obj))
	}

	return model.Dataset{Rows: rows}, nil
}
