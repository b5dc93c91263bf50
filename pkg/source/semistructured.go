// pkg/source/semistructured.go
package source

import (
	"fmt"
	"reflect"
	"time"

	"github.com/goccy/go-json"
)

// normalizeCell maps one driver value onto a dataset cell.
// Semi-structured values (Snowflake ARRAY/OBJECT/VARIANT, Postgres json)
// become compact JSON text so they profile as strings.
func normalizeCell(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		// Text and numeric columns often arrive as bytes
		return typeCell(string(v))
	case string:
		return typeCell(v)
	case time.Time:
		return v.UTC()
	case bool, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v
	case []interface{}, map[string]interface{}:
		return compactJSON(v)
	}

	// Remaining slices, maps and structs from drivers
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return compactJSON(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// compactJSON encodes a semi-structured value, falling back to its Go form
func compactJSON(value interface{}) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
