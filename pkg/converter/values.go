// pkg/converter/values.go
package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// IsMissing determines if a cell counts as missing.
// Only nil and the empty string are missing; 0, false and "  " are values.
func IsMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if strVal, ok := value.(string); ok {
		return strVal == ""
	}
	return false
}

// ToNumber coerces a cell to a number using generic conversion rules.
// The second return is false when the value has no numeric reading.
func ToNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		f := float64(v)
		return f, !math.IsNaN(f)
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case time.Time:
		return float64(v.UnixMilli()), true
	case string:
		return parseNumericString(v)
	case []byte:
		return parseNumericString(string(v))
	default:
		return 0, false
	}
}

// parseNumericString converts a string the way a generic number conversion does
func parseNumericString(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		// Whitespace-only strings convert to zero
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	// Prefixed integer literals (0x1F, 0o17, 0b101)
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	// Reject anything ParseFloat would accept but a decimal literal would not
	// (inf, nan, hex floats, underscores)
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// Overflow saturates to +/-Inf, underflow to 0
			return f, true
		}
		return 0, false
	}
	return f, true
}

// IsFinite reports whether f is neither NaN nor infinite
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsWholeNumber reports whether f is a finite integer value
func IsWholeNumber(f float64) bool {
	return IsFinite(f) && f == math.Trunc(f)
}

// ToString renders a cell the way a generic string conversion does; nil renders as ""
func ToString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case float32:
		return FormatNumber(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatNumber renders a float with the shortest round-trip representation,
// switching to exponent notation outside [1e-6, 1e21)
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads exponents to two digits (1e-07); strip the padding
	mantissa, exp, found := strings.Cut(s, "e")
	if !found {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// NormalizeKey is the trimmed string form used to compare cells for duplication
func NormalizeKey(value interface{}) string {
	return strings.TrimSpace(ToString(value))
}

// UniqueKey is a type-aware identity for distinct counting.
// Numbers compare by value across Go kinds, but 1 and "1" stay distinct.
func UniqueKey(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil:"
	case string:
		return "s:" + v
	case []byte:
		return "s:" + string(v)
	case bool:
		return "b:" + strconv.FormatBool(v)
	case time.Time:
		return "t:" + v.UTC().Format(time.RFC3339Nano)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := ToNumber(v)
		return "n:" + FormatNumber(f)
	default:
		return fmt.Sprintf("o:%v", v)
	}
}

// IsNumericCell reports whether the cell holds a native number rather than text
func IsNumericCell(value interface{}) bool {
	switch v := value.(type) {
	case float64:
		return !math.IsNaN(v)
	case float32:
		return !math.IsNaN(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}
