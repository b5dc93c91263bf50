package converter

import (
	"math"
	"testing"
	"time"

	"github.com/David-Botos/data-quality/pkg/model"
)

func TestIsMissing(t *testing.T) {
	cases := []struct {
		value interface{}
		want  bool
	}{
		{nil, true},
		{"", true},
		{" ", false},
		{0, false},
		{0.0, false},
		{false, false},
		{"0", false},
	}
	for _, tc := range cases {
		if got := IsMissing(tc.value); got != tc.want {
			t.Errorf("IsMissing(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  float64
		ok    bool
	}{
		{"int", 42, 42, true},
		{"float", 2.5, 2.5, true},
		{"uint8", uint8(7), 7, true},
		{"padded string", " 42 ", 42, true},
		{"whitespace only", "   ", 0, true},
		{"exponent", "1e3", 1000, true},
		{"leading dot", ".5", 0.5, true},
		{"hex", "0x1F", 31, true},
		{"octal", "0o17", 15, true},
		{"binary", "0b101", 5, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"thousands separator", "1,234", 0, false},
		{"word", "abc", 0, false},
		{"nan", "NaN", 0, false},
		{"inf", "inf", 0, false},
		{"nil", nil, 0, false},
		{"NaN float", math.NaN(), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToNumber(tc.value)
			if ok != tc.ok {
				t.Fatalf("ToNumber(%#v) ok = %v, want %v", tc.value, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ToNumber(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}

	if got, ok := ToNumber("-Infinity"); !ok || !math.IsInf(got, -1) {
		t.Fatalf("ToNumber(-Infinity) = %v, %v", got, ok)
	}

	ts := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got, ok := ToNumber(ts); !ok || got != float64(ts.UnixMilli()) {
		t.Fatalf("ToNumber(time) = %v, %v", got, ok)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{100, "100"},
		{1.5, "1.5"},
		{-3.25, "-3.25"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{math.Inf(1), "Infinity"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.value); got != tc.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	if NormalizeKey("  a ") != "a" {
		t.Fatal("expected trimmed key")
	}
	if NormalizeKey(3) != NormalizeKey("3") {
		t.Fatal("expected number and numeric string to share a duplicate key")
	}
}

func TestUniqueKey(t *testing.T) {
	if UniqueKey(1) != UniqueKey(1.0) {
		t.Fatal("expected int and float of equal value to be the same distinct value")
	}
	if UniqueKey(1) == UniqueKey("1") {
		t.Fatal("expected number and string to be distinct values")
	}
	if UniqueKey("") == UniqueKey(nil) {
		t.Fatal("expected empty string and nil to differ")
	}
}

func TestDetectDateFormat(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		kind  model.DateKind
		want  time.Time
	}{
		{"unix seconds string", "1700000000", model.DateUnixSeconds, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)},
		{"unix seconds number", 1700000000, model.DateUnixSeconds, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)},
		{"unix millis", int64(1700000000000), model.DateUnixMillis, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)},
		{"excel serial", 45000, model.DateExcel, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"iso date", "2024-01-15", model.DateISO, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-01-15T10:30:00Z", model.DateISO, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"slash", "15/01/2024", model.DateSlash, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"slash two digit year", "01/02/75", model.DateSlash, time.Date(1975, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"yyyy slash", "2024/01/15", model.DateYYYYSlash, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"dash", "15-01-24", model.DateDash, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"time near epoch", time.Unix(1, 0), model.DateISO, time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)},
		{"time value", time.Date(2024, 5, 1, 8, 0, 0, 0, time.FixedZone("X", 3600)), model.DateISO, time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectDateFormat(tc.value)
			if got == nil {
				t.Fatalf("DetectDateFormat(%#v) = nil", tc.value)
			}
			if got.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", got.Kind, tc.kind)
			}
			if !got.Value.Equal(tc.want) {
				t.Fatalf("value = %s, want %s", got.Value, tc.want)
			}
		})
	}
}

func TestDetectDateFormatNoMatch(t *testing.T) {
	for _, value := range []interface{}{nil, "", "hello", 5, "31/02/2024", "13/13/2024", true} {
		if got := DetectDateFormat(value); got != nil {
			t.Errorf("DetectDateFormat(%#v) = %+v, want nil", value, got)
		}
	}
}

func TestInferColumnType(t *testing.T) {
	cases := []struct {
		name   string
		values []interface{}
		want   model.ColumnType
	}{
		{"empty", []interface{}{}, model.TypeUnknown},
		{"only missing", []interface{}{nil, ""}, model.TypeUnknown},
		{"small integers", []interface{}{25, 30, 45}, model.TypeInteger},
		{"integer strings with padding", []interface{}{" 3 ", "4", nil}, model.TypeInteger},
		{"decimals", []interface{}{"1", "2.5"}, model.TypeNumber},
		{"mixed", []interface{}{"a", 1}, model.TypeString},
		{"date wins over integer", []interface{}{"1700000000", 1700000001}, model.TypeDate},
		{"calendar strings", []interface{}{"2024-01-15", "15/01/2024", ""}, model.TypeDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferColumnType(tc.values); got != tc.want {
				t.Fatalf("InferColumnType(%v) = %s, want %s", tc.values, got, tc.want)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	rng, ok := DateRange([]interface{}{"2024-03-01", nil, "15/01/2024", "junk"})
	if !ok {
		t.Fatal("expected a range")
	}
	if rng.Count != 2 {
		t.Fatalf("count = %d, want 2", rng.Count)
	}
	if !rng.Min.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("min = %s", rng.Min)
	}
	if !rng.Max.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("max = %s", rng.Max)
	}

	if _, ok := DateRange([]interface{}{"x"}); ok {
		t.Fatal("expected no range for unparseable column")
	}
}
