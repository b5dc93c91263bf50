// pkg/converter/dates.go
package converter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/David-Botos/data-quality/pkg/model"
)

const msPerDay = 86400000

// Numeric ranges recognized as timestamps (exclusive bounds)
const (
	unixSecondsMin = 1_000_000_000
	unixSecondsMax = 2_000_000_000
	unixMillisMin  = 1_000_000_000_000
	unixMillisMax  = 2e16
	excelSerialMin = 59
	excelSerialMax = 60000
)

// excelEpoch is day zero of the spreadsheet serial date system
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// isoLayouts are the generic calendar/time layouts tried before the regex patterns
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	"20060102T150405Z",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
	time.UnixDate,
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon, 2 Jan 2006",
}

// datePattern is a day/month/year shape with the positions of each part
type datePattern struct {
	re    *regexp.Regexp
	kind  model.DateKind
	day   int
	month int
	year  int
}

// Patterns are tried in order; the first that yields a valid calendar date wins
var datePatterns = []datePattern{
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`), kind: model.DateSlash, day: 1, month: 2, year: 3},
	{re: regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`), kind: model.DateYYYYSlash, day: 3, month: 2, year: 1},
	{re: regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{2,4})$`), kind: model.DateDash, day: 1, month: 2, year: 3},
}

// DetectDateFormat recovers a date from a raw cell.
// Numeric readings take precedence over string layouts, so "1700000000"
// is always unix-seconds. Returns nil when no rule matches.
func DetectDateFormat(value interface{}) *model.DateParseResult {
	if IsMissing(value) {
		return nil
	}

	// Native timestamps are already dates; their epoch reading is not a serial
	if t, ok := value.(time.Time); ok {
		return &model.DateParseResult{Kind: model.DateISO, Value: t.UTC()}
	}

	if num, ok := ToNumber(value); ok && IsFinite(num) {
		if result := fromNumber(num); result != nil {
			return result
		}
	}

	switch v := value.(type) {
	case string:
		return fromString(v)
	case []byte:
		return fromString(string(v))
	}

	return nil
}

// fromNumber checks the numeric timestamp ranges
func fromNumber(num float64) *model.DateParseResult {
	switch {
	case num > unixSecondsMin && num < unixSecondsMax:
		return &model.DateParseResult{
			Kind:  model.DateUnixSeconds,
			Value: time.UnixMilli(int64(num * 1000)).UTC(),
		}
	case num > unixMillisMin && num < unixMillisMax:
		return &model.DateParseResult{
			Kind:  model.DateUnixMillis,
			Value: time.UnixMilli(int64(num)).UTC(),
		}
	case num > excelSerialMin && num < excelSerialMax:
		return &model.DateParseResult{
			Kind:  model.DateExcel,
			Value: excelEpoch.Add(time.Duration(int64(num*msPerDay)) * time.Millisecond),
		}
	}
	return nil
}

// fromString tries the generic layouts, then the day/month/year patterns
func fromString(raw string) *model.DateParseResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &model.DateParseResult{Kind: model.DateISO, Value: t.UTC()}
		}
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if t, ok := calendarDate(m[p.year], m[p.month], m[p.day]); ok {
			return &model.DateParseResult{Kind: p.kind, Value: t}
		}
	}

	return nil
}

// calendarDate builds a UTC date and rejects impossible days such as 31/02
func calendarDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	// Two-digit years pivot at 70
	if len(yearStr) == 2 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// DateRange returns the earliest and latest recoverable dates of a column
func DateRange(values []interface{}) (model.DateRange, bool) {
	var rng model.DateRange
	for _, v := range values {
		parsed := DetectDateFormat(v)
		if parsed == nil {
			continue
		}
		if rng.Count == 0 || parsed.Value.Before(rng.Min) {
			rng.Min = parsed.Value
		}
		if rng.Count == 0 || parsed.Value.After(rng.Max) {
			rng.Max = parsed.Value
		}
		rng.Count++
	}
	return rng, rng.Count > 0
}
