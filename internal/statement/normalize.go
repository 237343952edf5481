package statement

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Layouts tried by NormalizeDate after the two primary forms. Bank
// exports occasionally ship timestamps or dotted European dates.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
}

// NormalizeDate converts a locale-formatted date string to a UTC
// calendar date. It accepts YYYY-MM-DD as-is and DD/MM/YYYY reordered;
// otherwise it tries a small set of known layouts. ok is false when
// nothing parses (callers skip the row).
func NormalizeDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	if t, err := time.Parse("02/01/2006", v); err == nil {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeAmount converts "1.234,56" (European) or "1234.56" to a
// decimal. If a comma appears after the last dot the comma is the
// decimal separator: dots are stripped as thousands separators and the
// final comma becomes a dot. Unparseable input yields zero, never an
// error; importers treat a zero amount with an empty description as an
// unusable row.
func NormalizeAmount(s string) decimal.Decimal {
	v := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if v == "" {
		return decimal.Zero
	}

	if i := strings.LastIndex(v, ","); i > strings.LastIndex(v, ".") {
		v = strings.ReplaceAll(v, ".", "")
		i = strings.LastIndex(v, ",")
		v = v[:i] + "." + v[i+1:]
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
