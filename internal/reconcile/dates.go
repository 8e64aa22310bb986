package reconcile

import (
	"math"
	"strings"
	"time"
)

// ISOMillisLayout is the date form hashed into game IDs.
const ISOMillisLayout = "2006-01-02T15:04:05.000Z"

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006",
	"20060102",
	time.RFC1123Z,
	time.RFC1123,
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1e11

// ParseDate reads a provider date value: a time.Time, one of the supported
// string layouts, or epoch seconds/milliseconds.
func ParseDate(v any) (time.Time, bool) {
	switch typed := v.(type) {
	case time.Time:
		if typed.IsZero() {
			return time.Time{}, false
		}
		return typed.UTC(), true
	case string:
		return parseDateString(typed)
	case float64:
		return fromEpoch(typed)
	case int64:
		return fromEpoch(float64(typed))
	case int:
		return fromEpoch(float64(typed))
	case interface{ Float64() (float64, error) }:
		f, err := typed.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func fromEpoch(v float64) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return time.Time{}, false
	}
	if v >= epochMillisThreshold {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// FormatISOMillis renders t in UTC with millisecond precision.
func FormatISOMillis(t time.Time) string {
	return t.UTC().Format(ISOMillisLayout)
}
