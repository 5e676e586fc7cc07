package datatable

import (
	"math"
	"strings"
	"time"
)

// TimeLayouts are tried in order by ParseTime for string values.
var TimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTime converts a cell value to a time.Time.
// Numbers are interpreted as milliseconds since the Unix epoch.
// Returns false if the value can't be converted.
func ParseTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range TimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	ms, ok := AsNumber(val)
	if !ok || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
