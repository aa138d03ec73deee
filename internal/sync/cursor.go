package sync

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for the ISO form of the sync cursor, tried in order before
// the epoch-millisecond fallback.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseSince normalizes the client-supplied sync cursor to epoch milliseconds.
// Accepts JSON numbers and strings; strings are tried as ISO-8601 first, then
// as an epoch-millisecond integer. Returns false for anything else.
func ParseSince(v any) (int64, bool) {
	switch raw := v.(type) {
	case float64:
		return int64(raw), true
	case int64:
		return raw, true
	case int:
		return int64(raw), true
	case json.Number:
		n, err := raw.Int64()
		if err != nil {
			f, ferr := raw.Float64()
			if ferr != nil {
				return 0, false
			}
			return int64(f), true
		}
		return n, true
	case string:
		s := strings.TrimSpace(raw)
		if s == "" {
			return 0, false
		}
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UnixMilli(), true
			}
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
