package feed

import (
	"strings"
	"time"
)

// Layouts that carry their own zone information.
var zonedLayouts = []string{
	time.RFC1123Z,
	time.RFC3339,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05-07:00",
}

// Layouts without an offset. These are read as UTC; sources that publish
// local time without an offset get misattributed near midnight, a known
// accuracy limitation inherited from the feeds themselves.
var bareLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006 15:04",
}

// ResolveTime parses a heterogeneous feed timestamp and converts it to the
// display zone. Unparsable or empty input reports ok=false; callers treat
// an absent timestamp as a normal case, never as an error.
func ResolveTime(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range bareLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}
