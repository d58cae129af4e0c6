package status

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/vanderheijden86/sunburst/pkg/debug"
)

// ParseDate parses a free-form date string. Empty or unparseable values are
// reported as absent rather than as an error; callers treat an absent due
// date as "not overdue", which biases statuses toward ahead.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ms, ok := epochMillis(s); ok {
		return time.UnixMilli(ms).UTC(), true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		debug.Log("status: ignoring unparseable date %q: %v", s, err)
		return time.Time{}, false
	}
	return t, true
}

// epochMillis recognises numeric timestamps in milliseconds. Short digit
// runs are left to dateparse, which reads them as compact dates.
func epochMillis(s string) (int64, bool) {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) < 11 || strings.Trim(digits, "0123456789") != "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// present reports whether a date field carries any value at all. Completion,
// dismissal and closed markers count as present even when the value cannot
// be parsed; only due dates need a usable timestamp.
func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
