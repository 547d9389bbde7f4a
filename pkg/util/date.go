package util

import (
	"time"
)

// InvalidTime is shown in place of a timestamp that cannot be displayed.
const InvalidTime = "Invalid Time"

// ClockLayout renders a local hour:minute label.
const ClockLayout = "15:04"

// minUnix and maxUnix bound the displayable range to years 1..9999.
var (
	minUnix = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnix = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// ValidUnix reports whether ts (unix seconds) can be shown as a calendar time.
func ValidUnix(ts int64) bool {
	return ts >= minUnix && ts <= maxUnix
}

// FormatClock renders ts (unix seconds) as hour:minute in loc. It returns
// (InvalidTime, false) when ts is outside the displayable range.
func FormatClock(ts int64, loc *time.Location) (string, bool) {
	if !ValidUnix(ts) {
		return InvalidTime, false
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format(ClockLayout), true
}
