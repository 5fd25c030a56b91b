package record

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// IntervalMinutes returns the elapsed minutes between the local clock
// readings of start and end. A negative raw difference means the interval
// crosses midnight and gets the full day added back; exact equality is a
// zero-length interval, not a wrap.
func IntervalMinutes(start, end time.Time) int {
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	diff := endMin - startMin
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff
}

// ResolveInterval computes the duration of a start/end pair whose clock
// readings were entered against the same calendar date, and returns the end
// timestamp advanced by one day when the interval wraps past midnight so
// that start/end remain a consistent absolute interval.
func ResolveInterval(start, end time.Time) (minutes int, resolvedEnd time.Time) {
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	diff := endMin - startMin
	if diff < 0 {
		return diff + minutesPerDay, end.AddDate(0, 0, 1)
	}
	return diff, end
}

// NormalizeInterval derives the duration for a start/end pair arriving at
// the boundary. An end instant already after the start is a normalized
// absolute interval and is taken as-is; otherwise the pair is treated as
// same-day clock readings and resolved with the overnight wrap. Equal
// instants are a zero-length interval, never a wrap.
func NormalizeInterval(start, end time.Time) (minutes int, resolvedEnd time.Time) {
	if end.After(start) {
		return int(end.Sub(start) / time.Minute), end
	}
	return ResolveInterval(start, end)
}

// FormatDuration renders minutes as a zero-padded "HH:MM" string.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
