// Package dates handles the calendar-date strings used by announcement
// visibility windows.
//
// Dates are carried end to end as "YYYY-MM-DD" strings. The format sorts
// lexicographically in chronological order, so window checks are plain
// string comparisons both here and in Mongo queries ($gte on the raw
// string). Do not swap these for time.Time comparisons without keeping
// the inclusive boundary semantics identical.
package dates

import (
	"errors"
	"time"
)

// Layout is the wire and storage format for calendar dates.
const Layout = "2006-01-02"

// ErrBadFormat is returned for anything that does not parse strictly as
// YYYY-MM-DD.
var ErrBadFormat = errors.New("invalid date format, use YYYY-MM-DD")

// Validate checks that s is a well-formed YYYY-MM-DD date.
func Validate(s string) error {
	if _, err := time.Parse(Layout, s); err != nil {
		return ErrBadFormat
	}
	return nil
}

// Today formats now as a YYYY-MM-DD date string.
func Today(now time.Time) string {
	return now.Format(Layout)
}

// After reports whether date a is strictly after date b. Both must be
// valid YYYY-MM-DD strings; lexicographic order equals chronological
// order for that format.
func After(a, b string) bool {
	return a > b
}
