package event

import "time"

// dateLayout is the display form used across both sources.
const dateLayout = "02.01.2006"

// sentinelDate sorts records with unparsable dates after everything else.
var sentinelDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ParseDate parses a dd.mm.yyyy date. The second return is false when the
// text does not parse; callers needing an ordering use SortDate instead.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortDate is ParseDate with the unparsable case mapped to the maximum
// sentinel, for use in sort comparisons.
func SortDate(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return sentinelDate
}

// FormatDate renders t in the display form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
