package event

import (
	"sort"
	"strings"

	"github.com/fkoehler/stadtticker/internal/lines"
)

// Less reports whether a orders before b under the canonical order:
// calendar date, then first time token in the time field, then lowercased
// title. Unparsable dates and untimed events sort last via sentinels.
func Less(a, b Event) bool {
	da, db := SortDate(lines.Normalize(a.Date)), SortDate(lines.Normalize(b.Date))
	if !da.Equal(db) {
		return da.Before(db)
	}
	ta, tb := lines.FirstTimeToken(a.Time), lines.FirstTimeToken(b.Time)
	if ta != tb {
		return ta < tb
	}
	return strings.ToLower(lines.Normalize(a.Title)) < strings.ToLower(lines.Normalize(b.Title))
}

// Sort orders events in place by the canonical order. Used both for output
// and for delivery sequencing.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}
