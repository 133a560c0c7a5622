package sessionnet

import (
	"regexp"
	"strings"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/lines"
)

const (
	// headerSentinel opens the summary block; a page without it simply
	// carries no text-derived events.
	headerSentinel = "Aktuelle Sitzungen"
	// trailerPrefix marks the page footer and ends the scan.
	trailerPrefix = "Software:"
)

// dayTokens are weekday abbreviations rendered as their own lines in the
// summary block. Pure noise, never an event slot.
var dayTokens = map[string]struct{}{
	"Mo": {}, "Di": {}, "Mi": {}, "Do": {}, "Fr": {}, "Sa": {}, "So": {},
}

var dateLine = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})\b(.*)$`)

// ParseTextEvents reconstructs events from the flattened summary block.
// A dd.mm.yyyy prefix opens an event; the title is the date line's
// remainder or the next non-blank line; the following non-noise lines are
// time and location. Lines matching no rule are skipped, never fatal —
// markup drift degrades to fewer events, not a crashed run.
func ParseTextEvents(ls []string, sourceURL string) []event.Event {
	start := -1
	for i, line := range ls {
		if line == headerSentinel {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var events []event.Event
	i := start + 1

	for i < len(ls) {
		line := ls[i]

		if strings.HasPrefix(line, trailerPrefix) {
			break
		}
		if isNoise(line) {
			i++
			continue
		}

		m := dateLine.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		date := m[1]
		rest := lines.Normalize(m[2])

		j := skipBlank(ls, i+1)

		var title string
		if rest != "" {
			title = rest
		} else {
			if j >= len(ls) {
				break
			}
			title = ls[j]
			j++
		}

		j = skipBlankOrNoise(ls, j)
		if j >= len(ls) {
			break
		}
		timeLine := lines.StripBullets(ls[j])
		j++

		j = skipBlankOrNoise(ls, j)
		location := ""
		if j < len(ls) {
			location = lines.StripBullets(ls[j])
		}

		events = append(events, event.Event{
			UID:      event.TextUID(date, title, timeLine, location),
			Title:    title,
			Date:     date,
			Time:     timeLine,
			Location: location,
			URL:      sourceURL,
			Source:   event.SourceText,
		})

		i = j + 1
	}

	return events
}

func isNoise(line string) bool {
	_, ok := dayTokens[line]
	return ok
}

// skipBlank advances past empty lines. Flattened input normally carries
// none, but raw text input may.
func skipBlank(ls []string, j int) int {
	for j < len(ls) && ls[j] == "" {
		j++
	}
	return j
}

// skipBlankOrNoise additionally passes over day-name lines.
func skipBlankOrNoise(ls []string, j int) int {
	for j < len(ls) && (ls[j] == "" || isNoise(ls[j])) {
		j++
	}
	return j
}
