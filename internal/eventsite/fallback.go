package eventsite

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/lines"
)

var (
	datePattern   = regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`)
	clockPattern  = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*Uhr`)
	postalPattern = regexp.MustCompile(`\b\d{5}\b`)
	digitPattern  = regexp.MustCompile(`\d`)
)

// fallbackEvent reconstructs a single event from a page without JSON-LD by
// scanning the flattened text for a date, a clock time and a plausible
// location line. Pages yielding neither date nor time produce no record.
func fallbackEvent(doc *goquery.Document, pageURL string) (event.Event, bool) {
	title := lines.Normalize(doc.Find("h1").First().Text())
	if title == "" {
		title = lines.Normalize(doc.Find("title").First().Text())
	}
	if title == "" {
		return event.Event{}, false
	}

	ls := lines.Flatten(doc)

	var date, timeStr string
	for _, line := range ls {
		if date == "" {
			if m := datePattern.FindString(line); m != "" {
				date = m
			}
		}
		if timeStr == "" {
			if m := clockPattern.FindString(line); m != "" {
				timeStr = lines.Normalize(m)
			}
		}
		if date != "" && timeStr != "" {
			break
		}
	}
	if date == "" && timeStr == "" {
		return event.Event{}, false
	}

	location := locationLine(ls)

	return event.Event{
		UID:      event.ExternalUID(pageURL, title, date, location),
		Title:    title,
		Date:     date,
		Time:     timeStr,
		Location: location,
		URL:      pageURL,
		Source:   event.SourceExternalFallback,
	}, true
}

// locationLine picks the most address-like line: a postal-code line wins,
// otherwise the first digit-bearing line that is neither link-like nor a
// bare date/time line.
func locationLine(ls []string) string {
	for _, line := range ls {
		if linkLike(line) {
			continue
		}
		if postalPattern.MatchString(line) && !datePattern.MatchString(line) {
			return line
		}
	}
	for _, line := range ls {
		if linkLike(line) || !digitPattern.MatchString(line) {
			continue
		}
		stripped := clockPattern.ReplaceAllString(datePattern.ReplaceAllString(line, ""), "")
		if !digitPattern.MatchString(stripped) {
			continue
		}
		return line
	}
	return ""
}

func linkLike(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "http") ||
		strings.Contains(lower, "www.") ||
		strings.Contains(lower, "@")
}
