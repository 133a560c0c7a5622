package eventsite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/lines"
)

// structuredEvents extracts every embedded JSON-LD Event object from doc.
// Pages may carry several ld+json blocks and events may hide at arbitrary
// nesting depth (@graph wrappers, arrays of arrays).
func structuredEvents(doc *goquery.Document, pageURL string) []event.Event {
	var events []event.Event

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var root interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &root); err != nil {
			return
		}
		for _, obj := range collectEventObjects(root) {
			if ev, ok := eventFromObject(obj, pageURL); ok {
				events = append(events, ev)
			}
		}
	})

	return events
}

// collectEventObjects walks root with an explicit worklist, gathering every
// object whose @type is or includes "Event". Event objects are walked
// further too, so nested sub-events are not lost.
func collectEventObjects(root interface{}) []map[string]interface{} {
	var found []map[string]interface{}
	worklist := []interface{}{root}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		switch v := current.(type) {
		case map[string]interface{}:
			if isEventType(v["@type"]) {
				found = append(found, v)
			}
			for _, child := range v {
				worklist = append(worklist, child)
			}
		case []interface{}:
			for _, child := range v {
				worklist = append(worklist, child)
			}
		}
	}

	return found
}

// isEventType matches "Event" and subtypes like "TheaterEvent", either as
// a plain string or inside a type array.
func isEventType(typeTag interface{}) bool {
	switch v := typeTag.(type) {
	case string:
		return strings.Contains(v, "Event")
	case []interface{}:
		for _, entry := range v {
			if s, ok := entry.(string); ok && strings.Contains(s, "Event") {
				return true
			}
		}
	}
	return false
}

func eventFromObject(obj map[string]interface{}, pageURL string) (event.Event, bool) {
	title := lines.Normalize(str(obj, "name"))
	if title == "" {
		return event.Event{}, false
	}

	startRaw := str(obj, "startDate")
	endRaw := str(obj, "endDate")
	date, timeStr := formatStartEnd(startRaw, endRaw)

	location := placeString(obj["location"])

	pageRef := pageURL
	if u := str(obj, "url"); u != "" {
		pageRef = u
	}

	idDate := startRaw
	if idDate == "" {
		idDate = date
	}

	return event.Event{
		UID:      event.ExternalUID(pageURL, title, idDate, location),
		Title:    title,
		Date:     date,
		Time:     timeStr,
		Location: location,
		URL:      pageRef,
		Source:   event.SourceExternal,
	}, true
}

// isoLayouts are tried in order against startDate/endDate values.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO returns the timestamp and whether it carried a time of day.
func parseISO(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout != "2006-01-02", true
		}
	}
	return time.Time{}, false, false
}

// formatStartEnd converts an ISO start/end pair into the display forms
// dd.mm.yyyy and "HH:MM Uhr", or "HH:MM bis HH:MM Uhr" when the end time
// differs. An unparsable start is copied literally with an empty time.
func formatStartEnd(startRaw, endRaw string) (string, string) {
	start, hasClock, ok := parseISO(startRaw)
	if !ok {
		return lines.Normalize(startRaw), ""
	}

	date := event.FormatDate(start)
	if !hasClock {
		return date, ""
	}

	startClock := start.Format("15:04")
	if end, endClock, ok := parseISO(endRaw); ok && endClock {
		if e := end.Format("15:04"); e != startClock {
			return date, fmt.Sprintf("%s bis %s Uhr", startClock, e)
		}
	}
	return date, startClock + " Uhr"
}

// placeString renders a JSON-LD place as "Name, Street, PLZ Locality",
// joining only the parts that are present.
func placeString(loc interface{}) string {
	switch v := loc.(type) {
	case string:
		return lines.Normalize(v)
	case []interface{}:
		for _, entry := range v {
			if s := placeString(entry); s != "" {
				return s
			}
		}
		return ""
	case map[string]interface{}:
		var parts []string
		if name := lines.Normalize(str(v, "name")); name != "" {
			parts = append(parts, name)
		}

		switch addr := v["address"].(type) {
		case string:
			if a := lines.Normalize(addr); a != "" {
				parts = append(parts, a)
			}
		case map[string]interface{}:
			if street := lines.Normalize(str(addr, "streetAddress")); street != "" {
				parts = append(parts, street)
			}
			postal := lines.Normalize(str(addr, "postalCode"))
			locality := lines.Normalize(str(addr, "addressLocality"))
			if town := lines.Normalize(postal + " " + locality); town != "" {
				parts = append(parts, town)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func str(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
