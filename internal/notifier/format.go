package notifier

import (
	"strings"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/lines"
)

// FormatMessage renders the UTF-8 text body of a notification: labeled
// title, date, time and location lines in that order, empty fields
// omitted, followed by the link.
func FormatMessage(ev event.Event) string {
	var msg strings.Builder

	appendField(&msg, "Gremium", ev.Title)
	appendField(&msg, "Datum", ev.Date)
	appendField(&msg, "Zeit", ev.Time)
	appendField(&msg, "Ort", ev.Location)

	if ev.URL != "" {
		msg.WriteString("Link: " + ev.URL)
	}

	return strings.TrimRight(msg.String(), "\n")
}

func appendField(msg *strings.Builder, label, value string) {
	if v := lines.Normalize(value); v != "" {
		msg.WriteString(label + ": " + v + "\n")
	}
}
