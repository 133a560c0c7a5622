package event

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/fkoehler/stadtticker/internal/lines"
)

// Source tags where a record came from.
type Source string

const (
	SourceText             Source = "text"              // reconstructed from the flattened summary block
	SourceDetail           Source = "detail"            // fetched from a per-session detail page
	SourceExternal         Source = "external"          // embedded structured event object
	SourceExternalFallback Source = "external-fallback" // heuristic scan of an external page
)

// Event is one scheduled occurrence, unified across all sources.
type Event struct {
	UID      string `json:"uid"`
	Title    string `json:"title"`
	Date     string `json:"date"` // dd.mm.yyyy, free text when unparsable
	Time     string `json:"time"` // free text, may encode a range
	Location string `json:"location"`
	URL      string `json:"url"`
	Source   Source `json:"source"`
}

// TextUID hashes the normalized semantic fields of a text-derived record.
// No natural key exists in the summary block, so identity is content.
func TextUID(date, title, timeStr, location string) string {
	return "txt:" + contentHash(date, title, timeStr, location)
}

// DetailUID derives identity from the numeric session id alone, so content
// edits on the detail page do not change it.
func DetailUID(sessionID string) string {
	return "ksinr:" + sessionID
}

// ExternalUID includes the page URL to avoid collisions between distinct
// external events sharing a title and date.
func ExternalUID(pageURL, title, dateOrStart, location string) string {
	return "ext:" + contentHash(pageURL, title, dateOrStart, location)
}

func contentHash(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(lines.Normalize(p))
	}
	h := sha1.Sum([]byte(strings.Join(norm, "|")))
	return fmt.Sprintf("%x", h)
}

// Signature is the (date, lowercased title) pair used only for merge
// precedence, never for dedup identity.
type Signature struct {
	Date  string
	Title string
}

// Sig returns the event's merge signature.
func (e Event) Sig() Signature {
	return Signature{
		Date:  lines.Normalize(e.Date),
		Title: strings.ToLower(lines.Normalize(e.Title)),
	}
}
