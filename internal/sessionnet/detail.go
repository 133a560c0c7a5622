package sessionnet

import (
	"context"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/fetch"
	"github.com/fkoehler/stadtticker/internal/lines"
)

// Field labels on a SessionNet detail page; the value is the line
// directly below the label.
const (
	labelCommittee = "Gremium"
	labelDate      = "Datum"
	labelTime      = "Zeit"
	labelRoom      = "Raum"
)

var sessionIDPattern = regexp.MustCompile(`__ksinr=(\d+)`)

// SessionLink is one distinct detail page discovered on the info page.
type SessionLink struct {
	ID  string
	URL string
}

// DiscoverSessions collects every hyperlink embedding a numeric session
// id, first occurrence per id, resolved against base.
func DiscoverSessions(doc *goquery.Document, base *url.URL) []SessionLink {
	seen := make(map[string]struct{})
	var links []SessionLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := sessionIDPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id := m[1]
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}

		target := href
		if ref, err := url.Parse(href); err == nil && base != nil {
			target = base.ResolveReference(ref).String()
		}
		links = append(links, SessionLink{ID: id, URL: target})
	})

	return links
}

// FetchDetail fetches one detail page and extracts the four labeled
// fields. A missing label yields an empty field, never an error; the UID
// is the session id, so later edits to the page do not cause redelivery.
func FetchDetail(ctx context.Context, client *fetch.Client, link SessionLink) (event.Event, error) {
	doc, err := client.Document(ctx, link.URL)
	if err != nil {
		return event.Event{}, err
	}

	ls := lines.Flatten(doc)
	return event.Event{
		UID:      event.DetailUID(link.ID),
		Title:    pickValue(ls, labelCommittee),
		Date:     pickValue(ls, labelDate),
		Time:     pickValue(ls, labelTime),
		Location: pickValue(ls, labelRoom),
		URL:      link.URL,
		Source:   event.SourceDetail,
	}, nil
}

// pickValue returns the line following the first exact label match.
func pickValue(ls []string, label string) string {
	for i, line := range ls {
		if line == label && i+1 < len(ls) {
			return ls[i+1]
		}
	}
	return ""
}
