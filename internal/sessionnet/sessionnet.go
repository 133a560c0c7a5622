package sessionnet

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/fetch"
	"github.com/fkoehler/stadtticker/internal/lines"
	"github.com/fkoehler/stadtticker/internal/logger"
)

// Source extracts council sessions from one SessionNet instance.
type Source struct {
	client  *fetch.Client
	infoURL string
	base    *url.URL
}

// New creates a SessionNet source. baseURL anchors relative detail links;
// an unparsable baseURL leaves links unresolved rather than failing.
func New(client *fetch.Client, infoURL, baseURL string) *Source {
	base, err := url.Parse(baseURL)
	if err != nil {
		logger.Warn("invalid sessionnet base URL", logger.Fields{"url": baseURL})
		base = nil
	}
	return &Source{client: client, infoURL: infoURL, base: base}
}

// Name identifies the source in logs and counters.
func (s *Source) Name() string { return "sessionnet" }

// Extract fetches the info page, runs both extractors over it and merges
// their views. An unreachable info page fails the whole source; a failed
// detail page drops only that one record.
func (s *Source) Extract(ctx context.Context) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, s.infoURL)
	if err != nil {
		return nil, fmt.Errorf("loading info page: %w", err)
	}

	linked := s.extractLinked(ctx, DiscoverSessions(doc, s.base))
	text := ParseTextEvents(lines.Flatten(doc), s.infoURL)

	logger.Count("sessionnet.detail", int64(len(linked)))
	logger.Count("sessionnet.text", int64(len(text)))

	return event.Merge(linked, text), nil
}

func (s *Source) extractLinked(ctx context.Context, links []SessionLink) []event.Event {
	events := make([]event.Event, 0, len(links))
	for _, link := range links {
		ev, err := FetchDetail(ctx, s.client, link)
		if err != nil {
			logger.Warn("dropping session detail", logger.Fields{
				"session_id": link.ID,
				"url":        link.URL,
			})
			continue
		}
		events = append(events, ev)
	}
	return events
}
