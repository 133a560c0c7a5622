package eventsite

import (
	"context"
	"strings"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/fetch"
	"github.com/fkoehler/stadtticker/internal/logger"
)

// Config describes one municipal events site.
type Config struct {
	// SitemapURL is tried first for discovery.
	SitemapURL string
	// ListingURL is the events listing page, the discovery fallback.
	ListingURL string
	// PermalinkPath is the URL path prefix of individual event pages.
	PermalinkPath string
	// Keywords select which nested sitemaps to follow. Matched
	// case-insensitively against the sitemap URL.
	Keywords []string
}

// Source extracts events from one municipal events site.
type Source struct {
	client        *fetch.Client
	sitemapURL    string
	listingURL    string
	permalinkPath string
	keywords      []string
}

// New creates an events-site source.
func New(client *fetch.Client, cfg Config) *Source {
	keywords := make([]string, len(cfg.Keywords))
	for i, kw := range cfg.Keywords {
		keywords[i] = strings.ToLower(kw)
	}
	return &Source{
		client:        client,
		sitemapURL:    cfg.SitemapURL,
		listingURL:    cfg.ListingURL,
		permalinkPath: cfg.PermalinkPath,
		keywords:      keywords,
	}
}

// Name identifies the source in logs and counters.
func (s *Source) Name() string { return "eventsite" }

// Extract discovers event permalinks and extracts each page. A failed
// page drops only its own record; a failed discovery fails the source.
func (s *Source) Extract(ctx context.Context) ([]event.Event, error) {
	permalinks, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	var events []event.Event
	for _, pageURL := range permalinks {
		pageEvents, err := s.extractPage(ctx, pageURL)
		if err != nil {
			logger.Warn("dropping event page", logger.Fields{"url": pageURL})
			continue
		}
		events = append(events, pageEvents...)
	}

	logger.Count("eventsite.pages", int64(len(permalinks)))
	logger.Count("eventsite.events", int64(len(events)))

	return event.Dedup(events), nil
}

// discover tries the sitemap first and falls back to the listing page when
// the sitemap fails or yields nothing.
func (s *Source) discover(ctx context.Context) ([]string, error) {
	permalinks, err := s.discoverSitemap(ctx)
	if err == nil && len(permalinks) > 0 {
		return permalinks, nil
	}
	if err != nil {
		logger.Warn("sitemap discovery failed, using listing page", logger.Fields{
			"sitemap": s.sitemapURL,
		})
	}
	return s.discoverListing(ctx)
}

// extractPage prefers embedded structured events and degrades to the
// heuristic text scan.
func (s *Source) extractPage(ctx context.Context, pageURL string) ([]event.Event, error) {
	doc, err := s.client.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if events := structuredEvents(doc, pageURL); len(events) > 0 {
		return events, nil
	}
	if ev, ok := fallbackEvent(doc, pageURL); ok {
		return []event.Event{ev}, nil
	}
	logger.Debug("no event found on page", logger.Fields{"url": pageURL})
	return nil, nil
}
