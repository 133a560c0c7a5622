// Package eventsite extracts events from a municipal events site.
//
// Discovery is sitemap-first: the sitemap index is walked recursively,
// following nested sitemaps that look event-related and collecting leaf
// URLs under the events permalink path. When the sitemap is unusable the
// listing page's hyperlinks serve as fallback.
//
// Per page, an embedded JSON-LD Event object is preferred; pages without
// one degrade to a heuristic scan of the visible text.
package eventsite
