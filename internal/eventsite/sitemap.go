package eventsite

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fkoehler/stadtticker/internal/logger"
)

// maxSitemaps bounds the sitemap walk against self-referencing or
// adversarially deep indexes.
const maxSitemaps = 50

// sitemapFile covers both <sitemapindex> and <urlset> documents; only the
// child element names differ.
type sitemapFile struct {
	XMLName  xml.Name
	Sitemaps []sitemapLoc `xml:"sitemap"`
	URLs     []sitemapLoc `xml:"url"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// discoverSitemap walks the sitemap index with an explicit worklist and
// returns permalink URLs in discovery order.
func (s *Source) discoverSitemap(ctx context.Context) ([]string, error) {
	worklist := []string{s.sitemapURL}
	visited := make(map[string]struct{})
	var permalinks []string

	for len(worklist) > 0 && len(visited) < maxSitemaps {
		current := worklist[0]
		worklist = worklist[1:]
		if _, done := visited[current]; done {
			continue
		}
		visited[current] = struct{}{}

		body, err := s.client.Get(ctx, current)
		if err != nil {
			if current == s.sitemapURL {
				return nil, err
			}
			logger.Warn("skipping nested sitemap", logger.Fields{"url": current})
			continue
		}

		var sm sitemapFile
		if err := xml.Unmarshal(body, &sm); err != nil {
			if current == s.sitemapURL {
				return nil, fmt.Errorf("parsing sitemap %s: %w", current, err)
			}
			logger.Warn("skipping unparsable sitemap", logger.Fields{"url": current})
			continue
		}

		for _, nested := range sm.Sitemaps {
			loc := strings.TrimSpace(nested.Loc)
			if loc != "" && s.eventRelated(loc) {
				worklist = append(worklist, loc)
			}
		}
		for _, leaf := range sm.URLs {
			loc := strings.TrimSpace(leaf.Loc)
			if s.matchesPermalink(loc) {
				permalinks = append(permalinks, loc)
			}
		}
	}

	return dedupe(permalinks), nil
}

// discoverListing scrapes permalink hyperlinks from the listing page.
func (s *Source) discoverListing(ctx context.Context) ([]string, error) {
	doc, err := s.client.Document(ctx, s.listingURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.listingURL)
	if err != nil {
		return nil, fmt.Errorf("parsing listing URL: %w", err)
	}

	var permalinks []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		target := base.ResolveReference(ref).String()
		if s.matchesPermalink(target) {
			permalinks = append(permalinks, target)
		}
	})

	return dedupe(permalinks), nil
}

// eventRelated reports whether a nested sitemap URL is worth following.
func (s *Source) eventRelated(loc string) bool {
	lower := strings.ToLower(loc)
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// matchesPermalink reports whether loc is an event permalink: under the
// permalink path, but not the listing page itself.
func (s *Source) matchesPermalink(loc string) bool {
	parsed, err := url.Parse(loc)
	if err != nil {
		return false
	}
	path := parsed.Path
	if !strings.HasPrefix(path, s.permalinkPath) {
		return false
	}
	rest := strings.Trim(strings.TrimPrefix(path, s.permalinkPath), "/")
	return rest != ""
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
