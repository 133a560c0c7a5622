package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"

	"github.com/fkoehler/stadtticker/internal/logger"
)

const (
	// DefaultUserAgent identifies the ticker to upstream sites.
	DefaultUserAgent = "stadtticker/1.0 (github.com/fkoehler/stadtticker)"
	// DefaultTimeout bounds every single request.
	DefaultTimeout = 30 * time.Second
	// DefaultDelay is the politeness pause between successive fetches.
	DefaultDelay = 500 * time.Millisecond

	maxBodyBytes = 4 << 20
)

// Client is the long-lived fetch client shared by all extractors. Create
// it once at startup and pass it by reference; there is no concurrency,
// so no locking.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	limiter     *rate.Limiter
	pages       *gocache.Cache
	robots      map[string]*robotstxt.RobotsData
	checkRobots bool
}

// Options configures a Client; zero fields fall back to the defaults.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	Delay      time.Duration
	SkipRobots bool
}

// New creates the shared fetch client.
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		limiter:     rate.NewLimiter(rate.Every(opts.Delay), 1),
		pages:       gocache.New(gocache.NoExpiration, 0),
		robots:      make(map[string]*robotstxt.RobotsData),
		checkRobots: !opts.SkipRobots,
	}
}

// Get fetches rawURL and returns its body. Responses are cached for the
// lifetime of the client, so repeated requests within one run cost one
// round trip and no politeness delay.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if body, ok := c.pages.Get(rawURL); ok {
		return body.([]byte), nil
	}

	if c.checkRobots && !c.allowed(ctx, rawURL) {
		return nil, fmt.Errorf("fetching %s: disallowed by robots.txt", rawURL)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for fetch slot: %w", err)
	}

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	c.pages.Set(rawURL, body, gocache.NoExpiration)
	return body, nil
}

// Document fetches rawURL and parses it as HTML.
func (c *Client) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", rawURL, err)
	}
	return doc, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return body, nil
}

// allowed checks robots.txt for rawURL. An unreachable or unparsable
// robots.txt allows the fetch.
func (c *Client) allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	host := parsed.Scheme + "://" + parsed.Host
	data, ok := c.robots[host]
	if !ok {
		data = c.loadRobots(ctx, host)
		c.robots[host] = data
	}
	if data == nil {
		return true
	}
	return data.TestAgent(parsed.Path, c.userAgent)
}

func (c *Client) loadRobots(ctx context.Context, host string) *robotstxt.RobotsData {
	body, err := c.fetch(ctx, host+"/robots.txt")
	if err != nil {
		logger.Debug("robots.txt not available", logger.Fields{"host": host})
		return nil
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		logger.Warn("robots.txt unparsable", logger.Fields{"host": host})
		return nil
	}
	return data
}
