// Package fetch provides the one process-wide HTTP client used by every
// extractor: fixed identifying User-Agent, finite timeout, a politeness
// delay between successive fetches, a robots.txt gate and a per-run page
// cache so the info page is parsed by two extractors but fetched once.
//
// Fetching is strictly sequential and never retried; callers decide how
// far a failure propagates.
package fetch
