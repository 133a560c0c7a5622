// Package pipeline orchestrates one ticker run: extract from all sources,
// sort, compute the delta against the persisted seen-set, deliver the new
// events in order and commit the updated seen-set once at the end.
//
// Error tiers: a failed source contributes zero events and is logged; a
// failed delivery aborts the run before the seen-set commit, so every
// undelivered event is retried on the next run (at-least-once).
package pipeline
