package pipeline

import (
	"context"
	"fmt"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/logger"
	"github.com/fkoehler/stadtticker/internal/notifier"
	"github.com/fkoehler/stadtticker/internal/storage"
)

// Source is one extraction pipeline: SessionNet or the external events
// site. Sources run strictly sequentially and share nothing but the fetch
// client they were built with.
type Source interface {
	Name() string
	Extract(ctx context.Context) ([]event.Event, error)
}

// Pipeline runs the scrape → merge → dedup → deliver cycle.
type Pipeline struct {
	sources      []Source
	store        *storage.Store
	notifier     notifier.Notifier
	postExisting bool
}

// Result summarizes one run.
type Result struct {
	Observed  int
	New       int
	Delivered int
	Bootstrap bool
}

// New creates a pipeline. postExisting forces delivery even on a
// bootstrap run (operator-triggered catch-up).
func New(store *storage.Store, n notifier.Notifier, postExisting bool, sources ...Source) *Pipeline {
	return &Pipeline{
		sources:      sources,
		store:        store,
		notifier:     n,
		postExisting: postExisting,
	}
}

// Run executes one cycle. The seen-set is committed exactly once, at the
// very end; any error before that leaves it untouched, so the next run
// re-attempts delivery.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	events := p.collect(ctx)
	event.Sort(events)

	seen, err := p.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading seen-set: %w", err)
	}

	current := make(map[string]struct{}, len(events))
	var newEvents []event.Event
	for _, ev := range events {
		current[ev.UID] = struct{}{}
		if _, old := seen[ev.UID]; !old {
			newEvents = append(newEvents, ev)
		}
	}

	result := &Result{
		Observed:  len(events),
		New:       len(newEvents),
		Bootstrap: len(seen) == 0,
	}
	logger.Count("events.observed", int64(len(events)))
	logger.Count("events.new", int64(len(newEvents)))

	if result.Bootstrap && !p.postExisting {
		logger.Info("bootstrap run, seeding seen-set without delivery", logger.Fields{
			"events": len(events),
		})
		if err := p.store.Save(current); err != nil {
			return nil, fmt.Errorf("committing seen-set: %w", err)
		}
		return result, nil
	}

	for _, ev := range newEvents {
		if err := p.notifier.Notify(ev); err != nil {
			// Abort before the commit: everything this run observed,
			// delivered or not, stays undelivered in the state and is
			// retried next run.
			return nil, fmt.Errorf("delivering %s: %w", ev.UID, err)
		}
		result.Delivered++
		logger.Count("notifications.sent", 1)
		logger.Info("notification sent", logger.Fields{
			"uid":   ev.UID,
			"title": ev.Title,
			"date":  ev.Date,
		})
	}

	// Every currently observed uid is recorded, not only delivered ones,
	// so an event that disappears and reappears is never re-delivered.
	for uid := range current {
		seen[uid] = struct{}{}
	}
	if err := p.store.Save(seen); err != nil {
		return nil, fmt.Errorf("committing seen-set: %w", err)
	}

	return result, nil
}

// collect extracts from every source; a failing source contributes zero
// events and never aborts the others.
func (p *Pipeline) collect(ctx context.Context) []event.Event {
	var events []event.Event
	for _, src := range p.sources {
		extracted, err := src.Extract(ctx)
		if err != nil {
			logger.Error("source failed, contributing zero events", logger.Fields{
				"source": src.Name(),
			}, err)
			continue
		}
		logger.Info("source extracted", logger.Fields{
			"source": src.Name(),
			"events": len(extracted),
		})
		events = append(events, extracted...)
	}
	return event.Dedup(events)
}
