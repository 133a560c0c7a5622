package event

// Merge reconciles the two SessionNet-derived views. The text block
// denormalizes a subset of the same sessions the detail pages describe,
// plus possibly extra unlinked items: the fetched detail is authoritative
// whenever both carry the same (date, lowercased title) signature, and
// summary-only items survive untouched.
func Merge(detail, text []Event) []Event {
	sigs := make(map[Signature]struct{}, len(detail))
	for _, ev := range detail {
		sigs[ev.Sig()] = struct{}{}
	}

	merged := make([]Event, 0, len(detail)+len(text))
	merged = append(merged, detail...)
	for _, ev := range text {
		if _, dup := sigs[ev.Sig()]; dup {
			continue
		}
		merged = append(merged, ev)
	}
	return merged
}

// Dedup keeps the first event per UID, preserving order.
func Dedup(events []Event) []Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if _, dup := seen[ev.UID]; dup {
			continue
		}
		seen[ev.UID] = struct{}{}
		out = append(out, ev)
	}
	return out
}
