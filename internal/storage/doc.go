// Package storage persists the seen-set: the append-only set of event
// UIDs already observed in past runs.
//
// The state file holds a single sorted JSON array for diff-friendliness;
// no other field is load-bearing. A missing file means a bootstrap run.
package storage
