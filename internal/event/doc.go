// Package event provides the event record, its deterministic identity
// scheme, the canonical sort order and the merge precedence between the
// two SessionNet-derived views.
//
// The UID is the sole dedup key. Detail-linked records derive it from the
// numeric session id, so later edits to a session page never cause
// redelivery. All other records hash their normalized semantic fields.
package event
