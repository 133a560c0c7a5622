// Package sessionnet extracts upcoming council sessions from a SessionNet
// information page.
//
// The page exposes the same data twice: an unstructured "Aktuelle
// Sitzungen" text block, and hyperlinks to per-session detail pages keyed
// by a numeric __ksinr id. Both views are extracted independently and
// reconciled, with the fetched detail authoritative on collisions.
package sessionnet
