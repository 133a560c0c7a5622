// Package lines turns messy HTML text into a clean, ordered line sequence.
//
// Municipal sites pad their markup with non-breaking spaces, bullet glyphs
// and deeply nested block elements. Every extractor in this module works on
// the same flattened representation: one normalized, non-empty string per
// rendered text run, in document order.
package lines
