// Package token holds the primitives scanned text is broken into: Span,
// RefTag, and RefToken (spec §3).
package token

import "github.com/Lexparency/lexref/model"

// Span is a half-open character range, end >= start.
type Span struct {
	Start, End int
}

// Len reports the span's length in characters.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s begins at or before other's start and ends
// after it, i.e. whether other's start falls within s.
func (s Span) Overlaps(other Span) bool {
	return s.Start <= other.Start && other.Start < s.End
}

// RefTag pairs a Group with an opaque tag string such as "ART", "AL_B",
// "AND", or a named-entity key. The pair is unique across a Language
// Model.
type RefTag struct {
	Group model.Group
	Value string
}

// RefToken is one scanned or synthesised unit of text: a tag, the span it
// occupies in the source, its matched text, and two fields mutated only
// during coordination: Tail (the whitespace/text up to the next token in
// the same sequence) and Suffix (a Latin ordinal attached to a value,
// e.g. "bis").
type RefToken struct {
	Tag    RefTag
	Span   Span
	Text   string
	Tail   string
	Suffix string
}

// AnonymousAxis builds a synthetic axis token with no matched text, placed
// at the given span, used when coordination promotes a bare value or
// connector to a Coordinate that still needs an axis slot (generic_context,
// coordinates' named-entity case, value_n, range_connected, ...).
func AnonymousAxis(tag string, span Span) RefToken {
	return RefToken{Tag: RefTag{Group: model.GroupAxis, Value: tag}, Span: span}
}

// QuasiValue builds a synthetic value token carrying tag and text but no
// independent span of its own (it reuses at, typically the coordinate's
// axis span), used by re_reference and orphan_annex.
func QuasiValue(tag, text string, at Span) RefToken {
	return RefToken{Tag: RefTag{Group: model.GroupValue, Value: tag}, Span: at, Text: text}
}
