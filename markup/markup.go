// Package markup splices reference anchors into source text. It follows
// a doubly-linked sibling-element idiom (Prev/Next, parent/child) for its
// splice tree, carrying plain text segments and anchor wrappers rather
// than parsed grammar tokens.
package markup

import (
	"fmt"
	"html"
	"sort"

	"github.com/Lexparency/lexref/emit"
)

// Segment is one node of a splice tree: either a Text leaf or an Anchor
// wrapping a run of child segments. There is no token/node distinction to
// expose — every Segment already knows how to render itself.
type Segment interface {
	// Render returns this segment's HTML rendering, descending into any
	// children in document order.
	Render() string
	// Prev and Next walk the sibling chain within the owning parent, nil
	// past either end.
	Prev() Segment
	Next() Segment
	setSiblings(prev, next Segment)
}

type base struct {
	prev, next Segment
}

func (b *base) Prev() Segment { return b.prev }
func (b *base) Next() Segment { return b.next }
func (b *base) setSiblings(prev, next Segment) {
	b.prev, b.next = prev, next
}

// Text is a leaf Segment: a verbatim run of source text, HTML-escaped on
// render.
type Text struct {
	base
	Value string
}

func (t *Text) Render() string { return html.EscapeString(t.Value) }

// Anchor is a Segment wrapping the text covered by one Reference; its
// children render the covered text inside the <a> tag. Build gives every
// Anchor a single Text child, so anchors are never nested, matching spec
// §6.3's "preserved without nested anchors".
type Anchor struct {
	base
	Ref      emit.Reference
	children []Segment
}

func (a *Anchor) Render() string {
	var body string
	for _, c := range a.children {
		body += c.Render()
	}
	return fmt.Sprintf(`<a href="%s" title="%s">%s</a>`,
		html.EscapeString(a.Ref.Href), html.EscapeString(a.Ref.Title), body)
}

// chain links segs into a sibling chain in order, for Prev/Next walking.
func chain(segs []Segment) []Segment {
	for i, s := range segs {
		var prev, next Segment
		if i > 0 {
			prev = segs[i-1]
		}
		if i+1 < len(segs) {
			next = segs[i+1]
		}
		s.setSiblings(prev, next)
	}
	return segs
}

// Build splits text into a flat sibling chain of Text and Anchor
// segments at each reference's span, in source order. Build sorts refs by
// start itself; a reference that overlaps an earlier one, or whose span
// falls outside text, is skipped.
func Build(text string, refs []emit.Reference) []Segment {
	sorted := make([]emit.Reference, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })

	var segs []Segment
	cursor := 0
	for _, ref := range sorted {
		if ref.Span.Start < cursor || ref.Span.End > len(text) || ref.Span.Start > ref.Span.End {
			continue
		}
		if ref.Span.Start > cursor {
			segs = append(segs, &Text{Value: text[cursor:ref.Span.Start]})
		}
		covered := text[ref.Span.Start:ref.Span.End]
		segs = append(segs, &Anchor{
			Ref:      ref,
			children: []Segment{&Text{Value: covered}},
		})
		cursor = ref.Span.End
	}
	if cursor < len(text) {
		segs = append(segs, &Text{Value: text[cursor:]})
	}
	return chain(segs)
}

// Splice renders text with refs spliced in as anchors, per spec §6.3's
// "markup" orchestrator output.
func Splice(text string, refs []emit.Reference) string {
	var out string
	for _, s := range Build(text, refs) {
		out += s.Render()
	}
	return out
}
