// Package emit implements the Reference Emitter (spec §4.9): turning a
// finalised Sequence's coordinate roots into the Reference list a caller
// actually wants, joining back-references against recent memory and
// filtering by minimum role granularity along the way.
package emit

import (
	"github.com/Lexparency/lexref"
	"github.com/Lexparency/lexref/coordtree"
	"github.com/Lexparency/lexref/internal/cycle"
	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/standardize"
	"github.com/Lexparency/lexref/token"
)

// Reference is one resolved citation ready for annotation: the source
// span it covers, the URL it resolves to, and its human-readable title.
type Reference struct {
	Span  token.Span
	Href  string
	Title string
}

// Emitter derives References from a finalised coordinate arena, memoising
// recently emitted targets so later back-references (THEREOF, XPREVX,
// BRCRPL) can resolve against them.
type Emitter struct {
	std       *standardize.Standardizer
	recent    *cycle.Cycle[standardize.Target]
	domain    string
	lang      string
	minRole   model.AxisRole
	container standardize.Target
	document  *standardize.StdCoordinate
}

// recentCapacity bounds the back-reference memory: a handful of targets
// is enough to resolve any back-reference a real legislative text raises
// before the antecedent scrolls out of scope.
const recentCapacity = 5

// New builds an Emitter over std, targeting domain and lang, filtering out
// any reference whose role is strictly finer than minRole.
func New(std *standardize.Standardizer, domain, lang string, minRole model.AxisRole) *Emitter {
	return &Emitter{
		std:     std,
		recent:  cycle.New[standardize.Target](recentCapacity),
		domain:  domain,
		lang:    lang,
		minRole: minRole,
	}
}

// Reset forgets every recently emitted target, e.g. between unrelated
// input strings that should not cross-reference each other.
func (e *Emitter) Reset() {
	e.recent.Reset()
}

// SetContext installs the container and/or document context every Emit
// call should seed missing structure from, per spec §4.7 steps 4-5. A nil
// document or empty container leaves that side of the context unset.
func (e *Emitter) SetContext(container standardize.Target, document *standardize.StdCoordinate) {
	e.container = container
	e.document = document
}

// Emit derives one Reference per root coordinate in arena, in document
// order, skipping anything that fails the emitter's consistency or role
// filters. Errors other than InconsistentTarget are swallowed: the
// offending coordinate is skipped rather than aborting the whole sequence,
// per the package-level Skippable policy.
func (e *Emitter) Emit(arena *coordtree.Arena, roots []int) ([]Reference, error) {
	var out []Reference
	var deepest standardize.Target

	for _, root := range roots {
		target, err := standardize.Contextualize(e.std, arena, root, e.lang, e.container, e.document)
		if err != nil {
			if lexref.Aborts(err) {
				return out, err
			}
			continue
		}
		if len(target) == 0 {
			continue
		}
		// A back-reference with nothing following it has no axis to anchor
		// a join against, and is not itself addressable: skip it.
		if len(target) <= 1 && target.HasBackref() {
			continue
		}

		if target.HasBackref() {
			joined, err := standardize.Join(target, e.recent)
			if err != nil {
				continue
			}
			target = joined
		}

		role, err := target.Role()
		if err != nil {
			if lexref.Aborts(err) {
				return out, err
			}
			continue
		}
		if role != model.RoleMixed && int(role) > int(e.minRole) {
			continue
		}

		head := arena.Node(root)
		ref := Reference{
			Span:  head.Value.Span,
			Href:  standardize.GetHref(target, e.domain),
			Title: standardize.GetSpoken(target, e.lang, e.std.LanguageModel(), e.std.CelexHandler()),
		}
		if ref.Span == (token.Span{}) {
			ref.Span = head.Axis.Span
		}
		out = append(out, ref)

		if len(target) > len(deepest) {
			deepest = target
		}
	}

	if len(deepest) > 0 {
		e.recent.Push(deepest)
	}
	return out, nil
}
