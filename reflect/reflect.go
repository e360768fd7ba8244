// Package reflect implements the Reflector orchestrator (spec §4.10): the
// single entry point that wires the Language Model, Tokeniser, Sequencer,
// Coordination Engine, Standardiser, and Reference Emitter into one call
// per input string.
package reflect

import (
	"sort"
	"strings"

	"github.com/Lexparency/lexref/coordination"
	"github.com/Lexparency/lexref/emit"
	"github.com/Lexparency/lexref/internal/patterns"
	"github.com/Lexparency/lexref/lexer"
	"github.com/Lexparency/lexref/markup"
	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/sequencer"
	"github.com/Lexparency/lexref/standardize"
)

// DefaultMinRole is the filter applied when Config.MinRole is left nil:
// every role down to the most permissive (token) passes.
const DefaultMinRole = model.RoleToken

// Mode selects what a Reflector call returns for one string.
type Mode int

const (
	// ModeAnnotate returns the References found, leaving text untouched.
	ModeAnnotate Mode = iota
	// ModeMarkup splices an <a> anchor in at each Reference's span.
	ModeMarkup
)

// Config holds a Reflector's per-call options: language, output mode,
// base URL, minimum role, treaty-only named-entity matching, and
// whether adjacent references should be merged (unclose).
type Config struct {
	// Lang selects which of the Language Model's per-language tables to
	// scan against.
	Lang string
	// Mode selects annotate vs. markup output.
	Mode Mode
	// Domain is the base URL new document-rooted references resolve
	// under, e.g. "https://lexparency.org".
	Domain string
	// MinRole filters out any reference finer-grained than MinRole. A nil
	// MinRole defaults to DefaultMinRole (token), the most permissive
	// setting, matching a zero-value Config to "no filtering" rather
	// than to the most restrictive role.
	MinRole *model.AxisRole
	// OnlyTreaties restricts named-entity recognition to treaty-level
	// entities (TFEU/TEU/CHARTER), skipping CELEX-bearing ones.
	OnlyTreaties bool
	// Unclose merges neighbouring references whose hrefs are
	// prefix-related and whose spans sit exactly adjacent.
	Unclose bool
	// Container seeds the container context (e.g. the table of contents
	// a fragment-only reference should resolve within) a Target that
	// doesn't already reach document level is contextualised against.
	Container standardize.Target
	// Document seeds the default document a Target that doesn't already
	// carry document or paragraph context is contextualised against.
	Document *standardize.StdCoordinate
}

// Annotation is one string's full annotation result: the text as given,
// and every Reference found in it, in span order.
type Annotation struct {
	Text       string
	References []emit.Reference
}

// Reflector ties together one Language Model and the pipeline stages that
// read it, exposing the single per-call entry point a caller needs.
type Reflector struct {
	lm      *model.LanguageModel
	cls     *patterns.Classifier
	std     *standardize.Standardizer
	emitter *emit.Emitter
	cfg     Config
}

// New builds a Reflector over lm under cfg.
func New(lm *model.LanguageModel, cfg Config) (*Reflector, error) {
	cls, err := patterns.NewClassifier(lm)
	if err != nil {
		return nil, err
	}
	minRole := DefaultMinRole
	if cfg.MinRole != nil {
		minRole = *cfg.MinRole
	}
	std := standardize.New(lm)
	emitter := emit.New(std, cfg.Domain, cfg.Lang, minRole)
	emitter.SetContext(cfg.Container, cfg.Document)
	return &Reflector{lm: lm, cls: cls, std: std, emitter: emitter, cfg: cfg}, nil
}

// Reset clears the standardiser's CELEX/standardisation caches and the
// emitter's recent-target cycle, per spec §4.10's reset().
func (r *Reflector) Reset() {
	r.std.Reset()
	r.emitter.Reset()
}

// Call runs the full pipeline over text and returns its Annotation,
// without resetting the emitter's recent-target memory (so a caller
// processing a stream of related sentences gets cross-sentence
// back-reference resolution for free).
func (r *Reflector) Call(text string) (Annotation, error) {
	refs, err := r.annotate(text)
	if err != nil {
		return Annotation{}, err
	}
	if r.cfg.Unclose {
		refs = unclose(refs)
	}
	return Annotation{Text: text, References: refs}, nil
}

// CallAll resets the recent-target cycle once, then processes every string
// in texts in order with that memory kept across them, so a reference in
// one string can resolve a back-reference in a later one, per spec §4.10
// ("list of strings → reset the recent cycle, process each with memory ON").
func (r *Reflector) CallAll(texts []string) ([]Annotation, error) {
	r.emitter.Reset()
	out := make([]Annotation, 0, len(texts))
	for _, text := range texts {
		a, err := r.Call(text)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Markup renders text with every surviving reference spliced in as an
// anchor, per spec §6.3's "markup" output shape.
func (r *Reflector) Markup(text string) (string, error) {
	refs, err := r.annotate(text)
	if err != nil {
		return "", err
	}
	if r.cfg.Unclose {
		refs = unclose(refs)
	}
	return markup.Splice(text, refs), nil
}

func (r *Reflector) annotate(text string) ([]emit.Reference, error) {
	toks := lexer.Scan(r.lm, r.cfg.Lang, text, r.cfg.OnlyTreaties)
	sequences := sequencer.Sequence(text, toks)

	var out []emit.Reference
	for _, seq := range sequences {
		cs := coordination.New(r.lm, r.cls, r.cfg.Lang, seq.Tokens)
		if err := cs.Finalize(); err != nil {
			continue
		}
		refs, err := r.emitter.Emit(cs.Arena, cs.Roots())
		if err != nil {
			return out, err
		}
		out = append(out, refs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out, nil
}

// unclose merges adjacent references whose hrefs share a path prefix,
// keeping the more specific (longer) href, per spec §4.10's unclose
// option.
func unclose(refs []emit.Reference) []emit.Reference {
	if len(refs) < 2 {
		return refs
	}
	merged := make([]emit.Reference, 0, len(refs))
	merged = append(merged, refs[0])
	for _, ref := range refs[1:] {
		last := &merged[len(merged)-1]
		if ref.Span.Start == last.Span.End && hrefsRelated(last.Href, ref.Href) {
			if len(ref.Href) > len(last.Href) {
				last.Href = ref.Href
				last.Title = ref.Title
			}
			last.Span.End = ref.Span.End
			continue
		}
		merged = append(merged, ref)
	}
	return merged
}

func hrefsRelated(a, b string) bool {
	shorter, longer := a, b
	if len(b) < len(a) {
		shorter, longer = b, a
	}
	return strings.HasPrefix(longer, shorter)
}
