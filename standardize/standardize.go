// Package standardize implements the Standardiser, Target, and
// back-reference Join (spec §4.6-4.8).
package standardize

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Lexparency/lexref"
	"github.com/Lexparency/lexref/celex"
	"github.com/Lexparency/lexref/coordtree"
	"github.com/Lexparency/lexref/internal/cycle"
	"github.com/Lexparency/lexref/model"
)

// StdCoordinate is a canonicalised (axisTag, value, role) triple. Value
// is empty for a bare container such as a lone ANX.
type StdCoordinate struct {
	AxisTag string
	Value   string
	Role    model.AxisRole
	HasRole bool // false for the anonymous-role backref case (§4.8 step 2)
}

func std(axisTag, value string, role model.AxisRole) StdCoordinate {
	return StdCoordinate{AxisTag: axisTag, Value: value, Role: role, HasRole: true}
}

type standardizeKey struct {
	axisTag, valueTag, valueText, lang string
}

// Standardizer canonicalises (axisTag, valueTag, valueText) triples,
// memoising results per spec §9.
type Standardizer struct {
	lm    *model.LanguageModel
	celex *celex.Handler
	cache *lru.Cache[standardizeKey, StdCoordinate]
}

// New builds a Standardizer backed by lm and a fresh CELEX handler.
func New(lm *model.LanguageModel) *Standardizer {
	cache, _ := lru.New[standardizeKey, StdCoordinate](1024)
	return &Standardizer{lm: lm, celex: celex.NewHandler(), cache: cache}
}

var celexBearing = map[string]bool{"REG": true, "DEC": true, "DIR": true, "FDC": true}

// Standardize implements spec §4.6's branch order exactly.
func (s *Standardizer) Standardize(axisTag, valueTag, valueText, lang string) (StdCoordinate, error) {
	key := standardizeKey{axisTag, valueTag, valueText, lang}
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	out, err := s.standardize(axisTag, valueTag, valueText, lang)
	if err != nil {
		return StdCoordinate{}, err
	}
	s.cache.Add(key, out)
	return out, nil
}

func (s *Standardizer) standardize(axisTag, valueTag, valueText, lang string) (StdCoordinate, error) {
	if model.IsBackref(valueTag) {
		role := s.lm.RoleOf(axisTag)
		sc := StdCoordinate{AxisTag: axisTag, Value: valueTag, Role: role}
		// The anonymous connector axis synthesised by generic_context has
		// no registered role: mark HasRole accordingly so Join can tell an
		// anonymous back-reference from one rooted on a real axis.
		_, known := s.lm.AxisLevel(axisTag)
		sc.HasRole = known || axisTag == "" || axisTag == "named_entity"
		return sc, nil
	}

	if axisTag == "ANX" {
		if valueTag == "ANX" {
			return std("ANX", "", model.RoleContainer), nil
		}
		return std("ANX", valueText, model.RoleLeaf), nil
	}

	if celexBearing[axisTag] {
		effectiveAxis := axisTag
		if valueTag == "EUFCOO" {
			effectiveAxis = "FDC"
		}
		code, err := s.celex.Encode(effectiveAxis, valueText, lang)
		if err != nil {
			return StdCoordinate{}, err
		}
		return std(effectiveAxis, code, model.RoleDocument), nil
	}

	if valueTag == "SRNK" || valueTag == "SPN" {
		if number, ok := s.lm.ValueAsNumber(valueText, valueTag, lang); ok {
			valueText = number
		}
	}

	if axisTag == "named_entity" {
		key, ok := classifyNamedEntity(s.lm, lang, valueText)
		if !ok {
			key = valueText
		}
		return std("PND", key, model.RoleDocument), nil
	}

	return std(axisTag, valueText, s.lm.RoleOf(axisTag)), nil
}

func classifyNamedEntity(lm *model.LanguageModel, lang, text string) (string, bool) {
	for _, kp := range lm.KeyPatterns(lang, false) {
		if kp.Pattern().MatchString(text) {
			return kp.Tag(), true
		}
	}
	return "", false
}

// LanguageModel returns the Language Model backing s, for callers (such as
// the emitter) that need to render display strings alongside a Target.
func (s *Standardizer) LanguageModel() *model.LanguageModel {
	return s.lm
}

// CelexHandler returns the CELEX codec backing s, so a caller rendering a
// title can invert a CELEX-bearing coordinate back to the ordinate it was
// built from.
func (s *Standardizer) CelexHandler() *celex.Handler {
	return s.celex
}

// Reset forgets every memoised standardisation.
func (s *Standardizer) Reset() {
	s.cache.Purge()
	s.celex.Reset()
}

// Target is an ordered sequence of StdCoordinate, document-first
// (broadest role first).
type Target []StdCoordinate

// Role is the common role across every coordinate in t, or RoleMixed if
// they disagree.
func (t Target) Role() (model.AxisRole, error) {
	if len(t) == 0 {
		return model.RoleMixed, nil
	}
	role := t[0].Role
	mixed := false
	sawContainer, sawOther := false, false
	for _, c := range t {
		if c.Role != role {
			mixed = true
		}
		if c.Role == model.RoleContainer {
			sawContainer = true
		} else if c.AxisTag != "ANX" && c.Role != model.RoleDocument {
			sawOther = true
		}
	}
	if !mixed {
		return role, nil
	}
	if sawContainer && sawOther {
		return 0, lexref.NewError(lexref.InconsistentTarget,
			"target mixes a container role with an unrelated non-container role")
	}
	return model.RoleMixed, nil
}

// addContainerContext prepends container's coordinates onto t, up to (but
// not including) the first one sharing t's own starting axis, when t is
// itself container-rooted and starts deeper than container's root.
func addContainerContext(t Target, container Target, lm *model.LanguageModel) Target {
	if len(t) == 0 || len(container) == 0 {
		return t
	}
	role, err := t.Role()
	if err != nil || role != model.RoleContainer {
		return t
	}
	startLevel, _ := lm.AxisLevel(t[0].AxisTag)
	containerLevel, _ := lm.AxisLevel(container[0].AxisTag)
	if startLevel <= containerLevel {
		return t
	}
	prefix := make(Target, 0, len(container))
	for _, c := range container {
		if c.AxisTag == t[0].AxisTag {
			break
		}
		prefix = append(prefix, c)
	}
	return append(prefix, t...)
}

// addDocument prepends document onto t, unless t already carries
// paragraph- or document-level context of its own.
func addDocument(t Target, document StdCoordinate) Target {
	if len(t) == 0 || t[0].Role == model.RoleParagraph || t[0].Role == model.RoleDocument {
		return t
	}
	out := make(Target, 0, len(t)+1)
	out = append(out, document)
	out = append(out, t...)
	return out
}

// Contextualize walks arena's root-to-leaf chain starting at root,
// standardising each coordinate and assembling the resulting Target, then
// seeds container and document context per spec §4.7 steps 4-5: container
// is prepended when t is itself container-rooted but starts deeper than
// container's own root, and document is prepended unless t already starts
// at paragraph or document level. A Target that already carries document
// context is left untouched. Phrase-role coordinates (e.g. a bare XPREVX
// axis with no following value) and XTHISX-valued coordinates carry no
// addressable meaning of their own and are dropped rather than included;
// if every coordinate along the path is dropped the result is an empty
// Target.
func Contextualize(s *Standardizer, arena *coordtree.Arena, root int, lang string, container Target, document *StdCoordinate) (Target, error) {
	path := arena.RootToLeaf(root)
	t := make(Target, 0, len(path))
	for _, idx := range path {
		node := arena.Node(idx)
		axisTag := node.Axis.Tag.Value
		valueTag := node.Value.Tag.Value
		valueText := node.Value.Text
		if valueTag == "XTHISX" {
			continue
		}
		sc, err := s.Standardize(axisTag, valueTag, valueText, lang)
		if err != nil {
			return nil, err
		}
		if sc.Role == model.RolePhrase {
			continue
		}
		t = append(t, sc)
	}
	if len(t) == 0 {
		return t, nil
	}
	if t[0].Role != model.RoleDocument {
		if len(container) > 0 {
			t = addContainerContext(t, container, s.lm)
		}
		if document != nil {
			t = addDocument(t, *document)
		}
	}
	if _, err := t.Role(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseContainerContext parses a container-context specifier into a
// Target: "" or "toc" carry no context, "toc-AXIS_value-AXIS_value..." is
// a table-of-contents fragment (as produced by GetHref's container form),
// and "/eu/{CELEX}/" roots the container at a document. Any other shape is
// rejected. A caller building a container context programmatically (e.g.
// from a list of {axis, value} pairs) constructs a Target literal
// directly instead of going through this parser.
func ParseContainerContext(s string) (Target, error) {
	if s == "" || s == "toc" {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(s, "toc-"); ok {
		if rest == "ANX" {
			return Target{{AxisTag: "ANX", Value: "", Role: model.RoleContainer, HasRole: true}}, nil
		}
		levels := strings.Split(rest, "-")
		t := make(Target, 0, len(levels))
		for _, level := range levels {
			axisTag, value, ok := strings.Cut(level, "_")
			if !ok {
				return nil, lexref.NewError(lexref.BadCitation, "malformed toc fragment %q", s)
			}
			t = append(t, StdCoordinate{AxisTag: axisTag, Value: value, Role: model.RoleContainer, HasRole: true})
		}
		return t, nil
	}
	if strings.HasPrefix(s, "/eu/") {
		celexID, err := celexFromDocumentPath(s)
		if err != nil {
			return nil, err
		}
		return Target{{AxisTag: celex.GetDocType(celexID), Value: celexID, Role: model.RoleDocument, HasRole: true}}, nil
	}
	return nil, lexref.NewError(lexref.BadCitation, "unrecognised container context %q", s)
}

// ParseDocumentContext parses a document-context specifier of the form
// "/eu/{CELEX}/" into the StdCoordinate it names.
func ParseDocumentContext(s string) (StdCoordinate, error) {
	celexID, err := celexFromDocumentPath(s)
	if err != nil {
		return StdCoordinate{}, err
	}
	return StdCoordinate{AxisTag: celex.GetDocType(celexID), Value: celexID, Role: model.RoleDocument, HasRole: true}, nil
}

func celexFromDocumentPath(s string) (string, error) {
	if !strings.HasPrefix(s, "/eu/") {
		return "", lexref.NewError(lexref.BadCitation, "document context %q must start with /eu/", s)
	}
	parts := strings.Split(s, "/")
	if len(parts) < 3 || parts[2] == "" {
		return "", lexref.NewError(lexref.BadCitation, "malformed document context %q", s)
	}
	return parts[2], nil
}

// HasBackref reports whether t's head coordinate is a back-reference
// placeholder.
func (t Target) HasBackref() bool {
	return len(t) > 0 && model.IsBackref(t[0].Value)
}

// Collated renders c's canonical single-token form: the bare value for a
// paragraph/document coordinate ("43"), "AXIS_value" otherwise
// ("ART_43"), or the bare axis tag for a valueless container such as a
// lone ANX.
func (c StdCoordinate) Collated() string {
	if c.Value == "" {
		return c.AxisTag
	}
	value := strings.Trim(c.Value, "()")
	if c.Role == model.RoleParagraph || c.Role == model.RoleDocument {
		return value
	}
	return c.AxisTag + "_" + value
}

// spoken renders c's contribution to a Target's human-readable title,
// including any leading separator space; ok is false when the Language
// Model has no display entry at all for c's axis (the coordinate
// contributes nothing to the title).
func (c StdCoordinate) spoken(lang string, lm *model.LanguageModel, ch *celex.Handler) (string, bool) {
	if c.AxisTag == "PND" {
		if abbrev, ok := lm.NamedEntityAbbreviation(lang, c.Value); ok {
			return abbrev, true
		}
		return c.Value, true
	}
	if c.AxisTag == "ANX" && c.Value == "" {
		display, _ := lm.AxisStandard("ANX", lang)
		return " " + display, true
	}
	if celexBearing[c.AxisTag] {
		display, _ := lm.AxisStandard(c.AxisTag, lang)
		_, ordinate := ch.Invert(c.Value, lang)
		return " " + display + " " + ordinate, true
	}
	display, ok := lm.AxisStandard(c.AxisTag, lang)
	if !ok {
		return "", false
	}
	if display == "" {
		return c.Value, true
	}
	return " " + display + " " + c.Value, true
}

// GetSpoken renders t's human-readable citation title, concatenating each
// coordinate's own spoken form (each self-delimiting with a leading
// space) and inverting any CELEX-bearing coordinate back to the ordinate
// it was originally cited by, e.g. "Regulation (EU) 575/2013 Art. 43".
func GetSpoken(t Target, lang string, lm *model.LanguageModel, ch *celex.Handler) string {
	var b strings.Builder
	for _, c := range t {
		if part, ok := c.spoken(lang, lm, ch); ok {
			b.WriteString(part)
		}
	}
	return strings.TrimSpace(b.String())
}

// GetHref builds t's reference URL under domain, distinguishing a
// document-rooted external reference, an internal same-document
// reference, and a pre-existing absolute URL passed through verbatim.
func GetHref(t Target, domain string) string {
	if len(t) == 0 {
		return ""
	}
	head := t[0]
	if head.Role == model.RoleDocument {
		if strings.HasPrefix(head.Value, "http://") || strings.HasPrefix(head.Value, "https://") {
			return head.Value
		}
		return domain + externalHref(t)
	}
	return insiderHref(t)
}

func externalHref(t Target) string {
	result := "/eu/" + t[0].Collated() + "/"
	if len(t) == 1 {
		return result
	}
	if t[1].Role == model.RoleContainer {
		result += "TOC/#toc-" + t[1].Collated()
		if len(t) > 2 {
			result += "-"
		}
	} else {
		result += t[1].Collated() + "/"
		if len(t) > 2 {
			result += "#"
		}
	}
	if len(t) == 2 {
		return result
	}
	parts := make([]string, 0, len(t)-2)
	for _, c := range t[2:] {
		parts = append(parts, c.Collated())
	}
	return result + strings.Join(parts, "-")
}

func insiderHref(t Target) string {
	parts := make([]string, 0, len(t))
	for _, c := range t {
		parts = append(parts, c.Collated())
	}
	main := strings.Join(parts, "-")
	if t[0].Role == model.RoleContainer {
		return "#toc-" + main
	}
	return "#" + main
}

// Join resolves a back-reference target against recent, walking recent
// newest-first per spec §4.8. It returns the joined Target with the
// placeholder head removed and the matched ancestry prepended.
func Join(t Target, recent *cycle.Cycle[Target]) (Target, error) {
	if len(t) == 0 || !t.HasBackref() {
		return t, nil
	}
	backref := t[0]
	if backref.AxisTag == "TRT" {
		backref.AxisTag = "PND"
	}

	var anchorAxis string
	if len(t) > 1 {
		anchorAxis = t[1].AxisTag
	}

	items := recent.Items()
	var chosen Target
	found := false
	for i := len(items) - 1; i >= 0; i-- {
		for _, c := range items[i] {
			if c.AxisTag == anchorAxis {
				chosen = items[i]
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		if len(items) == 0 {
			return nil, lexref.NewError(lexref.JoiningError, "no recent target to join a back-reference against")
		}
		chosen = items[len(items)-1]
	}

	cut := len(chosen)
	for i, c := range chosen {
		switch backref.Role {
		case model.RoleDocument, model.RoleLeaf:
			if c.Role == backref.Role {
				cut = i + 1
			}
		case model.RoleContainer:
			if c.AxisTag == backref.AxisTag {
				cut = i + 1
			}
		}
	}
	if len(chosen) == 0 {
		return nil, lexref.NewError(lexref.JoiningError, "recent target has no coordinates to join against")
	}

	joined := make(Target, 0, cut+len(t)-1)
	joined = append(joined, chosen[:cut]...)
	joined = append(joined, t[1:]...)
	return joined, nil
}
