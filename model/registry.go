package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// AxisSeed is the language-independent part of an axis row plus its
// per-language pattern/standard-string variants, as supplied to Build.
type AxisSeed struct {
	Tag         string
	Level       int
	Role        AxisRole
	Description string
	Patterns    map[string]string // lang -> raw regex
	Standard    map[string]string // lang -> display string for get_spoken
}

// ValuePatternSeed is one raw pattern fragment contributed to a value tag's
// full pattern, optionally also usable to read a spoken form as a number.
type ValuePatternSeed struct {
	Lang     string // language tag, or "XX" for language-independent
	Pattern  string
	AsNumber string // numeric reading this fragment stands for, or "" if none
}

// ValueSeed is a value tag's decoration flags plus its raw pattern
// fragments across languages.
type ValueSeed struct {
	ValueRow
	Patterns []ValuePatternSeed
}

// ConnectorSeed is a connector tag's per-language (or "XX") raw patterns.
type ConnectorSeed struct {
	Tag         string
	Description string
	Patterns    map[string]string // lang or "XX" -> raw regex
	AddStopper  bool
}

// NamedEntitySeed is a named-entity tag's per-language title/abbreviation.
type NamedEntitySeed struct {
	Tag      string
	Language string
	Title    string
	// TitlePattern is the regex recognising any inflection of the title.
	TitlePattern string
	Abbreviation string
}

type keyPattern struct {
	tag     string
	pattern *regexp.Regexp
}

// Tag returns the named-entity key this pattern classifies a span to.
func (kp keyPattern) Tag() string { return kp.tag }

// Pattern returns the compiled pattern used to recognise the span.
func (kp keyPattern) Pattern() *regexp.Regexp { return kp.pattern }

// LanguageModel is the compiled, immutable bundle of axis/value/connector/
// named-entity pattern tables described in spec §4.1/§6.1. It is built
// once from Go data (model/data.go) and shared read-only across however
// many Reflector instances need it.
type LanguageModel struct {
	axes map[string]AxisSeed

	axisPatterns map[string]map[string]*regexp.Regexp // lang -> tag -> pattern
	axisStandard map[string]map[string]string         // lang -> tag -> display string

	valueRows     map[string]ValueRow
	valueOrder    []string                                 // base tags, in declared Order
	valuePatterns map[string]map[string]*regexp.Regexp     // lang -> subTag -> pattern
	valueSubOrder map[string][]string                       // lang -> subTags in stable order
	valueNumbers  map[string]map[string]map[string]*regexp.Regexp // lang -> subTag -> number -> pattern

	connectorPatterns map[string]map[string]*regexp.Regexp // lang -> tag -> pattern

	namedEntities   map[string]map[string]NamedEntitySeed // lang -> tag -> seed
	namedEntityTags map[string][]string                   // lang -> tags, declared order

	tagGroup map[string]Group // every axis/value-subtag/connector tag -> its Group

	neCache *lru.Cache[string, map[string]*regexp.Regexp]
	keyCache *lru.Cache[string, []keyPattern]
}

// NewLanguageModel compiles a LanguageModel from the given seed rows.
// Returns an error on any unparsable pattern — a Language Model that fails
// to compile is a data bug, not a runtime condition to recover from.
func NewLanguageModel(axes []AxisSeed, values []ValueSeed, connectors []ConnectorSeed, namedEntities []NamedEntitySeed) (*LanguageModel, error) {
	lm := &LanguageModel{
		axes:              map[string]AxisSeed{},
		axisPatterns:      map[string]map[string]*regexp.Regexp{},
		axisStandard:      map[string]map[string]string{},
		valueRows:         map[string]ValueRow{},
		valuePatterns:     map[string]map[string]*regexp.Regexp{},
		valueSubOrder:     map[string][]string{},
		valueNumbers:      map[string]map[string]map[string]*regexp.Regexp{},
		connectorPatterns: map[string]map[string]*regexp.Regexp{},
		namedEntities:     map[string]map[string]NamedEntitySeed{},
		namedEntityTags:   map[string][]string{},
		tagGroup:          map[string]Group{},
	}

	neCache, err := lru.New[string, map[string]*regexp.Regexp](32)
	if err != nil {
		return nil, err
	}
	keyCache, err := lru.New[string, []keyPattern](32)
	if err != nil {
		return nil, err
	}
	lm.neCache = neCache
	lm.keyCache = keyCache

	for _, a := range axes {
		lm.axes[a.Tag] = a
		lm.tagGroup[a.Tag] = GroupAxis
		for lang, pattern := range a.Patterns {
			re, err := regexp.Compile(`(?i)` + pattern)
			if err != nil {
				return nil, fmt.Errorf("axis %s/%s: %w", a.Tag, lang, err)
			}
			if lm.axisPatterns[lang] == nil {
				lm.axisPatterns[lang] = map[string]*regexp.Regexp{}
			}
			lm.axisPatterns[lang][a.Tag] = re
		}
		for lang, std := range a.Standard {
			if lm.axisStandard[lang] == nil {
				lm.axisStandard[lang] = map[string]string{}
			}
			lm.axisStandard[lang][a.Tag] = std
		}
	}

	sort.Slice(values, func(i, j int) bool { return values[i].Order < values[j].Order })
	for _, v := range values {
		lm.valueRows[v.Tag] = v.ValueRow
		lm.valueOrder = append(lm.valueOrder, v.Tag)

		langs := map[string]bool{}
		for _, p := range v.Patterns {
			if p.Lang == "XX" {
				// Language-independent rows apply to every language the
				// axis tables cover.
				for lang := range lm.axisPatterns {
					langs[lang] = true
				}
				continue
			}
			langs[p.Lang] = true
		}
		for lang := range langs {
			if lang == "XX" {
				continue
			}
			full := fullPatternFor(v.Patterns, lang)
			subs, err := expandSubPatterns(v.ValueRow, lang, full)
			if err != nil {
				return nil, err
			}
			if lm.valuePatterns[lang] == nil {
				lm.valuePatterns[lang] = map[string]*regexp.Regexp{}
			}
			for _, sp := range subs {
				lm.valuePatterns[lang][sp.tag] = sp.pattern
				lm.valueSubOrder[lang] = append(lm.valueSubOrder[lang], sp.tag)
				lm.tagGroup[sp.tag] = GroupValue
			}

			numbers := map[string]*regexp.Regexp{}
			for _, p := range v.Patterns {
				if p.AsNumber == "" || (p.Lang != lang && p.Lang != "XX") {
					continue
				}
				re, err := regexp.Compile(p.Pattern)
				if err != nil {
					return nil, fmt.Errorf("value %s number %s: %w", v.Tag, p.AsNumber, err)
				}
				numbers[p.AsNumber] = re
			}
			if len(numbers) > 0 {
				if lm.valueNumbers[lang] == nil {
					lm.valueNumbers[lang] = map[string]map[string]*regexp.Regexp{}
				}
				lm.valueNumbers[lang][v.Tag] = numbers
			}
		}
	}

	for _, c := range connectors {
		lm.tagGroup[c.Tag] = GroupConnector
		for lang, pattern := range c.Patterns {
			wrapped := pattern
			if c.AddStopper {
				wrapped = `\b` + pattern + `\b`
			}
			re, err := regexp.Compile(wrapped)
			if err != nil {
				return nil, fmt.Errorf("connector %s/%s: %w", c.Tag, lang, err)
			}
			if lm.connectorPatterns[lang] == nil {
				lm.connectorPatterns[lang] = map[string]*regexp.Regexp{}
			}
			lm.connectorPatterns[lang][c.Tag] = re
		}
	}
	// XX connectors apply to every language we have data for.
	for lang := range lm.connectorPatterns {
		if lang == "XX" {
			continue
		}
		for tag, re := range lm.connectorPatterns["XX"] {
			if _, already := lm.connectorPatterns[lang][tag]; !already {
				lm.connectorPatterns[lang][tag] = re
			}
		}
	}

	for _, ne := range namedEntities {
		if lm.namedEntities[ne.Language] == nil {
			lm.namedEntities[ne.Language] = map[string]NamedEntitySeed{}
		}
		lm.namedEntities[ne.Language][ne.Tag] = ne
		lm.namedEntityTags[ne.Language] = append(lm.namedEntityTags[ne.Language], ne.Tag)
	}

	return lm, nil
}

func fullPatternFor(patterns []ValuePatternSeed, lang string) string {
	seen := map[string]bool{}
	var parts []string
	for _, p := range patterns {
		if p.Lang != lang && p.Lang != "XX" {
			continue
		}
		if seen[p.Pattern] {
			continue
		}
		seen[p.Pattern] = true
		parts = append(parts, p.Pattern)
	}
	return strings.Join(parts, "|")
}

// AxisPatterns returns the compiled axis-tag patterns for lang.
func (lm *LanguageModel) AxisPatterns(lang string) map[string]*regexp.Regexp {
	return lm.axisPatterns[lang]
}

// AxisLevel returns an axis tag's conventional hierarchy level.
func (lm *LanguageModel) AxisLevel(tag string) (int, bool) {
	a, ok := lm.axes[tag]
	return a.Level, ok
}

// AxisDescription returns an axis tag's description, mainly for diagnostics.
func (lm *LanguageModel) AxisDescription(tag string) string {
	return lm.axes[tag].Description
}

// RoleOf returns the AxisRole of tag, falling back to the two synthetic
// entries the standardiser relies on ("" -> paragraph, "named_entity" ->
// document) and finally to paragraph for any other unknown tag.
func (lm *LanguageModel) RoleOf(tag string) AxisRole {
	if tag == "" {
		return RoleParagraph
	}
	if tag == "named_entity" {
		return RoleDocument
	}
	if a, ok := lm.axes[tag]; ok {
		return a.Role
	}
	return RoleParagraph
}

// AxisStandard returns the display string used to build a spoken title for
// an axis tag in lang.
func (lm *LanguageModel) AxisStandard(tag, lang string) (string, bool) {
	s, ok := lm.axisStandard[lang][tag]
	return s, ok
}

// ValuePatterns returns the compiled, fully-decorated sub-tag patterns for
// lang, in stable declaration order.
func (lm *LanguageModel) ValuePatterns(lang string) (tags []string, patterns map[string]*regexp.Regexp) {
	return lm.valueSubOrder[lang], lm.valuePatterns[lang]
}

// ValueAsNumber reads expression as a number under subTag's numeric
// reading, or returns ("", false) if no numeric pattern matches from the
// start of expression.
func (lm *LanguageModel) ValueAsNumber(expression, subTag, lang string) (string, bool) {
	byTag := lm.valueNumbers[lang]
	if byTag == nil {
		return "", false
	}
	numbers := byTag[subTag]
	if numbers == nil {
		return "", false
	}
	keys := make([]string, 0, len(numbers))
	for k := range numbers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, number := range keys {
		loc := numbers[number].FindStringIndex(expression)
		if loc != nil && loc[0] == 0 {
			return number, true
		}
	}
	return "", false
}

// ConnectorPatterns returns the compiled connector patterns for lang
// (language-specific entries override "XX" universal ones of the same tag).
func (lm *LanguageModel) ConnectorPatterns(lang string) map[string]*regexp.Regexp {
	return lm.connectorPatterns[lang]
}

// TagGroup returns the Group a non-named-entity tag belongs to.
func (lm *LanguageModel) TagGroup(tag string) (Group, bool) {
	g, ok := lm.tagGroup[tag]
	return g, ok
}

// TagsInGroup returns every tag (axis/value/connector) registered under g,
// used by the pattern DSL to expand `Group.<name>` into a character class.
func (lm *LanguageModel) TagsInGroup(g Group) []string {
	var tags []string
	for tag, tg := range lm.tagGroup {
		if tg == g {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// NamedEntityAbbreviation returns tag's abbreviation in lang, falling back
// to its title when no abbreviation was recorded.
func (lm *LanguageModel) NamedEntityAbbreviation(lang, tag string) (string, bool) {
	ne, ok := lm.namedEntities[lang][tag]
	if !ok {
		return "", false
	}
	if ne.Abbreviation != "" {
		return ne.Abbreviation, true
	}
	return ne.Title, true
}

func onlyTreatiesExcluded(tag string) bool {
	if len(tag) == 10 && tag[0] == '3' {
		return true
	}
	return strings.HasPrefix(tag, "http")
}

// KeyPatterns returns the ordered (tag, pattern) list used by the
// standardiser to classify a matched named-entity span back to its key.
func (lm *LanguageModel) KeyPatterns(lang string, onlyTreaties bool) []keyPattern {
	cacheKey := lang + "|" + boolKey(onlyTreaties)
	if cached, ok := lm.keyCache.Get(cacheKey); ok {
		return cached
	}

	var result []keyPattern
	for _, tag := range lm.namedEntityTags[lang] {
		if onlyTreaties && onlyTreatiesExcluded(tag) {
			continue
		}
		ne := lm.namedEntities[lang][tag]
		if ne.TitlePattern != "" {
			re, err := regexp.Compile(`(?i)\b(` + ne.TitlePattern + `)\b`)
			if err == nil {
				result = append(result, keyPattern{tag: tag, pattern: re})
			}
		}
		if ne.Abbreviation != "" {
			re, err := regexp.Compile(`\b(` + regexp.QuoteMeta(ne.Abbreviation) + `)\b`)
			if err == nil {
				result = append(result, keyPattern{tag: tag, pattern: re})
			}
		}
	}
	lm.keyCache.Add(cacheKey, result)
	return result
}

// NamedEntityPatterns returns the two aggregate scanning patterns
// PND_TITLE and PND_ABBREV, each an alternation over every named entity's
// title/abbreviation pattern in lang (optionally excluding treaty-external
// CELEX-shaped and http-prefixed tags).
func (lm *LanguageModel) NamedEntityPatterns(lang string, onlyTreaties bool) map[string]*regexp.Regexp {
	cacheKey := lang + "|" + boolKey(onlyTreaties)
	if cached, ok := lm.neCache.Get(cacheKey); ok {
		return cached
	}

	var titles, abbrevs []string
	for _, tag := range lm.namedEntityTags[lang] {
		if onlyTreaties && onlyTreatiesExcluded(tag) {
			continue
		}
		ne := lm.namedEntities[lang][tag]
		if ne.TitlePattern != "" {
			titles = append(titles, ne.TitlePattern)
		}
		if ne.Abbreviation != "" {
			abbrevs = append(abbrevs, regexp.QuoteMeta(ne.Abbreviation))
		}
	}

	result := map[string]*regexp.Regexp{}
	if len(titles) > 0 {
		if re, err := regexp.Compile(`(?i)\b(` + strings.Join(titles, "|") + `)\b`); err == nil {
			result["PND_TITLE"] = re
		}
	}
	if len(abbrevs) > 0 {
		if re, err := regexp.Compile(`\b(` + strings.Join(abbrevs, "|") + `)\b`); err == nil {
			result["PND_ABBREV"] = re
		}
	}
	lm.neCache.Add(cacheKey, result)
	return result
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Reset clears the process-wide memoisation caches this Language Model
// owns, per §4.10's reset() hook.
func (lm *LanguageModel) Reset() {
	lm.neCache.Purge()
	lm.keyCache.Purge()
}
