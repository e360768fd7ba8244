// Package patterns compiles the §6.2 pattern DSL: a mini-language over
// single characters where `Group.<name>` expands to a character class of
// every tag in that group, `:` separators are discarded, and named groups
// use .NET-style `(?<name>...)` syntax so the result can be compiled with
// regexp2 (lookbehind/negative-lookahead are used throughout the
// Coordination/Nesting Engine's patterns, which stdlib regexp cannot
// express).
package patterns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/Lexparency/lexref/model"
)

// tagAlphabet supplies one rune per registered tag. Plain ASCII letters
// are enough for the ~55 axis/value/connector tags the Language Model
// carries; the assignment only needs to be internally consistent within
// one Classifier; it doesn't need to match any other process's.
const tagAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Classifier assigns every axis/value/connector tag in a Language Model a
// single rune, and groups those runes into per-Group character classes,
// so the DSL's `Group.<name>` shortcut and bare tag names can be expanded
// into concrete regex fragments.
type Classifier struct {
	tagChar   map[string]rune
	groupChar map[model.Group]string // already bracketed, e.g. "[AbC]"
}

// NewClassifier builds a Classifier over every tag lm registers under
// GroupAxis, GroupValue, or GroupConnector. Named-entity tags are
// deliberately excluded (they're always promoted to coordinates by the
// "coordinates" handler before any value-projection pattern needs to see
// them).
func NewClassifier(lm *model.LanguageModel) (*Classifier, error) {
	var tags []string
	for _, g := range []model.Group{model.GroupAxis, model.GroupValue, model.GroupConnector} {
		tags = append(tags, lm.TagsInGroup(g)...)
	}
	sort.Strings(tags)

	if len(tags) > len(tagAlphabet) {
		return nil, fmt.Errorf("patterns: %d tags exceed the %d-rune alphabet", len(tags), len(tagAlphabet))
	}

	c := &Classifier{
		tagChar:   map[string]rune{},
		groupChar: map[model.Group]string{},
	}
	byGroup := map[model.Group][]rune{}
	for i, tag := range tags {
		r := rune(tagAlphabet[i])
		c.tagChar[tag] = r
		g, _ := lm.TagGroup(tag)
		byGroup[g] = append(byGroup[g], r)
	}
	for g, runes := range byGroup {
		c.groupChar[g] = "[" + string(runes) + "]"
	}
	return c, nil
}

// TagChar returns the single rune assigned to tag, or 0 if tag is unknown
// (e.g. a named-entity tag, or "coordinate").
func (c *Classifier) TagChar(tag string) rune {
	return c.tagChar[tag]
}

var pOpenGroup = regexp.MustCompile(`Group\.(named_entity|connector|axis|value|coordinate)`)
var pCaptureName = regexp.MustCompile(`\(\?P<`)

// expandGroups replaces every `Group.<name>` occurrence with its character
// class ("coordinate" expands to the bare literal coordinate marker #,
// matching spec §4.5: "Coordinates use the literal #").
func (c *Classifier) expandGroups(raw string) string {
	return pOpenGroup.ReplaceAllStringFunc(raw, func(m string) string {
		name := strings.TrimPrefix(m, "Group.")
		if name == "coordinate" {
			return "#"
		}
		var g model.Group
		switch name {
		case "named_entity":
			g = model.GroupNamedEntity
		case "connector":
			g = model.GroupConnector
		case "axis":
			g = model.GroupAxis
		case "value":
			g = model.GroupValue
		}
		if cls, ok := c.groupChar[g]; ok {
			return cls
		}
		return "[]"
	})
}

var wordTag = regexp.MustCompile(`\b[A-Z][A-Z0-9_]*\b`)

// expandTags replaces every bare, already-registered tag name with its
// assigned rune. Unrecognised all-caps words (there shouldn't be any,
// once every pattern's tags are registered) are left untouched.
func (c *Classifier) expandTags(raw string) string {
	return wordTag.ReplaceAllStringFunc(raw, func(tag string) string {
		if r, ok := c.tagChar[tag]; ok {
			return string(r)
		}
		return tag
	})
}

// Compile expands raw (a §6.2 DSL pattern) against c and compiles it with
// regexp2, translating Python-style `(?P<name>` named groups to the
// `(?<name>` syntax regexp2 expects and discarding `:` separators.
func (c *Classifier) Compile(raw string) (*regexp2.Regexp, error) {
	expanded := c.expandGroups(raw)
	expanded = c.expandTags(expanded)
	expanded = strings.ReplaceAll(expanded, ":", "")
	expanded = pCaptureName.ReplaceAllString(expanded, "(?<")
	re, err := regexp2.Compile(expanded, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("patterns: compiling %q (from %q): %w", expanded, raw, err)
	}
	return re, nil
}

var groupWord = regexp.MustCompile(`\b(named_entity|connector|axis|value|coordinate)\b`)

// groupLetter is the fixed §4.5 "groups" projection alphabet: one letter
// per Group, independent of any Classifier (every Sequence uses the same
// five letters regardless of its Language Model).
var groupLetter = map[string]string{
	"named_entity": "a",
	"connector":    "b",
	"axis":         "c",
	"value":        "d",
	"coordinate":   "e",
}

// CompileGroupPattern compiles a §6.2 DSL pattern written over the
// "groups" projection (bare group names named_entity/connector/axis/
// value/coordinate, not the per-tag "values" projection that Classifier.
// Compile targets). It needs no Classifier since the groups alphabet is
// fixed.
func CompileGroupPattern(raw string) (*regexp2.Regexp, error) {
	expanded := groupWord.ReplaceAllStringFunc(raw, func(w string) string {
		return groupLetter[w]
	})
	expanded = strings.ReplaceAll(expanded, ":", "")
	expanded = pCaptureName.ReplaceAllString(expanded, "(?<")
	re, err := regexp2.Compile(expanded, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("patterns: compiling group pattern %q (from %q): %w", expanded, raw, err)
	}
	return re, nil
}

// MustCompileAll compiles every entry of base against c, panicking on the
// first error, for callers that treat a pattern that fails to compile as
// a data bug rather than a runtime condition.
func (c *Classifier) MustCompileAll(base map[string]string) map[string]*regexp2.Regexp {
	out := make(map[string]*regexp2.Regexp, len(base))
	for name, raw := range base {
		re, err := c.Compile(raw)
		if err != nil {
			panic(err)
		}
		out[name] = re
	}
	return out
}

// GroupProjection renders seq as the §4.5 "groups" string: one character
// per token, named_entity->a, connector->b, axis->c, value->d,
// coordinate->e.
func GroupProjection(groups []model.Group) string {
	var b strings.Builder
	for _, g := range groups {
		switch g {
		case model.GroupNamedEntity:
			b.WriteByte('a')
		case model.GroupConnector:
			b.WriteByte('b')
		case model.GroupAxis:
			b.WriteByte('c')
		case model.GroupValue:
			b.WriteByte('d')
		case model.GroupCoordinate:
			b.WriteByte('e')
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// ValueProjection renders the §4.5 "values" string: one character per
// tag (via c), coordinates as the literal '#', anything unrecognised
// (named entities, before they're promoted) as a space.
func (c *Classifier) ValueProjection(isCoordinate []bool, tags []string) string {
	var b strings.Builder
	for i, tag := range tags {
		switch {
		case isCoordinate[i]:
			b.WriteByte('#')
		default:
			if r, ok := c.tagChar[tag]; ok {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
