package model

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValueRow is the language-independent shape of a value tag: whether it
// can be decorated with trailing/surrounding brackets, whether upper/lower
// casing yields further distinct sub-patterns, whether it is stored
// pre-capitalised, and whether its matched text should be read as a number.
type ValueRow struct {
	Tag           string
	Order         int
	Decorable     bool
	Caseable      bool
	Capitalizable bool
	Convert       bool
	Description   string
}

// backref is the set of value tags that stand for "the thing just
// mentioned" rather than an explicit label.
var backref = map[string]bool{"XPREVX": true, "BRCRPL": true, "THEREOF": true}

// IsBackref reports whether tag names a back-reference value.
func IsBackref(tag string) bool {
	return backref[tag]
}

func caser(lang string) cases.Caser {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return cases.Upper(tag)
}

// expandSubPatterns reproduces Value.iter_sub_patterns: given the base tag,
// its decoration flags, and the already-OR'd raw pattern text for one
// language, yields every (subTag, compiledPattern) pair the tag expands to.
func expandSubPatterns(row ValueRow, lang, fullPattern string) ([]subPattern, error) {
	var out []subPattern

	add := func(subTag, pattern string) error {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("value %s: %w", subTag, err)
		}
		out = append(out, subPattern{tag: subTag, pattern: re})
		return nil
	}

	if row.Capitalizable {
		return out, add(row.Tag, `(?i)\b(`+fullPattern+`)\b`)
	}

	type cased struct {
		suffix, text string
	}
	var cases_ []cased
	if row.Caseable {
		upper := caser(lang).String(fullPattern)
		cases_ = []cased{
			{"_L", strings.ToLower(fullPattern)},
			{"_U", upper},
		}
	} else {
		cases_ = []cased{{"", fullPattern}}
	}

	for _, c := range cases_ {
		tag := row.Tag + c.suffix
		switch {
		case tag == "EURCOO" || tag == "EULCOO":
			// TODO: make this decision depend on a config parameter or on the
			// pattern's internals rather than hard-coding the no-\b,
			// case-insensitive treatment for these two tags only.
			if err := add(tag, `(?i)(`+c.text+`)`); err != nil {
				return out, err
			}
		case c.suffix == "_U" && row.Tag == "ROM":
			if err := add(tag, `\b(`+c.text+`)[A-Ha-h]?\b`); err != nil {
				return out, err
			}
		default:
			if err := add(tag, `\b(`+c.text+`)\b`); err != nil {
				return out, err
			}
		}
		if row.Decorable {
			if err := add(tag+"_B", `\b(`+c.text+`)\)`); err != nil {
				return out, err
			}
			if err := add(tag+"_BB", `\((`+c.text+`)\)`); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

type subPattern struct {
	tag     string
	pattern *regexp.Regexp
}
