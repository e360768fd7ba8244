// Package lexer implements the Tokeniser (spec §4.3): it scans a string
// against one Language Model and returns every match, in scanning order,
// as a sorted token list.
package lexer

import (
	"regexp"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/token"
)

// Scan tokenises text in lang against lm, in the fixed family order
// named-entity, connector, axis, value. Within a family every tagged
// pattern is matched independently and every occurrence is kept;
// overlap resolution happens later, in the Sequencer. The returned slice
// is sorted by (span.Start, -span.Len) so that for a given start position
// the longest match sorts first.
func Scan(lm *model.LanguageModel, lang, text string, onlyTreaties bool) []token.RefToken {
	text = norm.NFC.String(text)

	var tokens []token.RefToken
	tokens = append(tokens, scanNamedEntities(lm, lang, text, onlyTreaties)...)
	tokens = append(tokens, scanFamily(lm.ConnectorPatterns(lang), model.GroupConnector, text)...)
	tokens = append(tokens, scanFamily(lm.AxisPatterns(lang), model.GroupAxis, text)...)
	tags, patterns := lm.ValuePatterns(lang)
	tokens = append(tokens, scanOrdered(tags, patterns, model.GroupValue, text)...)

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Span.Start != tokens[j].Span.Start {
			return tokens[i].Span.Start < tokens[j].Span.Start
		}
		return tokens[i].Span.Len() > tokens[j].Span.Len()
	})
	return tokens
}

func scanFamily(patterns map[string]*regexp.Regexp, group model.Group, text string) []token.RefToken {
	tags := make([]string, 0, len(patterns))
	for tag := range patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return scanOrdered(tags, patterns, group, text)
}

func scanOrdered(tags []string, patterns map[string]*regexp.Regexp, group model.Group, text string) []token.RefToken {
	var out []token.RefToken
	for _, tag := range tags {
		re := patterns[tag]
		if re == nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, token.RefToken{
				Tag:  token.RefTag{Group: group, Value: tag},
				Span: token.Span{Start: loc[0], End: loc[1]},
				Text: text[loc[0]:loc[1]],
			})
		}
	}
	return out
}

// scanNamedEntities scans the two aggregate patterns PND_TITLE/PND_ABBREV
// for speed, then classifies each hit back to its concrete named-entity
// key via the ordered key patterns.
func scanNamedEntities(lm *model.LanguageModel, lang, text string, onlyTreaties bool) []token.RefToken {
	aggregate := lm.NamedEntityPatterns(lang, onlyTreaties)
	if len(aggregate) == 0 {
		return nil
	}
	var out []token.RefToken
	seen := map[[2]int]bool{}
	for _, re := range aggregate {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			key := [2]int{loc[0], loc[1]}
			if seen[key] {
				continue
			}
			seen[key] = true
			span := text[loc[0]:loc[1]]
			tag, ok := classify(lm, lang, onlyTreaties, span)
			if !ok {
				continue
			}
			out = append(out, token.RefToken{
				Tag:  token.RefTag{Group: model.GroupNamedEntity, Value: tag},
				Span: token.Span{Start: loc[0], End: loc[1]},
				Text: span,
			})
		}
	}
	return out
}

func classify(lm *model.LanguageModel, lang string, onlyTreaties bool, span string) (string, bool) {
	for _, kp := range lm.KeyPatterns(lang, onlyTreaties) {
		if kp.Pattern().MatchString(span) {
			return kp.Tag(), true
		}
	}
	return "", false
}
