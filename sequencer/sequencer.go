// Package sequencer implements the Sequencer (spec §4.4): it partitions a
// sorted token list into TokenSequences, attaching interstitial text as
// the preceding token's tail, and drops uninteresting length-1 sequences.
package sequencer

import (
	"regexp"

	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/token"
)

// TokenSequence is a contiguous run of tokens separated only by
// whitespace (or nothing), the unit the Coordination Engine operates on.
type TokenSequence struct {
	Tokens []token.RefToken
}

var whitespaceOnly = regexp.MustCompile(`^\s*$`)

// Sequence partitions tokens (already sorted by (start, -length) per the
// Tokeniser's contract) into TokenSequences, given the source text they
// were scanned from.
func Sequence(text string, tokens []token.RefToken) []TokenSequence {
	var sequences []TokenSequence
	var current *TokenSequence
	prevEnd := -1

	for _, t := range tokens {
		if current != nil && t.Span.Start < prevEnd {
			// Overlaps the last accepted token in the current sequence: skip.
			continue
		}
		if current == nil {
			sequences = append(sequences, TokenSequence{Tokens: []token.RefToken{t}})
			current = &sequences[len(sequences)-1]
			prevEnd = t.Span.End
			continue
		}

		gap := text[prevEnd:t.Span.Start]
		if whitespaceOnly.MatchString(gap) && t.Tag.Value != "SEPARATE" {
			last := len(current.Tokens) - 1
			current.Tokens[last].Tail = gap
			current.Tokens = append(current.Tokens, t)
		} else {
			sequences = append(sequences, TokenSequence{Tokens: []token.RefToken{t}})
			current = &sequences[len(sequences)-1]
		}
		prevEnd = t.Span.End
	}

	var kept []TokenSequence
	for _, seq := range sequences {
		if len(seq.Tokens) == 1 {
			sole := seq.Tokens[0]
			if sole.Tag.Group != model.GroupNamedEntity && sole.Tag.Value != "ANX" {
				continue
			}
		}
		kept = append(kept, seq)
	}
	return kept
}
