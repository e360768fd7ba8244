package sequencer_test

import (
	"testing"

	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/sequencer"
	"github.com/Lexparency/lexref/token"
)

func tok(group model.Group, tag, text string, start int) token.RefToken {
	return token.RefToken{
		Tag:  token.RefTag{Group: group, Value: tag},
		Span: token.Span{Start: start, End: start + len(text)},
		Text: text,
	}
}

func TestSequenceAttachesTailAcrossWhitespace(t *testing.T) {
	text := "Article 5"
	tokens := []token.RefToken{
		tok(model.GroupAxis, "ART", "Article", 0),
		tok(model.GroupValue, "AL", "5", 8),
	}
	seqs := sequencer.Sequence(text, tokens)
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d: %+v", len(seqs), seqs)
	}
	if len(seqs[0].Tokens) != 2 {
		t.Fatalf("expected 2 tokens in sequence, got %+v", seqs[0].Tokens)
	}
	if seqs[0].Tokens[0].Tail != " " {
		t.Errorf("expected tail %q, got %q", " ", seqs[0].Tokens[0].Tail)
	}
}

func TestSequenceBreaksOnNonWhitespaceGap(t *testing.T) {
	text := "Article 5 is about cats. Article 7 is about dogs."
	tokens := []token.RefToken{
		tok(model.GroupAxis, "ART", "Article", 0),
		tok(model.GroupValue, "AL", "5", 8),
		tok(model.GroupAxis, "ART", "Article", 25),
		tok(model.GroupValue, "AL", "7", 33),
	}
	seqs := sequencer.Sequence(text, tokens)
	if len(seqs) != 2 {
		t.Fatalf("expected 2 sequences, got %d: %+v", len(seqs), seqs)
	}
}

func TestSequenceDropsLoneNonNamedEntityToken(t *testing.T) {
	text := "and"
	tokens := []token.RefToken{tok(model.GroupConnector, "AND", "and", 0)}
	seqs := sequencer.Sequence(text, tokens)
	if len(seqs) != 0 {
		t.Fatalf("expected lone connector sequence to be dropped, got %+v", seqs)
	}
}

func TestSequenceKeepsLoneAnnex(t *testing.T) {
	text := "Annex"
	tokens := []token.RefToken{tok(model.GroupAxis, "ANX", "Annex", 0)}
	seqs := sequencer.Sequence(text, tokens)
	if len(seqs) != 1 {
		t.Fatalf("expected lone ANX sequence to be kept, got %+v", seqs)
	}
}

func TestSequenceSkipsOverlappingToken(t *testing.T) {
	text := "Articles"
	tokens := []token.RefToken{
		tok(model.GroupAxis, "ART", "Articles", 0),
		tok(model.GroupAxis, "ART", "Article", 0),
	}
	seqs := sequencer.Sequence(text, tokens)
	if len(seqs) != 1 || len(seqs[0].Tokens) != 1 {
		t.Fatalf("expected overlapping second token to be skipped, got %+v", seqs)
	}
}
