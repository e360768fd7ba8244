package lexer_test

import (
	"testing"

	"github.com/Lexparency/lexref/lexer"
	"github.com/Lexparency/lexref/model"
)

func buildModel(t *testing.T) *model.LanguageModel {
	t.Helper()
	lm, err := model.Default()
	if err != nil {
		t.Fatalf("model.Default(): %v", err)
	}
	return lm
}

func TestScanFindsAxisAndValue(t *testing.T) {
	lm := buildModel(t)
	toks := lexer.Scan(lm, "EN", "Article 5", false)
	if len(toks) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d: %+v", len(toks), toks)
	}
	var sawArt, sawAL bool
	for _, tok := range toks {
		if tok.Tag.Value == "ART" {
			sawArt = true
		}
		if tok.Tag.Value == "AL" {
			sawAL = true
		}
	}
	if !sawArt {
		t.Errorf("expected an ART token, got %+v", toks)
	}
	if !sawAL {
		t.Errorf("expected an AL token, got %+v", toks)
	}
}

func TestScanSortsByStartThenLongest(t *testing.T) {
	lm := buildModel(t)
	toks := lexer.Scan(lm, "EN", "Regulation (EU) 2016/679", false)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		if cur.Span.Start < prev.Span.Start {
			t.Fatalf("tokens not sorted by start: %+v before %+v", prev, cur)
		}
		if cur.Span.Start == prev.Span.Start && cur.Span.Len() > prev.Span.Len() {
			t.Fatalf("same-start tokens not longest-first: %+v before %+v", prev, cur)
		}
	}
}

func TestScanFindsNamedEntity(t *testing.T) {
	lm := buildModel(t)
	toks := lexer.Scan(lm, "EN", "under the TFEU", false)
	found := false
	for _, tok := range toks {
		if tok.Tag.Value == "TFEU" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a TFEU named-entity token, got %+v", toks)
	}
}
