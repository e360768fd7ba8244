package emit_test

import (
	"testing"

	"github.com/Lexparency/lexref/coordination"
	"github.com/Lexparency/lexref/emit"
	"github.com/Lexparency/lexref/internal/patterns"
	"github.com/Lexparency/lexref/lexer"
	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/sequencer"
	"github.com/Lexparency/lexref/standardize"
)

func buildEmitter(t *testing.T) (*emit.Emitter, *model.LanguageModel, *patterns.Classifier) {
	t.Helper()
	lm, err := model.Default()
	if err != nil {
		t.Fatalf("model.Default(): %v", err)
	}
	cls, err := patterns.NewClassifier(lm)
	if err != nil {
		t.Fatalf("NewClassifier(): %v", err)
	}
	std := standardize.New(lm)
	e := emit.New(std, "https://lexparency.org", "EN", model.RoleToken)
	return e, lm, cls
}

func TestEmitSimpleArticle(t *testing.T) {
	e, lm, cls := buildEmitter(t)
	text := "Article 5"
	seqs := sequencer.Sequence(text, lexer.Scan(lm, "EN", text, false))
	if len(seqs) != 1 {
		t.Fatalf("expected exactly 1 sequence, got %d", len(seqs))
	}
	seq := coordination.New(lm, cls, "EN", seqs[0].Tokens)
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	refs, err := e.Emit(seq.Arena, seq.Roots())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected exactly 1 reference, got %d: %+v", len(refs), refs)
	}
	if refs[0].Href != "#ART_5" {
		t.Errorf("href = %q, want %q", refs[0].Href, "#ART_5")
	}
	if refs[0].Title != "Art. 5" {
		t.Errorf("title = %q, want %q", refs[0].Title, "Art. 5")
	}
}

func TestEmitSkipsRoleFinerThanMin(t *testing.T) {
	e, lm, cls := buildEmitter(t)
	std := standardize.New(lm)
	strict := emit.New(std, "https://lexparency.org", "EN", model.RoleDocument)
	_ = e

	text := "Article 5"
	seqs := sequencer.Sequence(text, lexer.Scan(lm, "EN", text, false))
	if len(seqs) != 1 {
		t.Fatalf("expected exactly 1 sequence, got %d", len(seqs))
	}
	seq := coordination.New(lm, cls, "EN", seqs[0].Tokens)
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	refs, err := strict.Emit(seq.Arena, seq.Roots())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected a leaf-role reference to be filtered out by min_role=document, got %+v", refs)
	}
}

func TestEmitSeedsDocumentContext(t *testing.T) {
	_, lm, cls := buildEmitter(t)
	std := standardize.New(lm)
	document, err := std.Standardize("REG", "SPN", "(EU) 575/2013", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	e := emit.New(std, "https://lexparency.org", "EN", model.RoleToken)
	e.SetContext(nil, &document)

	text := "Article 43"
	seqs := sequencer.Sequence(text, lexer.Scan(lm, "EN", text, false))
	if len(seqs) != 1 {
		t.Fatalf("expected exactly 1 sequence, got %d", len(seqs))
	}
	seq := coordination.New(lm, cls, "EN", seqs[0].Tokens)
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	refs, err := e.Emit(seq.Arena, seq.Roots())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected exactly 1 reference, got %d: %+v", len(refs), refs)
	}
	if want := "https://lexparency.org/eu/" + document.Value + "/ART_43/"; refs[0].Href != want {
		t.Errorf("href = %q, want %q", refs[0].Href, want)
	}
	if want := "Regulation (EU) 575/2013 Art. 43"; refs[0].Title != want {
		t.Errorf("title = %q, want %q", refs[0].Title, want)
	}
}
