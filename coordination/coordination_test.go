package coordination_test

import (
	"testing"

	"github.com/Lexparency/lexref/coordination"
	"github.com/Lexparency/lexref/internal/patterns"
	"github.com/Lexparency/lexref/lexer"
	"github.com/Lexparency/lexref/model"
)

func buildSequence(t *testing.T, text string) *coordination.Sequence {
	t.Helper()
	lm, err := model.Default()
	if err != nil {
		t.Fatalf("model.Default(): %v", err)
	}
	cls, err := patterns.NewClassifier(lm)
	if err != nil {
		t.Fatalf("NewClassifier(): %v", err)
	}
	toks := lexer.Scan(lm, "EN", text, false)
	return coordination.New(lm, cls, "EN", toks)
}

func TestFinalizeSimpleArticle(t *testing.T) {
	seq := buildSequence(t, "Article 5")
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	roots := seq.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected exactly 1 root coordinate, got %d", len(roots))
	}
	node := seq.Arena.Node(roots[0])
	if node.Axis.Tag.Value != "ART" {
		t.Errorf("root axis = %q, want ART", node.Axis.Tag.Value)
	}
	if node.Value.Text != "5" {
		t.Errorf("root value = %q, want 5", node.Value.Text)
	}
}

func TestFinalizeParagraphUnderArticle(t *testing.T) {
	seq := buildSequence(t, "Article 5(1)")
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	roots := seq.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected exactly 1 root coordinate, got %d: arena=%+v", len(roots), seq.Arena)
	}
}

func TestFinalizeDropsBareConnector(t *testing.T) {
	seq := buildSequence(t, "and")
	if err := seq.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(seq.Items) != 0 {
		t.Errorf("expected the sequence to be emptied, got %+v", seq.Items)
	}
}
