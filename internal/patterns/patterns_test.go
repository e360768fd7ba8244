package patterns_test

import (
	"testing"

	"github.com/Lexparency/lexref/internal/patterns"
	"github.com/Lexparency/lexref/model"
)

func buildClassifier(t *testing.T) *patterns.Classifier {
	t.Helper()
	lm, err := model.Default()
	if err != nil {
		t.Fatalf("model.Default(): %v", err)
	}
	c, err := patterns.NewClassifier(lm)
	if err != nil {
		t.Fatalf("NewClassifier(): %v", err)
	}
	return c
}

func TestCompileFourthDirective(t *testing.T) {
	c := buildClassifier(t)
	re, err := c.Compile(`SRNK[REG:DIR:DEC]`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	srnk := string(c.TagChar("SRNK"))
	reg := string(c.TagChar("REG"))
	ok, err := re.MatchString(srnk + reg)
	if err != nil {
		t.Fatalf("MatchString: %v", err)
	}
	if !ok {
		t.Errorf("expected %q to match fourth_directive pattern", srnk+reg)
	}
}

func TestCompileReReferenceUsesGroupExpansion(t *testing.T) {
	c := buildClassifier(t)
	re, err := c.Compile(`[XPREVX]Group.axis`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	xprevx := string(c.TagChar("XPREVX"))
	art := string(c.TagChar("ART"))
	ok, err := re.MatchString(xprevx + art)
	if err != nil {
		t.Fatalf("MatchString: %v", err)
	}
	if !ok {
		t.Errorf("expected %q to match re_reference pattern", xprevx+art)
	}
}

func TestCompileOrphanAxesNegativeLookbehind(t *testing.T) {
	c := buildClassifier(t)
	re, err := c.Compile(`(?<![XPREVX:SRNK])Group.axis$`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	art := string(c.TagChar("ART"))
	ok, err := re.MatchString(art)
	if err != nil {
		t.Fatalf("MatchString: %v", err)
	}
	if !ok {
		t.Errorf("expected bare axis %q to match orphan_axes", art)
	}

	xprevx := string(c.TagChar("XPREVX"))
	ok, err = re.MatchString(xprevx + art)
	if err != nil {
		t.Fatalf("MatchString: %v", err)
	}
	if ok {
		t.Errorf("expected axis preceded by XPREVX not to match orphan_axes")
	}
}

func TestGroupProjection(t *testing.T) {
	got := patterns.GroupProjection([]model.Group{
		model.GroupNamedEntity, model.GroupConnector, model.GroupAxis,
		model.GroupValue, model.GroupCoordinate,
	})
	if got != "abcde" {
		t.Errorf("GroupProjection = %q, want %q", got, "abcde")
	}
}
