package markup_test

import (
	"strings"
	"testing"

	"github.com/Lexparency/lexref/emit"
	"github.com/Lexparency/lexref/markup"
	"github.com/Lexparency/lexref/token"
)

func TestSpliceWrapsReferenceSpan(t *testing.T) {
	text := "See Article 5 for details."
	refs := []emit.Reference{
		{Span: token.Span{Start: 4, End: 13}, Href: "#art-5", Title: "Article 5"},
	}
	out := markup.Splice(text, refs)
	if !strings.Contains(out, `<a href="#art-5" title="Article 5">Article 5</a>`) {
		t.Errorf("missing expected anchor in %q", out)
	}
	if !strings.HasPrefix(out, "See ") || !strings.HasSuffix(out, " for details.") {
		t.Errorf("surrounding text not preserved: %q", out)
	}
}

func TestSpliceEscapesAmpersand(t *testing.T) {
	text := "Articles 5 & 6"
	out := markup.Splice(text, nil)
	if out != "Articles 5 &amp; 6" {
		t.Errorf("expected ampersand to be escaped, got %q", out)
	}
}

func TestSpliceIgnoresOutOfBoundsSpan(t *testing.T) {
	text := "short"
	refs := []emit.Reference{
		{Span: token.Span{Start: 0, End: 100}, Href: "#x", Title: "x"},
	}
	out := markup.Splice(text, refs)
	if out != "short" {
		t.Errorf("expected the out-of-range reference to be dropped, got %q", out)
	}
}
