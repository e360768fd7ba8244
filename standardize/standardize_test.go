package standardize_test

import (
	"testing"

	"github.com/Lexparency/lexref"
	"github.com/Lexparency/lexref/internal/cycle"
	"github.com/Lexparency/lexref/internal/test"
	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/standardize"
)

func newStandardizer(t *testing.T) *standardize.Standardizer {
	t.Helper()
	lm, err := model.Default()
	if err != nil {
		t.Fatalf("model.Default(): %v", err)
	}
	return standardize.New(lm)
}

func TestStandardizeLeafAxis(t *testing.T) {
	s := newStandardizer(t)
	sc, err := s.Standardize("ART", "AL", "5", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	if sc.AxisTag != "ART" || sc.Value != "5" || sc.Role != model.RoleLeaf {
		t.Errorf("got %+v", sc)
	}
}

func TestStandardizeCelexBearing(t *testing.T) {
	s := newStandardizer(t)
	sc, err := s.Standardize("REG", "SPN", "2016/679", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	if sc.AxisTag != "REG" || sc.Role != model.RoleDocument {
		t.Errorf("got %+v", sc)
	}
	if sc.Value == "2016/679" {
		t.Errorf("expected a CELEX identifier, got the raw ordinate back")
	}
}

func TestStandardizeAnnex(t *testing.T) {
	s := newStandardizer(t)
	sc, err := s.Standardize("ANX", "ANX", "", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	if sc.AxisTag != "ANX" || sc.Role != model.RoleContainer {
		t.Errorf("got %+v", sc)
	}
}

func TestStandardizeCachesResult(t *testing.T) {
	s := newStandardizer(t)
	first, err := s.Standardize("ART", "AL", "7", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	second, err := s.Standardize("ART", "AL", "7", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	if first != second {
		t.Errorf("expected a cached, identical result: %+v vs %+v", first, second)
	}
}

func TestTargetRoleMixedOnDisagreement(t *testing.T) {
	target := standardize.Target{
		{AxisTag: "ART", Value: "5", Role: model.RoleLeaf},
		{AxisTag: "PAR", Value: "2", Role: model.RoleParagraph},
	}
	role, err := target.Role()
	if err != nil {
		t.Fatalf("Role: %v", err)
	}
	if role != model.RoleMixed {
		t.Errorf("role = %v, want mixed", role)
	}
}

func TestJoinResolvesAgainstRecent(t *testing.T) {
	recent := cycle.New[standardize.Target](5)
	recent.Push(standardize.Target{
		{AxisTag: "REG", Value: "32016R0679", Role: model.RoleDocument},
		{AxisTag: "ART", Value: "5", Role: model.RoleLeaf},
	})

	backref := standardize.Target{
		{AxisTag: "ART", Value: "THEREOF", Role: model.RoleLeaf},
		{AxisTag: "PAR", Value: "2", Role: model.RoleParagraph},
	}
	joined, err := standardize.Join(backref, recent)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(joined) != 3 || joined[0].AxisTag != "REG" || joined[len(joined)-1].AxisTag != "PAR" {
		t.Fatalf("unexpected joined target: %+v", joined)
	}
}

func TestJoinFailsWithNoRecentTarget(t *testing.T) {
	recent := cycle.New[standardize.Target](5)
	backref := standardize.Target{
		{AxisTag: "ART", Value: "THEREOF", Role: model.RoleLeaf},
	}
	_, err := standardize.Join(backref, recent)
	test.ExpectErrorKind(t, lexref.JoiningError, err)
}

func TestGetHrefDocumentRootedLeafOmitsFragment(t *testing.T) {
	s := newStandardizer(t)
	doc, err := s.Standardize("REG", "SPN", "(EU) 575/2013", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	leaf, err := s.Standardize("ART", "AL", "43", "EN")
	if err != nil {
		t.Fatalf("Standardize: %v", err)
	}
	href := standardize.GetHref(standardize.Target{doc, leaf}, "https://lexparency.org")
	if want := "https://lexparency.org/eu/" + doc.Value + "/ART_43/"; href != want {
		t.Errorf("href = %q, want %q", href, want)
	}
	title := standardize.GetSpoken(standardize.Target{doc, leaf}, "EN", s.LanguageModel(), s.CelexHandler())
	if want := "Regulation (EU) 575/2013 Art. 43"; title != want {
		t.Errorf("title = %q, want %q", title, want)
	}
}

func TestGetHrefContainerTocFragmentUsesUppercaseCollatedTokens(t *testing.T) {
	target := standardize.Target{
		{AxisTag: "PRT", Value: "1", Role: model.RoleContainer},
		{AxisTag: "TIT", Value: "I", Role: model.RoleContainer},
		{AxisTag: "CHP", Value: "A", Role: model.RoleContainer},
	}
	href := standardize.GetHref(target, "https://lexparency.org")
	if want := "#toc-PRT_1-TIT_I-CHP_A"; href != want {
		t.Errorf("href = %q, want %q", href, want)
	}
}

func TestGetHrefInsiderLeafPathJoinsEveryCoordinate(t *testing.T) {
	target := standardize.Target{
		{AxisTag: "ART", Value: "2", Role: model.RoleLeaf},
		{AxisTag: "PAR", Value: "1", Role: model.RoleParagraph},
		{AxisTag: "PT", Value: "a", Role: model.RoleParagraph},
	}
	href := standardize.GetHref(target, "https://lexparency.org")
	if want := "#ART_2-1-a"; href != want {
		t.Errorf("href = %q, want %q", href, want)
	}
}
