// Package celex converts between a structural ordinate ("2016/679", "(EU)
// 2016/679") and its CELEX identifier ("32016R0679"), and back.
package celex

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Lexparency/lexref"
)

// MinYear is the earliest year a CELEX identifier can plausibly encode.
const MinYear = 1944

func maxYear() int {
	return time.Now().Year()
}

func yearPlausible(n int) bool {
	return n >= MinYear && n <= maxYear()
}

// interForDocType maps a lexref document axis tag to its CELEX sector-3
// "inter" letter.
var interForDocType = map[string]byte{
	"REG": 'R',
	"DEC": 'D',
	"DIR": 'L',
	"FDC": 'F',
}

// docTypeForInter is the inverse of interForDocType.
var docTypeForInter = map[byte]string{
	'R': "REG",
	'D': "DEC",
	'L': "DIR",
	'F': "FDC",
}

// GetDocType returns the document axis tag a CELEX identifier's sector
// position names, or "DOC" if celex is too short or names an inter letter
// this package doesn't recognise.
func GetDocType(celex string) string {
	if len(celex) < 6 {
		return "DOC"
	}
	if dt, ok := docTypeForInter[celex[5]]; ok {
		return dt
	}
	return "DOC"
}

func buildCelex(year, number int, inter byte) string {
	if year < 100 {
		year += 1900
	}
	if yearPlausible(number) && !yearPlausible(year) {
		number, year = year, number
	}
	return fmt.Sprintf("3%d%c%04d", year, inter, number)
}

func splitNumberSlashYear(ordinate string) (number, year int, err error) {
	fields := strings.Fields(ordinate)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("empty ordinate")
	}
	parts := strings.Split(fields[len(fields)-1], "/")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("ordinate %q has no slash", ordinate)
	}
	number, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return number, year, nil
}

// regulationSubDomains reports the comma-separated parenthesised tag right
// before a Regulation's number/year, e.g. "(EU) 2016/679" -> ["eu"].
func regulationSubDomains(ordinate string) []string {
	open := strings.Index(ordinate, "(")
	if open < 0 {
		return nil
	}
	rest := ordinate[open+1:]
	close := strings.Index(rest, ")")
	if close < 0 {
		return nil
	}
	var out []string
	for _, dd := range strings.Split(rest[:close], ",") {
		out = append(out, strings.ToLower(strings.TrimSpace(dd)))
	}
	return out
}

// celexForRegulation builds a REG CELEX id, trying the Directive fallback
// once if the ordinate doesn't parse as "number/year" (some Regulations
// are cited "(EU) .../..." the same way Directives are).
func celexForRegulation(ordinate string, depth int) (string, error) {
	if depth > 1 {
		return "", lexref.NewError(lexref.RecursionDepthExceeded,
			"maximal recursion depth reached converting %q to CELEX", ordinate)
	}
	number, year, err := splitNumberSlashYear(ordinate)
	if err != nil {
		return celexForDirective('R', ordinate, depth+1)
	}
	if subs := regulationSubDomains(ordinate); len(subs) > 0 {
		if subs[0] == "eu" || subs[0] == "ue" {
			if number >= 2015 {
				year, number = number, year
			}
		}
	}
	return buildCelex(year, number, 'R'), nil
}

// celexForDirective builds a DEC/DIR/FDC CELEX id with inter letter inter,
// falling back once to the Regulation reading for the rare "Directive (EU)
// .../..." citation shape.
func celexForDirective(inter byte, ordinate string, depth int) (string, error) {
	if depth > 1 {
		return "", lexref.NewError(lexref.RecursionDepthExceeded,
			"maximal recursion depth reached converting %q to CELEX", ordinate)
	}
	fields := strings.Fields(ordinate)
	if len(fields) > 0 {
		parts := strings.SplitN(fields[len(fields)-1], "/", 3)
		if len(parts) >= 2 {
			if year, err := strconv.Atoi(parts[0]); err == nil {
				if number, err := strconv.Atoi(parts[1]); err == nil {
					return buildCelex(year, number, inter), nil
				}
			}
		}
	}
	celex, err := celexForRegulation(ordinate, depth+1)
	if err != nil {
		return "", err
	}
	year, yerr := strconv.Atoi(celex[1:5])
	number, nerr := strconv.Atoi(celex[6:10])
	if yerr != nil || nerr != nil {
		return "", lexref.NewError(lexref.BadCitation, "cannot read year/number back from %q", celex)
	}
	return buildCelex(year, number, inter), nil
}

type encodeKey struct {
	axisTag, value, lang string
}

// Handler converts ordinates to and from CELEX identifiers for the
// document axis tags it knows (REG, DEC, DIR, FDC), memoising both
// directions and remembering, per language, which ordinate a given CELEX
// id was built from (so Invert can recover the original spelling instead
// of only a canonical re-rendering).
type Handler struct {
	encodeCache *lru.Cache[encodeKey, string]
	inverse     map[[2]string][2]string // (celex, lang) -> (axisTag, value)
}

// NewHandler builds an empty Handler.
func NewHandler() *Handler {
	cache, _ := lru.New[encodeKey, string](1024)
	return &Handler{
		encodeCache: cache,
		inverse:     map[[2]string][2]string{},
	}
}

// Encode converts an ordinate (the matched text following a document axis
// like "Regulation" or "Directive") to its CELEX identifier.
func (h *Handler) Encode(axisTag, value, lang string) (string, error) {
	key := encodeKey{axisTag, value, lang}
	if celex, ok := h.encodeCache.Get(key); ok {
		return celex, nil
	}
	var (
		celex string
		err   error
	)
	switch axisTag {
	case "REG":
		celex, err = celexForRegulation(value, 0)
	case "DEC":
		celex, err = celexForDirective('D', value, 0)
	case "DIR":
		celex, err = celexForDirective('L', value, 0)
	case "FDC":
		celex, err = celexForDirective('F', value, 0)
	default:
		return "", lexref.NewTagError(lexref.UnsupportedRole, lang, axisTag,
			"axis %q has no CELEX encoding", axisTag)
	}
	if err != nil {
		return "", err
	}
	h.encodeCache.Add(key, celex)
	h.inverse[[2]string{celex, lang}] = [2]string{axisTag, value}
	return celex, nil
}

// Invert recovers the (axisTag, value) pair that produced celex in lang,
// falling back to a canonical re-rendering ("number/year" or "year/number")
// when celex was never produced by Encode in this process.
func (h *Handler) Invert(celex, lang string) (axisTag, value string) {
	if pair, ok := h.inverse[[2]string{celex, lang}]; ok {
		return pair[0], pair[1]
	}
	return fallBackInversion(celex)
}

func fallBackInversion(celex string) (axisTag, value string) {
	if len(celex) < 10 {
		return "DOC", celex
	}
	inter := celex[5]
	number, err := strconv.Atoi(celex[6:10])
	if err != nil {
		return "DOC", celex
	}
	year := celex[1:5]
	docType := docTypeForInter[inter]
	if docType == "" {
		docType = "DOC"
	}
	if inter == 'R' {
		return docType, fmt.Sprintf("%d/%s", number, year)
	}
	return docType, fmt.Sprintf("%s/%d", year, number)
}

// Reset forgets every memoised encoding and inverse lookup.
func (h *Handler) Reset() {
	h.encodeCache.Purge()
	h.inverse = map[[2]string][2]string{}
}

// HumanCitation renders a CELEX identifier as a short, human-readable
// citation, e.g. "32016R0679" -> "Regulation 679/2016".
func HumanCitation(celex string, standard map[string]string) string {
	docType := GetDocType(celex)
	_, value := fallBackInversion(celex)
	label := standard[docType]
	if label == "" {
		label = docType
	}
	return label + " " + value
}
