// Content-based field extraction over a rendered page.
//
// Every strategy keys on visible text or document structure, never on
// styling classes: OLX regenerates its CSS class names on every deploy,
// so anything positional must be scoped to a section that was first
// located by its text.

package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Strategy locates one field in a page's content tree. Strategies never
// fail; "" means the field is absent, which is a valid outcome.
type Strategy func(doc *goquery.Document) string

// FieldSpec binds a field name to an ordered strategy list.
type FieldSpec struct {
	Name       string
	Strategies []Strategy
}

// Field tries the spec's strategies in priority order and returns the
// first non-empty match, or "" when every strategy comes up empty.
func Field(doc *goquery.Document, spec FieldSpec) string {
	for _, strategy := range spec.Strategies {
		if value := Clean(strategy(doc)); value != "" {
			return value
		}
	}
	return ""
}

// Clean collapses whitespace runs into single spaces and trims the ends.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var strokeReplacer = strings.NewReplacer("ł", "l", "Ł", "l")

// Fold lowercases and strips diacritics so label comparisons survive
// rendering quirks. Polish ł has no combining-mark decomposition, so it
// is replaced before the transform.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, _ := transform.String(t, strokeReplacer.Replace(s))
	return strings.ToLower(folded)
}

// labelCandidates lists the elements short label texts render in.
const labelCandidates = "dt, th, label, p, span, strong, b, h2, h3, h4, h5"

// Label finds an element whose entire visible text equals one of the
// given labels (folded comparison) and returns the nearest content: the
// first non-empty following sibling, or whatever the label's parent
// renders after the label text itself.
func Label(labels ...string) Strategy {
	folded := make([]string, len(labels))
	for i, l := range labels {
		folded[i] = Fold(Clean(l))
	}
	return func(doc *goquery.Document) string {
		var value string
		doc.Find(labelCandidates).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := Fold(Clean(sel.Text()))
			for _, want := range folded {
				if text != want {
					continue
				}
				if v := siblingValue(sel); v != "" {
					value = v
					return false
				}
			}
			return true
		})
		return value
	}
}

func siblingValue(label *goquery.Selection) string {
	for sib := label.Next(); sib.Length() > 0; sib = sib.Next() {
		if text := Clean(sib.Text()); text != "" {
			return text
		}
	}
	// label and value rendered inside one parent node
	full := Clean(label.Parent().Text())
	lbl := Clean(label.Text())
	if rest := Clean(strings.TrimPrefix(full, lbl)); rest != "" && rest != full {
		return rest
	}
	return ""
}

// Section locates a named section by its heading text and returns the
// content child at the given index, counted over non-empty siblings
// after the heading. Position is only trusted inside the matched
// section, never globally.
func Section(heading string, index int) Strategy {
	want := Fold(Clean(heading))
	return func(doc *goquery.Document) string {
		var value string
		doc.Find("h2, h3, h4, dt, p, strong").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if Fold(Clean(sel.Text())) != want {
				return true
			}
			n := 0
			for sib := sel.Next(); sib.Length() > 0; sib = sib.Next() {
				text := Clean(sib.Text())
				if text == "" {
					continue
				}
				if n == index {
					value = text
					return false
				}
				n++
			}
			// heading matched but the section had too few children;
			// another occurrence may still carry the content
			return true
		})
		return value
	}
}

// Pattern scans the page's full visible text, folded, for fields with a
// recognizable lexical shape (salary amounts, contract-type keywords).
// Regexes passed here must be written against folded text: lowercase,
// no diacritics.
func Pattern(re *regexp.Regexp) Strategy {
	return func(doc *goquery.Document) string {
		return Clean(re.FindString(Fold(doc.Text())))
	}
}

// First returns the text of the first matching selector. Meant for
// semantically stable anchors (the posting's h1, the paragraph right
// after it), not for class-based lookups.
func First(selectors ...string) Strategy {
	return func(doc *goquery.Document) string {
		for _, selector := range selectors {
			sel := doc.Find(selector).First()
			if sel.Length() == 0 {
				continue
			}
			if text := Clean(sel.Text()); text != "" {
				return text
			}
		}
		return ""
	}
}
