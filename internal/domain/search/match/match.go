// Package match classifies how a literal search term occurs in a text.
//
// Matching is tokenizer-free: the term is located as a case-folded literal
// and the runes around each occurrence decide its tier. Terms are never
// interpreted as pattern syntax.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Kind is a match tier. Higher values are stronger matches.
type Kind int

// Match tiers, weakest first.
const (
	None Kind = iota
	// Substring matches the term anywhere.
	Substring
	// Prefix matches the term at the start of a word.
	Prefix
	// Exact matches the term as a whole word.
	Exact
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Prefix:
		return "starts"
	case Substring:
		return "contains"
	default:
		return "none"
	}
}

// Term is a normalized free-text search term.
type Term struct {
	raw    string
	folded string
}

// NewTerm trims s and prepares it for case-insensitive matching.
func NewTerm(s string) Term {
	s = strings.TrimSpace(s)
	return Term{raw: s, folded: fold(s)}
}

// IsEmpty reports whether the term has no content.
func (t Term) IsEmpty() bool { return t.raw == "" }

// String returns the trimmed term as entered.
func (t Term) String() string { return t.raw }

// Classify returns the strongest tier at which the term occurs in text.
func (t Term) Classify(text string) Kind {
	if t.folded == "" || text == "" {
		return None
	}
	hay := fold(text)
	best := None
	for off := 0; off < len(hay); {
		i := strings.Index(hay[off:], t.folded)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(t.folded)
		if wordStart(hay, start) {
			if wordEnd(hay, end) {
				return Exact
			}
			best = Prefix
		} else if best < Substring {
			best = Substring
		}
		_, size := utf8.DecodeRuneInString(hay[start:])
		off = start + size
	}
	return best
}

// Equals reports whether s equals the term as a whole string, ignoring case.
func (t Term) Equals(s string) bool {
	return t.folded != "" && fold(strings.TrimSpace(s)) == t.folded
}

// In reports whether the term occurs anywhere in s, ignoring case.
func (t Term) In(s string) bool {
	return t.folded != "" && strings.Contains(fold(s), t.folded)
}

// Tokens splits s into runs of word runes.
func Tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !IsWordRune(r) })
}

// IsWordRune reports whether r belongs to a word: letters, digits, combining
// marks and underscore, in any script.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func wordStart(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !IsWordRune(r)
}

func wordEnd(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !IsWordRune(r)
}

// fold applies Unicode case folding. A Caser is stateful, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
