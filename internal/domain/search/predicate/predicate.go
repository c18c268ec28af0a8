// Package predicate is a store-neutral boolean expression over article fields.
// Store adapters compile it into their native query language; Eval runs it in process.
package predicate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
)

// Op is the node kind.
type Op int

// Node kinds.
const (
	// OpAll matches every record.
	OpAll Op = iota
	OpAnd
	OpOr
	// OpPresent holds when a content field is present.
	OpPresent
	// OpLanguage holds when the declared language tag equals the value.
	OpLanguage
	// OpEquals is anchored case-insensitive equality. On tags it holds if any tag is equal.
	OpEquals
	// OpContains is case-insensitive substring. On tags it holds if any tag contains the value.
	OpContains
	// OpMatches holds when a text field matches the term at the given tier or stronger.
	OpMatches
)

// Predicate is an immutable expression tree node.
type Predicate struct {
	op       Op
	field    article.Field
	value    string
	kind     match.Kind
	children []Predicate
}

// All returns the predicate that matches everything.
func All() Predicate { return Predicate{op: OpAll} }

// And returns the conjunction of ps. Nested conjunctions are flattened and
// All operands dropped; an empty conjunction is All.
func And(ps ...Predicate) Predicate {
	return combine(OpAnd, ps)
}

// Or returns the disjunction of ps. A single operand is returned unchanged.
func Or(ps ...Predicate) Predicate {
	return combine(OpOr, ps)
}

func combine(op Op, ps []Predicate) Predicate {
	children := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		switch {
		case p.op == op:
			children = append(children, p.children...)
		case p.op == OpAll && op == OpAnd:
			continue
		case p.op == OpAll && op == OpOr:
			return All()
		default:
			children = append(children, p)
		}
	}
	switch len(children) {
	case 0:
		return All()
	case 1:
		return children[0]
	}
	return Predicate{op: op, children: children}
}

// Present holds when content field f is present.
func Present(f article.Field) Predicate {
	return Predicate{op: OpPresent, field: f}
}

// LanguageIs holds when the declared language tag is lang.
func LanguageIs(lang article.Language) Predicate {
	return Predicate{op: OpLanguage, field: article.FieldLanguage, value: string(lang)}
}

// Equals is anchored case-insensitive equality on f.
func Equals(f article.Field, value string) Predicate {
	return Predicate{op: OpEquals, field: f, value: value}
}

// Contains is case-insensitive substring matching on f.
func Contains(f article.Field, value string) Predicate {
	return Predicate{op: OpContains, field: f, value: value}
}

// Matches holds when text field f contains term at tier kind or stronger.
func Matches(f article.Field, term string, kind match.Kind) Predicate {
	return Predicate{op: OpMatches, field: f, value: term, kind: kind}
}

// Op returns the node kind.
func (p Predicate) Op() Op { return p.op }

// Field returns the field a leaf applies to.
func (p Predicate) Field() article.Field { return p.field }

// Value returns the literal a leaf compares against.
func (p Predicate) Value() string { return p.value }

// Kind returns the minimum tier of a Matches leaf.
func (p Predicate) Kind() match.Kind { return p.kind }

// Children returns the operands of And/Or.
func (p Predicate) Children() []Predicate { return p.children }

// SingleWordTerms reports whether every Matches leaf holds exactly one word
// and nothing else. Index-backed stores evaluate such terms token for token;
// any other term can only be approximated there and must be rechecked with Eval.
func (p Predicate) SingleWordTerms() bool {
	switch p.op {
	case OpAnd, OpOr:
		for _, c := range p.children {
			if !c.SingleWordTerms() {
				return false
			}
		}
	case OpMatches:
		tokens := match.Tokens(p.value)
		return len(tokens) == 1 && tokens[0] == p.value
	}
	return true
}

// Eval evaluates p against a record.
func (p Predicate) Eval(a *article.Article) bool {
	switch p.op {
	case OpAll:
		return true
	case OpAnd:
		for _, c := range p.children {
			if !c.Eval(a) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range p.children {
			if c.Eval(a) {
				return true
			}
		}
		return false
	case OpPresent:
		return a.Text(p.field).Present()
	case OpLanguage:
		return string(a.Language) == p.value
	case OpEquals:
		term := match.NewTerm(p.value)
		return anyValue(a, p.field, term.Equals)
	case OpContains:
		term := match.NewTerm(p.value)
		return anyValue(a, p.field, term.In)
	case OpMatches:
		text := a.Text(p.field)
		return text.Present() && match.NewTerm(p.value).Classify(text.String()) >= p.kind
	}
	return false
}

func anyValue(a *article.Article, f article.Field, fn func(string) bool) bool {
	if f == article.FieldTags {
		for _, tag := range a.Tags {
			if fn(tag) {
				return true
			}
		}
		return false
	}
	return fn(a.Value(f))
}

// String renders a debug form, e.g. (and (present title) (eq category "tech")).
func (p Predicate) String() string {
	switch p.op {
	case OpAll:
		return "*"
	case OpAnd, OpOr:
		name := "and"
		if p.op == OpOr {
			name = "or"
		}
		parts := make([]string, len(p.children))
		for i, c := range p.children {
			parts[i] = c.String()
		}
		return "(" + name + " " + strings.Join(parts, " ") + ")"
	case OpPresent:
		return fmt.Sprintf("(present %s)", p.field)
	case OpLanguage:
		return fmt.Sprintf("(lang %s)", p.value)
	case OpEquals:
		return fmt.Sprintf("(eq %s %q)", p.field, p.value)
	case OpContains:
		return fmt.Sprintf("(contains %s %q)", p.field, p.value)
	case OpMatches:
		return fmt.Sprintf("(match %s %q %s)", p.field, p.value, p.kind)
	}
	return "?"
}
