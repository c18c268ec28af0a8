package redis

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
)

// PresentField is the TAG hash field listing which content fields carry content.
// Writers compute it with article.Text.Present so the store never sees the
// absence sentinels.
const PresentField = "present"

// buildQuery translates a predicate into an FT.SEARCH (DIALECT 2) query string.
func buildQuery(p predicate.Predicate) string {
	if q := compile(p); q != "" {
		return q
	}
	return "*"
}

func compile(p predicate.Predicate) string {
	switch p.Op() {
	case predicate.OpAll:
		return "*"
	case predicate.OpAnd:
		return group(p.Children(), " ")
	case predicate.OpOr:
		return group(p.Children(), " | ")
	case predicate.OpPresent:
		return buildTagFilter(PresentField, string(p.Field()))
	case predicate.OpLanguage, predicate.OpEquals:
		return buildTagFilter(string(p.Field()), p.Value())
	case predicate.OpContains:
		return fmt.Sprintf("@%s:{*%s*}", p.Field(), tagEscaper.Replace(p.Value()))
	case predicate.OpMatches:
		return buildTextMatch(string(p.Field()), p.Value(), p.Kind())
	}
	return ""
}

func group(children []predicate.Predicate, sep string) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		if q := compile(c); q != "" {
			parts = append(parts, q)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func buildTagFilter(key, value string) string {
	return fmt.Sprintf("@%s:{%s}", key, tagEscaper.Replace(value))
}

// buildTextMatch maps a match tier onto TEXT query syntax. The term is split
// into word tokens; each token is escaped, so term content is never parsed as
// query syntax. Multi-word terms become a phrase (exact), a token sequence with
// a trailing prefix (prefix), or infix tokens (substring). Only single-word
// terms compile exactly; for the rest the clause is a superset of the literal
// match and callers recheck hits with predicate.Eval. A term without word
// runes narrows nothing beyond the field being present.
func buildTextMatch(field, term string, kind match.Kind) string {
	tokens := match.Tokens(term)
	if len(tokens) == 0 {
		return buildTagFilter(PresentField, field)
	}
	for i, t := range tokens {
		tokens[i] = escapeQuery(t)
	}

	var body string
	switch kind {
	case match.Exact:
		body = tokens[0]
		if len(tokens) > 1 {
			body = `"` + strings.Join(tokens, " ") + `"`
		}
	case match.Prefix:
		tokens[len(tokens)-1] += "*"
		body = strings.Join(tokens, " ")
	default:
		for i, t := range tokens {
			tokens[i] = "*" + t + "*"
		}
		body = strings.Join(tokens, " ")
	}
	return fmt.Sprintf("@%s:(%s)", field, body)
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	"?", "\\?",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
	`.`, `\.`,
	`,`, `\,`,
)
