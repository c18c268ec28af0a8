package redis

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		p    predicate.Predicate
		want string
	}{
		{"all", predicate.All(), "*"},
		{
			"present and equals",
			predicate.And(predicate.Present(article.FieldTitle), predicate.Equals(article.FieldCategory, "Tech News")),
			`(@present:{title} @category:{Tech\ News})`,
		},
		{
			"or of presence",
			predicate.Or(predicate.Present(article.FieldTitle), predicate.Present(article.FieldContent)),
			`(@present:{title} | @present:{content})`,
		},
		{"language", predicate.LanguageIs(article.Secondary), "@language:{ur}"},
		{"contains", predicate.Contains(article.FieldRegion, "asia"), "@region:{*asia*}"},
		{"contains escaped", predicate.Contains(article.FieldRegion, "south-asia"), `@region:{*south\-asia*}`},
		{
			"exact single",
			predicate.Matches(article.FieldTitle, "tech", match.Exact),
			"@title:(tech)",
		},
		{
			"exact phrase",
			predicate.Matches(article.FieldTitle, "new tech", match.Exact),
			`@title:("new tech")`,
		},
		{
			"prefix",
			predicate.Matches(article.FieldTitle, "new tech", match.Prefix),
			"@title:(new tech*)",
		},
		{
			"punctuation dropped from tokens",
			predicate.Matches(article.FieldTitle, "c++", match.Exact),
			"@title:(c)",
		},
		{
			"substring",
			predicate.Matches(article.FieldSummaryAlt, "tech", match.Substring),
			"@summaryAlt:(*tech*)",
		},
		{
			"no word runes",
			predicate.Matches(article.FieldTitle, "++", match.Exact),
			"@present:{title}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildQuery(tc.p); got != tc.want {
				t.Errorf("buildQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildQuery_NestedGroups(t *testing.T) {
	term := "cricket"
	p := predicate.And(
		predicate.Or(
			predicate.Matches(article.FieldTitle, term, match.Exact),
			predicate.Matches(article.FieldSummary, term, match.Prefix),
		),
		predicate.Equals(article.FieldType, "news"),
		predicate.LanguageIs(article.Primary),
	)

	got := buildQuery(p)
	want := "((@title:(cricket) | @summary:(cricket*)) @type:{news} @language:{en})"
	if got != want {
		t.Errorf("buildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQuery_TermIsNeverSyntax(t *testing.T) {
	q := buildQuery(predicate.Matches(article.FieldContent, `a|b @x`, match.Exact))
	if strings.Contains(q, " | ") || strings.Contains(q, "@x") {
		t.Errorf("term leaked into query syntax: %q", q)
	}
}

func TestEscapeQuery(t *testing.T) {
	got := escapeQuery(`hello "world" @user {tag}`)
	want := `hello \"world\" \@user \{tag\}`
	if got != want {
		t.Errorf("escapeQuery() = %q, want %q", got, want)
	}
}

func TestTagEscaper(t *testing.T) {
	got := tagEscaper.Replace("a b,c.d")
	want := `a\ b\,c\.d`
	if got != want {
		t.Errorf("tagEscaper = %q, want %q", got, want)
	}
}
