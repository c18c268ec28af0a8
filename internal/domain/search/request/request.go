package request

import (
	"unicode/utf8"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/mode"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/result"
)

// MaxTermLength is the longest free-text term kept, in bytes. Longer terms are truncated.
const MaxTermLength = 512

// Request is a normalized search request. Construction never fails:
// malformed values are clamped or defaulted.
type Request struct {
	term    match.Term
	filters query.Filters
	mode    mode.Mode
	lang    article.Language
	paging  result.Paging
}

// New normalizes raw search parameters.
func New(
	term string,
	filters query.Filters,
	rawMode, rawLang string,
	page, pageSize, maxPageSize int,
) Request {
	return Request{
		term:    match.NewTerm(truncate(term, MaxTermLength)),
		filters: filters.Normalize(),
		mode:    mode.Parse(rawMode),
		lang:    article.ParseLanguage(rawLang),
		paging:  result.NewPaging(page, pageSize, maxPageSize),
	}
}

// Term returns the free-text term.
func (r Request) Term() match.Term { return r.term }

// Filters returns the structural filters.
func (r Request) Filters() query.Filters { return r.filters }

// Mode returns the strictness mode.
func (r Request) Mode() mode.Mode { return r.mode }

// Language returns the requested language.
func (r Request) Language() article.Language { return r.lang }

// Paging returns the page window.
func (r Request) Paging() result.Paging { return r.paging }

// Ranked reports whether the request needs relevance scoring.
func (r Request) Ranked() bool { return !r.term.IsEmpty() }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
