package result

import "github.com/kailas-cloud/duodex/internal/domain/article"

// Result is a single projected hit.
type Result struct {
	article article.Projected
	score   float64
	matches []string
	ranked  bool
}

// New creates an unranked result (listing or empty-term search).
func New(a article.Projected) Result {
	return Result{article: a}
}

// NewRanked creates a result carrying its relevance score and matched tiers.
func NewRanked(a article.Projected, score float64, matches []string) Result {
	return Result{article: a, score: score, matches: matches, ranked: true}
}

// Article returns the projected article.
func (r *Result) Article() article.Projected { return r.article }

// Score returns the relevance score; zero when unranked.
func (r *Result) Score() float64 { return r.score }

// Matches returns the matched tier labels.
func (r *Result) Matches() []string { return r.matches }

// Ranked reports whether the hit came from a scored search.
func (r *Result) Ranked() bool { return r.ranked }

// Page is one page of results with its pagination metadata.
type Page struct {
	Results    []Result
	Pagination Pagination
}
