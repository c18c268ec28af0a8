// Package score ranks candidate articles against a free-text term.
package score

import (
	"cmp"
	"slices"
	"time"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/mode"
)

// Boosts applied regardless of mode.
const (
	FeaturedBoost = 2.0
	TrendingBoost = 1.0
)

// FallbackMatch labels a ranked hit whose score came only from boosts or the store.
const FallbackMatch = "fallback_match"

// Tiers holds the weights of one text field, indexed by match.Kind.
type Tiers [4]float64

func tiers(exact, prefix, substring float64) Tiers {
	return Tiers{match.None: 0, match.Substring: substring, match.Prefix: prefix, match.Exact: exact}
}

// Weights is the scoring table of one mode.
type Weights struct {
	Title, Summary, Content Tiers
	Tag                     float64
	CategoryExact           float64
	CategoryContains        float64
}

// DefaultWeights scores every tier of title, summary and content plus tags and category.
var DefaultWeights = Weights{
	Title:            tiers(10, 8, 6),
	Summary:          tiers(6, 4, 3),
	Content:          tiers(3, 2, 1),
	Tag:              2,
	CategoryExact:    1,
	CategoryContains: 0.5,
}

// StrictWeights scores whole-word title and summary matches only.
var StrictWeights = Weights{
	Title:   tiers(10, 0, 0),
	Summary: tiers(8, 0, 0),
}

// WeightsFor returns the table of mode m.
func WeightsFor(m mode.Mode) Weights {
	if m == mode.Strict {
		return StrictWeights
	}
	return DefaultWeights
}

// Score returns the tiered score of a plus its boosts.
func Score(a *article.Article, term match.Term, m mode.Mode, lang article.Language) float64 {
	s, _ := Explain(a, term, m, lang)
	return s
}

// Explain returns the tiered score plus boosts, and the labels of the
// matched tiers (title_exact, summary_starts, tags, ...). Only the strongest
// tier of each field counts.
func Explain(a *article.Article, term match.Term, m mode.Mode, lang article.Language) (float64, []string) {
	var (
		total   float64
		matches []string
	)
	if !term.IsEmpty() {
		w := WeightsFor(m)
		fields := article.ContentFields(lang)
		for i, weights := range [3]Tiers{w.Title, w.Summary, w.Content} {
			text := a.Text(fields[i])
			if !text.Present() {
				continue
			}
			kind := term.Classify(text.String())
			if kind == match.None || weights[kind] == 0 {
				continue
			}
			total += weights[kind]
			matches = append(matches, string(fields[i].Base())+"_"+kind.String())
		}

		if w.Tag > 0 && slices.ContainsFunc(a.Tags, func(tag string) bool {
			return term.Equals(tag) || term.In(tag)
		}) {
			total += w.Tag
			matches = append(matches, "tags")
		}

		switch {
		case w.CategoryExact > 0 && term.Equals(a.Category):
			total += w.CategoryExact
			matches = append(matches, "category_exact")
		case w.CategoryContains > 0 && term.In(a.Category):
			total += w.CategoryContains
			matches = append(matches, "category_contains")
		}
	}
	return total + Boost(a), matches
}

// Boost returns the featured and trending boosts of a.
func Boost(a *article.Article) float64 {
	var b float64
	if a.IsFeatured {
		b += FeaturedBoost
	}
	if a.IsTrending {
		b += TrendingBoost
	}
	return b
}

// Recency returns the non-positive decay term -perDay*ageDays.
// Records dated in the future get no bonus.
func Recency(createdAt, now time.Time, perDay float64) float64 {
	if perDay <= 0 || createdAt.IsZero() {
		return 0
	}
	age := now.Sub(createdAt).Hours() / 24
	if age <= 0 {
		return 0
	}
	return -perDay * age
}

// Candidate is a record returned by the store, with its native relevance if any.
type Candidate struct {
	Article *article.Article
	Native  float64
}

// Scored is a ranked candidate.
type Scored struct {
	Article *article.Article
	Score   float64
	Matches []string
}

// Ranker turns candidates into an ordered ranking.
type Ranker struct {
	// DecayPerDay is the recency decay; 0 disables it.
	DecayPerDay float64
	Now         func() time.Time
}

// Rank scores every candidate and sorts the result.
// Native relevance is added as a non-negative baseline.
func (r Ranker) Rank(cands []Candidate, term match.Term, m mode.Mode, lang article.Language) []Scored {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	out := make([]Scored, len(cands))
	for i, c := range cands {
		s, matches := Explain(c.Article, term, m, lang)
		s += max(c.Native, 0)
		s += Recency(c.Article.CreatedAt, now, r.DecayPerDay)
		if len(matches) == 0 {
			matches = []string{FallbackMatch}
		}
		out[i] = Scored{Article: c.Article, Score: s, Matches: matches}
	}
	Sort(out)
	return out
}

// Sort orders by score descending, then createdAt descending. Ties keep their input order.
func Sort(items []Scored) {
	slices.SortStableFunc(items, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return b.Article.CreatedAt.Compare(a.Article.CreatedAt)
	})
}

// SortByRecency orders records by createdAt descending, keeping ties in input order.
func SortByRecency(items []*article.Article) {
	slices.SortStableFunc(items, func(a, b *article.Article) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
