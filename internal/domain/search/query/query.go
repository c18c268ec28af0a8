package query

import (
	"strings"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/mode"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
)

// Filters are the optional structural filters of a search or listing.
type Filters struct {
	Category string
	Type     string
	Region   string
	Country  string
}

// Normalize trims every filter value.
func (f Filters) Normalize() Filters {
	return Filters{
		Category: strings.TrimSpace(f.Category),
		Type:     strings.TrimSpace(f.Type),
		Region:   strings.TrimSpace(f.Region),
		Country:  strings.TrimSpace(f.Country),
	}
}

// Predicate returns the conjunction of the non-empty filters.
// Category and type use anchored equality; region and country use substring.
func (f Filters) Predicate() predicate.Predicate {
	var parts []predicate.Predicate
	if f.Category != "" {
		parts = append(parts, predicate.Equals(article.FieldCategory, f.Category))
	}
	if f.Type != "" {
		parts = append(parts, predicate.Equals(article.FieldType, f.Type))
	}
	if f.Region != "" {
		parts = append(parts, predicate.Contains(article.FieldRegion, f.Region))
	}
	if f.Country != "" {
		parts = append(parts, predicate.Contains(article.FieldCountry, f.Country))
	}
	return predicate.And(parts...)
}

// Availability expresses article.IsAvailable as a predicate.
func Availability(lang article.Language) predicate.Predicate {
	fields := article.ContentFields(lang)
	if lang == article.Secondary {
		return predicate.And(
			predicate.LanguageIs(article.Secondary),
			predicate.Present(fields[0]),
			predicate.Present(fields[1]),
			predicate.Present(fields[2]),
		)
	}
	return predicate.Or(
		predicate.Present(fields[0]),
		predicate.Present(fields[1]),
		predicate.Present(fields[2]),
	)
}

// Text returns the free-text disjunction for term, or All when term is empty.
func Text(term match.Term, m mode.Mode, lang article.Language) predicate.Predicate {
	if term.IsEmpty() {
		return predicate.All()
	}
	fields := article.ContentFields(lang)
	t := term.String()

	if m == mode.Strict {
		return predicate.Or(
			predicate.Matches(fields[0], t, match.Exact),
			predicate.Matches(fields[1], t, match.Exact),
		)
	}

	parts := make([]predicate.Predicate, 0, len(fields)*3+4)
	for _, f := range fields {
		parts = append(parts,
			predicate.Matches(f, t, match.Exact),
			predicate.Matches(f, t, match.Prefix),
			predicate.Matches(f, t, match.Substring),
		)
	}
	parts = append(parts,
		predicate.Equals(article.FieldTags, t),
		predicate.Contains(article.FieldTags, t),
		predicate.Equals(article.FieldCategory, t),
		predicate.Contains(article.FieldCategory, t),
	)
	return predicate.Or(parts...)
}

// Compose builds the full store predicate: text AND filters AND availability.
func Compose(term match.Term, filters Filters, m mode.Mode, lang article.Language) predicate.Predicate {
	return predicate.And(
		Text(term, m, lang),
		filters.Normalize().Predicate(),
		Availability(lang),
	)
}
