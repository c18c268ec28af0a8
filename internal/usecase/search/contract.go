package search

import (
	"context"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
)

// Repository defines the content storage contract for search operations.
type Repository interface {
	Find(
		ctx context.Context, pred predicate.Predicate,
		sort query.Sort, offset, limit int,
	) ([]*article.Article, error)

	Count(ctx context.Context, pred predicate.Predicate) (int, error)

	// TextSearch returns candidates with the store's native relevance.
	TextSearch(ctx context.Context, pred predicate.Predicate, limit int) ([]score.Candidate, error)

	SupportsTextSearch(ctx context.Context) bool
}
