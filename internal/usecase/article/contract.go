package article

import (
	"context"

	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
)

// Repository defines the read contract for article lookups and listings.
type Repository interface {
	Get(ctx context.Context, id string) (*domart.Article, error)
	FindBySlug(ctx context.Context, slug string) ([]*domart.Article, error)
	Find(
		ctx context.Context, pred predicate.Predicate,
		sort query.Sort, offset, limit int,
	) ([]*domart.Article, error)
	Count(ctx context.Context, pred predicate.Predicate) (int, error)
}
