package maintenance

import (
	"context"

	"github.com/kailas-cloud/duodex/internal/domain/article"
)

// Repository defines the write and index contract used by maintenance tasks.
type Repository interface {
	EnsureIndex(ctx context.Context) (bool, error)
	RebuildIndex(ctx context.Context) error
	All(ctx context.Context) ([]*article.Article, error)
	Upsert(ctx context.Context, a *article.Article) error
	UpsertMany(ctx context.Context, articles []*article.Article) error
}
