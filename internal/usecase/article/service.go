package article

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/duodex/internal/domain"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/result"
)

// ListRequest selects one page of available articles.
type ListRequest struct {
	Filters  query.Filters
	Language domart.Language
	Sort     query.Sort
	Paging   result.Paging
}

// Service serves single-article lookups and availability-filtered listings.
type Service struct {
	repo Repository
}

// New creates an article service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns an article by ID projected into lang. Lookups by ID are not
// availability-filtered.
func (s *Service) Get(ctx context.Context, id string, lang domart.Language) (domart.Projected, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return domart.Projected{}, fmt.Errorf("get article %s: %w", id, err)
	}
	return domart.Project(a, lang), nil
}

// BySlug resolves a slug, preferring an exact match over a case-insensitive one.
func (s *Service) BySlug(ctx context.Context, slug string, lang domart.Language) (domart.Projected, error) {
	matches, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return domart.Projected{}, fmt.Errorf("find slug %q: %w", slug, err)
	}
	if len(matches) == 0 {
		return domart.Projected{}, domain.ErrArticleNotFound
	}
	chosen := matches[0]
	for _, a := range matches {
		if a.Slug == slug {
			chosen = a
			break
		}
	}
	return domart.Project(chosen, lang), nil
}

// List returns one page of articles matching the filters that are available in the requested language.
func (s *Service) List(ctx context.Context, req ListRequest) (result.Page, error) {
	pred := predicate.And(req.Filters.Normalize().Predicate(), query.Availability(req.Language))

	var items []*domart.Article
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, pred, req.Sort, req.Paging.Offset(), req.Paging.Size())
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, pred)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return result.Page{}, err
	}

	results := make([]result.Result, 0, len(items))
	for _, a := range items {
		results = append(results, result.New(domart.Project(a, req.Language)))
	}
	return result.Page{Results: results, Pagination: result.Paginate(req.Paging, total)}, nil
}
