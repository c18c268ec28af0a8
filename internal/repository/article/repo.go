package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/duodex/internal/db"
	"github.com/kailas-cloud/duodex/internal/domain"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
)

// DefaultPrefix namespaces every key and index the repository owns.
const DefaultPrefix = "duodex:"

// maxSlugMatches bounds the case-insensitive slug lookup.
const maxSlugMatches = 10

// scanBatch is the page size used while rechecking approximated queries in process.
const scanBatch = 500

// store is the consumer interface for articles (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filter predicate.Predicate) (int, error)
}

// Repo stores articles as hashes behind an FT index.
type Repo struct {
	store  store
	prefix string
}

// New creates an article repository. An empty prefix selects DefaultPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// IndexName returns the FT index the repository queries.
func (r *Repo) IndexName() string { return indexName(r.prefix) }

// EnsureIndex creates the index when missing. Returns true if it was created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.IndexName(), err)
	}
	if exists {
		return false, nil
	}
	if err := r.store.CreateIndex(ctx, IndexDefinition(r.prefix)); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", r.IndexName(), err)
	}
	return true, nil
}

// RebuildIndex drops and recreates the index. Hashes are kept and re-indexed.
func (r *Repo) RebuildIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.IndexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.IndexName(), err)
	}
	if err := r.store.CreateIndex(ctx, IndexDefinition(r.prefix)); err != nil {
		return fmt.Errorf("create index %s: %w", r.IndexName(), err)
	}
	return nil
}

// IndexReady reports whether the FT index exists.
func (r *Repo) IndexReady(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.IndexName(), err)
	}
	return ok, nil
}

// SupportsTextSearch proxies the capability check from the store.
func (r *Repo) SupportsTextSearch(ctx context.Context) bool {
	return r.store.SupportsTextSearch(ctx)
}

// Find returns one window of the records satisfying pred, ordered by createdAt.
// Hits the index over-approximates are dropped before windowing, so offsets
// count matching records only.
func (r *Repo) Find(
	ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int,
) ([]*domart.Article, error) {
	if limit <= 0 {
		return nil, nil
	}
	if !pred.SingleWordTerms() {
		matched, err := r.scan(ctx, pred, sort, offset+limit)
		if err != nil {
			return nil, err
		}
		return window(matched, offset, limit), nil
	}

	res, err := r.store.SearchList(ctx, r.listQuery(pred, sort, offset, limit))
	if err != nil {
		return nil, fmt.Errorf("search list: %w", err)
	}
	return r.matching(pred, res), nil
}

// Count returns the number of records satisfying pred.
func (r *Repo) Count(ctx context.Context, pred predicate.Predicate) (int, error) {
	if !pred.SingleWordTerms() {
		matched, err := r.scan(ctx, pred, query.NewestFirst, -1)
		if err != nil {
			return 0, err
		}
		return len(matched), nil
	}

	n, err := r.store.SearchCount(ctx, r.IndexName(), pred)
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// TextSearch returns up to limit records satisfying pred with the store's
// relevance score attached, best first. When the index can only approximate
// pred it pages further until limit records pass Eval or the hits run out.
func (r *Repo) TextSearch(ctx context.Context, pred predicate.Predicate, limit int) ([]score.Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}
	exact := pred.SingleWordTerms()
	batch := limit
	if !exact {
		batch = max(limit, scanBatch)
	}

	var out []score.Candidate
	for offset := 0; ; offset += batch {
		res, err := r.store.SearchText(ctx, &db.TextQuery{
			IndexName: r.IndexName(),
			Filter:    pred,
			Offset:    offset,
			TopK:      batch,
		})
		if err != nil {
			return nil, fmt.Errorf("search text: %w", err)
		}
		if res == nil {
			return out, nil
		}
		for _, e := range res.Entries {
			a := parseHashFields(r.idFromKey(e.Key), e.Fields)
			if !pred.Eval(a) {
				continue
			}
			out = append(out, score.Candidate{Article: a, Native: e.Score})
			if len(out) == limit {
				return out, nil
			}
		}
		if exact || len(res.Entries) < batch {
			return out, nil
		}
	}
}

// Get returns an article by ID.
func (r *Repo) Get(ctx context.Context, id string) (*domart.Article, error) {
	key := articleKey(r.prefix, id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return parseHashFields(id, m), nil
}

// FindBySlug returns the records whose slug equals slug ignoring case.
func (r *Repo) FindBySlug(ctx context.Context, slug string) ([]*domart.Article, error) {
	return r.Find(ctx, predicate.Equals(domart.FieldSlug, slug), query.NewestFirst, 0, maxSlugMatches)
}

// All loads every stored article by scanning the key space.
func (r *Repo) All(ctx context.Context) ([]*domart.Article, error) {
	keys, err := r.store.Scan(ctx, keyPrefix(r.prefix)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan articles: %w", err)
	}
	out := make([]*domart.Article, 0, len(keys))
	for _, key := range keys {
		m, err := r.store.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", key, err)
		}
		if len(m) == 0 {
			continue
		}
		out = append(out, parseHashFields(r.idFromKey(key), m))
	}
	return out, nil
}

// Upsert stores an article, replacing any previous version.
func (r *Repo) Upsert(ctx context.Context, a *domart.Article) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArticle, err)
	}
	key := articleKey(r.prefix, a.ID)
	if err := r.store.HSet(ctx, key, buildHashFields(a)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// UpsertMany stores articles in a single pipelined round-trip.
func (r *Repo) UpsertMany(ctx context.Context, articles []*domart.Article) error {
	items := make([]db.HashSetItem, 0, len(articles))
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("article %q: %w: %w", a.ID, domain.ErrInvalidArticle, err)
		}
		items = append(items, db.HashSetItem{
			Key:    articleKey(r.prefix, a.ID),
			Fields: buildHashFields(a),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi: %w", err)
	}
	return nil
}

// scan pages through the index hits for pred in sort order and keeps the
// records pred accepts. It stops once want records are collected; a negative
// want collects all of them.
func (r *Repo) scan(
	ctx context.Context, pred predicate.Predicate, sort query.Sort, want int,
) ([]*domart.Article, error) {
	var out []*domart.Article
	for offset := 0; ; offset += scanBatch {
		res, err := r.store.SearchList(ctx, r.listQuery(pred, sort, offset, scanBatch))
		if err != nil {
			return nil, fmt.Errorf("search list: %w", err)
		}
		out = append(out, r.matching(pred, res)...)
		if want >= 0 && len(out) >= want {
			return out, nil
		}
		if res == nil || len(res.Entries) < scanBatch {
			return out, nil
		}
	}
}

func (r *Repo) listQuery(pred predicate.Predicate, sort query.Sort, offset, limit int) *db.ListQuery {
	return &db.ListQuery{
		IndexName: r.IndexName(),
		Filter:    pred,
		SortBy:    &db.SortBy{Field: fieldCreatedAt, Desc: sort.Descending()},
		Offset:    offset,
		Limit:     limit,
	}
}

// matching converts hits to articles, dropping those pred rejects.
func (r *Repo) matching(pred predicate.Predicate, res *db.SearchResult) []*domart.Article {
	if res == nil {
		return nil
	}
	out := make([]*domart.Article, 0, len(res.Entries))
	for _, e := range res.Entries {
		a := parseHashFields(r.idFromKey(e.Key), e.Fields)
		if pred.Eval(a) {
			out = append(out, a)
		}
	}
	return out
}

func window(items []*domart.Article, offset, limit int) []*domart.Article {
	if offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}

func (r *Repo) idFromKey(key string) string {
	return strings.TrimPrefix(key, keyPrefix(r.prefix))
}
