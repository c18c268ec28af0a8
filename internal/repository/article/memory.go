package article

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/kailas-cloud/duodex/internal/domain"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/match"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
)

// Memory is an in-process article store for local runs and tests.
// Predicates are evaluated with predicate.Eval, so it has no native
// relevance signal.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]*domart.Article
	order []string // insertion order keeps ties deterministic
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*domart.Article)}
}

// EnsureIndex is a no-op; the memory store has no index.
func (m *Memory) EnsureIndex(context.Context) (bool, error) { return false, nil }

// RebuildIndex is a no-op.
func (m *Memory) RebuildIndex(context.Context) error { return nil }

// IndexReady always reports true.
func (m *Memory) IndexReady(context.Context) (bool, error) { return true, nil }

// SupportsTextSearch returns false: ranking relies on the in-process scorer.
func (m *Memory) SupportsTextSearch(context.Context) bool { return false }

// TextSearch is not supported.
func (m *Memory) TextSearch(context.Context, predicate.Predicate, int) ([]score.Candidate, error) {
	return nil, domain.ErrTextSearchNotSupported
}

// Find filters with pred, orders by createdAt and returns one window.
func (m *Memory) Find(
	ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int,
) ([]*domart.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := m.filter(pred)
	if sort.Descending() {
		score.SortByRecency(matched)
	} else {
		slices.SortStableFunc(matched, func(a, b *domart.Article) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	}
	offset = max(offset, 0)
	if limit <= 0 || offset >= len(matched) {
		return []*domart.Article{}, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], nil
}

// Count returns the number of records satisfying pred.
func (m *Memory) Count(ctx context.Context, pred predicate.Predicate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(m.filter(pred)), nil
}

// Get returns an article by ID.
func (m *Memory) Get(_ context.Context, id string) (*domart.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return clone(a), nil
}

// FindBySlug returns the records whose slug equals slug ignoring case.
func (m *Memory) FindBySlug(ctx context.Context, slug string) ([]*domart.Article, error) {
	if match.NewTerm(slug).IsEmpty() {
		return nil, nil
	}
	return m.Find(ctx, predicate.Equals(domart.FieldSlug, slug), query.NewestFirst, 0, maxSlugMatches)
}

// All returns every stored article in insertion order.
func (m *Memory) All(context.Context) ([]*domart.Article, error) {
	return m.filter(predicate.All()), nil
}

// Upsert stores an article, replacing any previous version.
func (m *Memory) Upsert(_ context.Context, a *domart.Article) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArticle, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(a)
	return nil
}

// UpsertMany stores articles atomically: either all are valid and stored, or none.
func (m *Memory) UpsertMany(_ context.Context, articles []*domart.Article) error {
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("article %q: %w: %w", a.ID, domain.ErrInvalidArticle, err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range articles {
		m.put(a)
	}
	return nil
}

func (m *Memory) put(a *domart.Article) {
	if _, ok := m.byID[a.ID]; !ok {
		m.order = append(m.order, a.ID)
	}
	m.byID[a.ID] = clone(a)
}

func (m *Memory) filter(pred predicate.Predicate) []*domart.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domart.Article, 0, len(m.order))
	for _, id := range m.order {
		a := m.byID[id]
		if pred.Eval(a) {
			out = append(out, clone(a))
		}
	}
	return out
}

func clone(a *domart.Article) *domart.Article {
	c := *a
	c.Tags = slices.Clone(a.Tags)
	return &c
}
