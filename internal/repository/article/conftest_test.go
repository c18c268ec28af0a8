package article

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/duodex/internal/db"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn    func(ctx context.Context, name string) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
	supportsTextFn func(ctx context.Context) bool
	searchTextFn   func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	searchListFn   func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn  func(ctx context.Context, index string, filter predicate.Predicate) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) SupportsTextSearch(ctx context.Context) bool {
	if m.supportsTextFn != nil {
		return m.supportsTextFn(ctx)
	}
	return true
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index string, filter predicate.Predicate) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, filter)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, ""), ms
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testArticle(t *testing.T, id string) *domart.Article {
	t.Helper()
	a := &domart.Article{
		ID:         id,
		Title:      domart.NewText("Cricket final tonight"),
		Summary:    domart.NewText("Teams meet in Lahore"),
		Content:    domart.NewText("none"),
		TitleAlt:   domart.NewText("کرکٹ فائنل آج رات"),
		SummaryAlt: domart.NewText("ٹیمیں لاہور میں"),
		ContentAlt: domart.NewText("مکمل خبر"),
		Language:   domart.Secondary,
		Category:   "Sports",
		Region:     "South Asia",
		Country:    "Pakistan",
		Tags:       []string{"cricket", "final", "cricket"},
		Slug:       "cricket-final",
		Image:      domart.Image{URL: "https://img.example/1.jpg", PublicID: "img-1"},
		IsFeatured: true,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime.Add(time.Hour),
	}
	a.ApplyDefaults()
	return a
}
