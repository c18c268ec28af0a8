package article

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/kailas-cloud/duodex/internal/db"
	"github.com/kailas-cloud/duodex/internal/domain"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
)

// --- Upsert ---

func TestUpsert_WritesHash(t *testing.T) {
	repo, ms := newTestRepo(t)
	a := testArticle(t, "a1")

	var gotKey string
	var got map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey, got = key, fields
		return nil
	}

	if err := repo.Upsert(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "duodex:article:a1" {
		t.Errorf("key = %q", gotKey)
	}

	want := map[string]string{
		"title":       "Cricket final tonight",
		"content":     "",
		"present":     "title,summary,titleAlt,summaryAlt,contentAlt",
		"language":    "ur",
		"category":    "Sports",
		"type":        "news",
		"tags":        "cricket,final,cricket",
		"author":      "Admin",
		"is_featured": "1",
		"is_trending": "0",
		"created_at":  strconv.FormatInt(baseTime.UnixMilli(), 10),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestUpsert_Invalid(t *testing.T) {
	repo, ms := newTestRepo(t)
	a := testArticle(t, "a1")
	a.Category = ""

	ms.hsetFn = func(context.Context, string, map[string]string) error {
		t.Fatal("HSET must not be called for an invalid article")
		return nil
	}

	err := repo.Upsert(context.Background(), a)
	if !errors.Is(err, domain.ErrInvalidArticle) {
		t.Fatalf("expected ErrInvalidArticle, got %v", err)
	}
}

func TestUpsertMany_ValidatesBeforeWriting(t *testing.T) {
	repo, ms := newTestRepo(t)
	bad := testArticle(t, "")

	called := false
	ms.hsetMultiFn = func(context.Context, []db.HashSetItem) error {
		called = true
		return nil
	}

	err := repo.UpsertMany(context.Background(), []*domart.Article{testArticle(t, "a1"), bad})
	if !errors.Is(err, domain.ErrInvalidArticle) {
		t.Fatalf("expected ErrInvalidArticle, got %v", err)
	}
	if called {
		t.Error("HSetMulti must not run when any article is invalid")
	}
}

func TestUpsertMany_Pipelines(t *testing.T) {
	repo, ms := newTestRepo(t)

	var keys []string
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		for _, it := range items {
			keys = append(keys, it.Key)
		}
		return nil
	}

	err := repo.UpsertMany(context.Background(), []*domart.Article{testArticle(t, "a1"), testArticle(t, "a2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(keys, []string{"duodex:article:a1", "duodex:article:a2"}) {
		t.Errorf("keys = %v", keys)
	}
}

// --- Get ---

func TestGet_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)
	src := testArticle(t, "a1")

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "duodex:article:a1" {
			t.Errorf("unexpected key: %s", key)
		}
		return buildHashFields(src), nil
	}

	a, err := repo.Get(context.Background(), "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "a1" || a.Title.String() != "Cricket final tonight" {
		t.Errorf("unexpected article: %+v", a)
	}
	if a.Content.Present() {
		t.Error("content stored as \"none\" must stay absent")
	}
	if !slices.Equal(a.Tags, []string{"cricket", "final", "cricket"}) {
		t.Errorf("tags = %v, duplicates must be kept", a.Tags)
	}
	if !a.CreatedAt.Equal(baseTime) || !a.IsFeatured || a.IsTrending {
		t.Errorf("metadata lost: %+v", a)
	}
	if a.Image.PublicID != "img-1" {
		t.Errorf("image = %+v", a.Image)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Error("ErrArticleNotFound must wrap ErrNotFound")
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(context.Context, string) (map[string]string, error) {
		return nil, &db.Error{Op: db.OpHGetAll, Err: errors.New("connection reset")}
	}

	_, err := repo.Get(context.Background(), "a1")
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected wrapped db.Error, got %v", err)
	}
}

// --- Find / Count / TextSearch ---

func TestFind_BuildsListQuery(t *testing.T) {
	repo, ms := newTestRepo(t)
	pred := predicate.Present(domart.FieldTitle)

	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.IndexName != "duodex:articles:idx" {
			t.Errorf("index = %q", q.IndexName)
		}
		if q.SortBy == nil || q.SortBy.Field != "created_at" || !q.SortBy.Desc {
			t.Errorf("sort = %+v", q.SortBy)
		}
		if q.Offset != 20 || q.Limit != 10 {
			t.Errorf("window = %d/%d", q.Offset, q.Limit)
		}
		if q.Filter.String() != pred.String() {
			t.Errorf("filter = %s", q.Filter)
		}
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{
			{Key: "duodex:article:a7", Fields: map[string]string{"title": "Hello", "category": "tech"}},
		}}, nil
	}

	got, err := repo.Find(context.Background(), pred, query.NewestFirst, 20, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a7" || got[0].Title.String() != "Hello" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestFind_OldestFirst(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.SortBy.Desc {
			t.Error("expected ascending sort")
		}
		return &db.SearchResult{}, nil
	}
	if _, err := repo.Find(context.Background(), predicate.All(), query.OldestFirst, 0, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFind_ZeroLimitSkipsStore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(context.Context, *db.ListQuery) (*db.SearchResult, error) {
		t.Fatal("store must not be queried")
		return nil, nil
	}
	got, err := repo.Find(context.Background(), predicate.All(), query.NewestFirst, 0, 0)
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchCountFn = func(_ context.Context, index string, filter predicate.Predicate) (int, error) {
		if index != "duodex:articles:idx" {
			t.Errorf("index = %q", index)
		}
		if filter.Op() != predicate.OpLanguage {
			t.Errorf("filter = %s", filter)
		}
		return 25, nil
	}

	n, err := repo.Count(context.Background(), predicate.LanguageIs(domart.Secondary))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 25 {
		t.Errorf("count = %d, want 25", n)
	}
}

func TestTextSearch_AttachesNativeScore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		if q.TopK != 100 {
			t.Errorf("topK = %d", q.TopK)
		}
		return &db.SearchResult{Total: 2, Entries: []db.SearchEntry{
			{Key: "duodex:article:a1", Score: 3.5, Fields: map[string]string{"title": "x"}},
			{Key: "duodex:article:a2", Score: 1.25, Fields: map[string]string{"title": "y"}},
		}}, nil
	}

	got, err := repo.TextSearch(context.Background(), predicate.All(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Native != 3.5 || got[1].Article.ID != "a2" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}

func TestFindBySlug(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		if q.Filter.Op() != predicate.OpEquals || q.Filter.Field() != domart.FieldSlug {
			t.Errorf("filter = %s", q.Filter)
		}
		return &db.SearchResult{}, nil
	}
	if _, err := repo.FindBySlug(context.Background(), "Cricket-Final"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- All ---

func TestAll_ScansAndSkipsEmpty(t *testing.T) {
	repo, ms := newTestRepo(t)
	src := testArticle(t, "a1")

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "duodex:article:*" {
			t.Errorf("pattern = %q", pattern)
		}
		return []string{"duodex:article:a1", "duodex:article:gone"}, nil
	}
	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key == "duodex:article:a1" {
			return buildHashFields(src), nil
		}
		return map[string]string{}, nil
	}

	got, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

// --- Index lifecycle ---

func TestEnsureIndex_Exists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return true, nil }
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error {
		t.Fatal("create must not be called")
		return nil
	}

	created, err := repo.EnsureIndex(context.Background())
	if err != nil || created {
		t.Fatalf("got created=%v err=%v", created, err)
	}
}

func TestEnsureIndex_Creates(t *testing.T) {
	repo, ms := newTestRepo(t)
	var def *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, d *db.IndexDefinition) error {
		def = d
		return nil
	}

	created, err := repo.EnsureIndex(context.Background())
	if err != nil || !created {
		t.Fatalf("got created=%v err=%v", created, err)
	}
	if def.Name != "duodex:articles:idx" || !slices.Equal(def.Prefixes, []string{"duodex:article:"}) {
		t.Errorf("unexpected definition: %s", def)
	}
}

func TestEnsureIndex_RaceIsNotAnError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error { return db.ErrIndexExists }

	created, err := repo.EnsureIndex(context.Background())
	if err != nil || created {
		t.Fatalf("got created=%v err=%v", created, err)
	}
}

func TestRebuildIndex_MissingIndex(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.dropIndexFn = func(context.Context, string) error { return db.ErrIndexNotFound }
	createCalled := false
	ms.createIndexFn = func(context.Context, *db.IndexDefinition) error {
		createCalled = true
		return nil
	}

	if err := repo.RebuildIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !createCalled {
		t.Error("index must be recreated")
	}
}

func TestRebuildIndex_DropError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.dropIndexFn = func(context.Context, string) error { return errors.New("READONLY") }

	if err := repo.RebuildIndex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestIndexDefinition_Weights(t *testing.T) {
	def := IndexDefinition("news:")
	if def.Name != "news:articles:idx" {
		t.Errorf("name = %q", def.Name)
	}
	if !def.NoStopWords {
		t.Error("stopwords must be disabled")
	}

	weights := map[string]float64{}
	sortable := map[string]bool{}
	for _, f := range def.Fields {
		if f.Type == db.IndexFieldText {
			if !f.NoStem {
				t.Errorf("%s must be unstemmed", f.Name)
			}
			weights[f.Name] = f.Weight
		}
		sortable[f.Name] = f.Sortable
	}
	want := map[string]float64{
		"title": 10, "summary": 6, "content": 3,
		"titleAlt": 10, "summaryAlt": 6, "contentAlt": 3,
	}
	for name, w := range want {
		if weights[name] != w {
			t.Errorf("weight %s = %v, want %v", name, weights[name], w)
		}
	}
	if !sortable["created_at"] {
		t.Error("created_at must be sortable")
	}
}
