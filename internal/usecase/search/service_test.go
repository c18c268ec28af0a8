package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/duodex/internal/domain"
	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/request"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
	"github.com/kailas-cloud/duodex/internal/metrics"
	repoarticle "github.com/kailas-cloud/duodex/internal/repository/article"
)

// --- Mocks ---

type mockRepo struct {
	findFn       func(ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int) ([]*article.Article, error)
	countFn      func(ctx context.Context, pred predicate.Predicate) (int, error)
	textSearchFn func(ctx context.Context, pred predicate.Predicate, limit int) ([]score.Candidate, error)
	textSearchOK bool
}

func (m *mockRepo) Find(
	ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int,
) ([]*article.Article, error) {
	if m.findFn != nil {
		return m.findFn(ctx, pred, sort, offset, limit)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context, pred predicate.Predicate) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, pred)
	}
	return 0, nil
}

func (m *mockRepo) TextSearch(ctx context.Context, pred predicate.Predicate, limit int) ([]score.Candidate, error) {
	if m.textSearchFn != nil {
		return m.textSearchFn(ctx, pred, limit)
	}
	return nil, domain.ErrTextSearchNotSupported
}

func (m *mockRepo) SupportsTextSearch(context.Context) bool { return m.textSearchOK }

// --- Fixtures ---

var now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newArticle(id string, age time.Duration, mutate func(a *article.Article)) *article.Article {
	a := &article.Article{
		ID:        id,
		Category:  "World",
		Language:  article.Primary,
		CreatedAt: now.Add(-age),
	}
	if mutate != nil {
		mutate(a)
	}
	a.ApplyDefaults()
	return a
}

func seeded(t *testing.T, articles ...*article.Article) *repoarticle.Memory {
	t.Helper()
	m := repoarticle.NewMemory()
	if err := m.UpsertMany(context.Background(), articles); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return m
}

func newRequest(term, lang string, page, size int) *request.Request {
	r := request.New(term, query.Filters{}, "", lang, page, size, 100)
	return &r
}

// --- Tests ---

func TestSearch_FeaturedExactTitle(t *testing.T) {
	repo := seeded(t, newArticle("a1", time.Hour, func(a *article.Article) {
		a.Title = article.NewText("New Tech Breakthrough")
		a.IsFeatured = true
	}))
	svc := New(repo, Config{}).WithClock(func() time.Time { return now })

	page, err := svc.Search(context.Background(), newRequest("tech", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(page.Results))
	}
	r := page.Results[0]
	if r.Score() != 12 {
		t.Errorf("score = %v, want 12", r.Score())
	}
	if !r.Ranked() || len(r.Matches()) != 1 || r.Matches()[0] != "title_exact" {
		t.Errorf("matches = %v", r.Matches())
	}
}

func TestSearch_SecondaryRequiresCompleteness(t *testing.T) {
	repo := seeded(t,
		newArticle("partial", time.Hour, func(a *article.Article) {
			a.Language = article.Secondary
			a.TitleAlt = article.NewText("خبر")
			a.ContentAlt = article.NewText("مواد")
		}),
		newArticle("complete", 2*time.Hour, func(a *article.Article) {
			a.Language = article.Secondary
			a.Title = article.NewText("News")
			a.TitleAlt = article.NewText("خبر")
			a.SummaryAlt = article.NewText("خلاصہ")
			a.ContentAlt = article.NewText("مواد")
		}),
	)
	svc := New(repo, Config{})

	page, err := svc.Search(context.Background(), newRequest("", "ur", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Article().ID != "complete" {
		t.Fatalf("unexpected results: %+v", page.Results)
	}
	if page.Pagination.TotalResults != 1 {
		t.Errorf("totalResults = %d, want 1", page.Pagination.TotalResults)
	}
	if got := page.Results[0].Article().Title.String(); got != "خبر" {
		t.Errorf("title = %q, want the secondary title", got)
	}
}

func TestSearch_PrimaryPartialRecordIncluded(t *testing.T) {
	repo := seeded(t,
		newArticle("summary-only", time.Hour, func(a *article.Article) {
			a.Summary = article.NewText("Only a summary")
			a.Title = article.NewText("none")
		}),
		newArticle("blank-title", 2*time.Hour, func(a *article.Article) {
			a.Title = article.NewText("   ")
		}),
		newArticle("empty", 3*time.Hour, func(a *article.Article) {
			a.Title = article.NewText("")
		}),
	)
	svc := New(repo, Config{})

	page, err := svc.Search(context.Background(), newRequest("", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 2 || page.Pagination.TotalResults != 2 {
		t.Fatalf("unexpected results: %+v", page.Results)
	}
	if page.Results[0].Article().ID != "summary-only" || page.Results[1].Article().ID != "blank-title" {
		t.Errorf("order = %s, %s", page.Results[0].Article().ID, page.Results[1].Article().ID)
	}
	if page.Results[0].Ranked() {
		t.Error("results without a term are not ranked")
	}
}

func TestSearch_PaginationPastEnd(t *testing.T) {
	var items []*article.Article
	for i := range 25 {
		items = append(items, newArticle(string(rune('A'+i)), time.Duration(i)*time.Minute, func(a *article.Article) {
			a.Title = article.NewText("Match")
		}))
	}
	svc := New(seeded(t, items...), Config{})

	page, err := svc.Search(context.Background(), newRequest("", "en", 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := page.Pagination
	if p.Current != 3 || p.Total != 3 || p.HasNext || !p.HasPrev || p.TotalResults != 25 {
		t.Errorf("pagination = %+v", p)
	}
	if len(page.Results) != 5 {
		t.Errorf("len = %d, want 5", len(page.Results))
	}
}

func TestSearch_RankOrderAndTies(t *testing.T) {
	repo := seeded(t,
		newArticle("old-exact", 48*time.Hour, func(a *article.Article) { a.Title = article.NewText("cricket") }),
		newArticle("new-exact", time.Hour, func(a *article.Article) { a.Title = article.NewText("cricket") }),
		newArticle("prefix", 0, func(a *article.Article) { a.Title = article.NewText("cricketers") }),
		newArticle("content", 0, func(a *article.Article) { a.Content = article.NewText("about cricket") }),
	)
	svc := New(repo, Config{})

	page, err := svc.Search(context.Background(), newRequest("cricket", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, r := range page.Results {
		ids = append(ids, r.Article().ID)
	}
	want := []string{"new-exact", "old-exact", "prefix", "content"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestSearch_StrictIgnoresContent(t *testing.T) {
	repo := seeded(t,
		newArticle("content", 0, func(a *article.Article) {
			a.Title = article.NewText("Other")
			a.Content = article.NewText("cricket")
		}),
	)
	svc := New(repo, Config{})
	r := request.New("cricket", query.Filters{}, "strict", "en", 1, 10, 100)

	page, err := svc.Search(context.Background(), &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 0 {
		t.Errorf("strict mode must not match content, got %d", len(page.Results))
	}
}

func TestSearch_FiltersApply(t *testing.T) {
	repo := seeded(t,
		newArticle("sports", 0, func(a *article.Article) {
			a.Title = article.NewText("Match")
			a.Category = "Sports"
			a.Region = "South Asia"
		}),
		newArticle("world", 0, func(a *article.Article) {
			a.Title = article.NewText("Match")
			a.Category = "Sports Weekly"
		}),
	)
	svc := New(repo, Config{})
	r := request.New("", query.Filters{Category: "sports", Region: "asia"}, "", "en", 1, 10, 100)

	page, err := svc.Search(context.Background(), &r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Article().ID != "sports" {
		t.Fatalf("category equality must be anchored, got %+v", page.Results)
	}
}

func TestSearch_NativeRelevanceAdded(t *testing.T) {
	a := newArticle("a1", 0, func(a *article.Article) { a.Title = article.NewText("cricket") })
	repo := &mockRepo{
		textSearchOK: true,
		textSearchFn: func(_ context.Context, _ predicate.Predicate, limit int) ([]score.Candidate, error) {
			if limit != 50 {
				t.Errorf("limit = %d, want 50", limit)
			}
			return []score.Candidate{{Article: a, Native: 1.5}}, nil
		},
		findFn: func(context.Context, predicate.Predicate, query.Sort, int, int) ([]*article.Article, error) {
			t.Error("fallback must not run when native search succeeds")
			return nil, nil
		},
		countFn: func(context.Context, predicate.Predicate) (int, error) { return 1, nil },
	}
	svc := New(repo, Config{NativeRelevance: true, MaxCandidates: 50})

	page, err := svc.Search(context.Background(), newRequest("cricket", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := page.Results[0].Score(); got != 11.5 {
		t.Errorf("score = %v, want 11.5", got)
	}
}

func TestSearch_NativeDisabledUsesFallback(t *testing.T) {
	var findCalls atomic.Int32
	repo := &mockRepo{
		textSearchOK: true,
		textSearchFn: func(context.Context, predicate.Predicate, int) ([]score.Candidate, error) {
			t.Error("native search disabled by config")
			return nil, nil
		},
		findFn: func(_ context.Context, _ predicate.Predicate, _ query.Sort, offset, limit int) ([]*article.Article, error) {
			findCalls.Add(1)
			if offset != 0 || limit != DefaultMaxCandidates {
				t.Errorf("window = %d/%d", offset, limit)
			}
			return nil, nil
		},
	}
	svc := New(repo, Config{})

	if _, err := svc.Search(context.Background(), newRequest("x", "en", 1, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if findCalls.Load() != 1 {
		t.Errorf("find calls = %d, want 1", findCalls.Load())
	}
}

func TestSearch_CountFailureFailsSearch(t *testing.T) {
	repo := &mockRepo{
		findFn: func(ctx context.Context, _ predicate.Predicate, _ query.Sort, _, _ int) ([]*article.Article, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		countFn: func(context.Context, predicate.Predicate) (int, error) {
			return 0, errors.New("connection reset")
		},
	}
	svc := New(repo, Config{})

	_, err := svc.Search(context.Background(), newRequest("", "en", 1, 10))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_RecencyDecay(t *testing.T) {
	repo := seeded(t,
		newArticle("old", 10*24*time.Hour, func(a *article.Article) { a.Title = article.NewText("cricket") }),
	)
	svc := New(repo, Config{RecencyDecayPerDay: 0.1}).WithClock(func() time.Time { return now })

	page, err := svc.Search(context.Background(), newRequest("cricket", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := page.Results[0].Score(); got < 8.99 || got > 9.01 {
		t.Errorf("score = %v, want 9 (10 - 0.1*10 days)", got)
	}
}

func TestSearch_ScoreIsIdempotent(t *testing.T) {
	repo := seeded(t, newArticle("a", 0, func(a *article.Article) {
		a.Title = article.NewText("Tech")
		a.Tags = []string{"tech"}
	}))
	svc := New(repo, Config{}).WithClock(func() time.Time { return now })

	first, _ := svc.Search(context.Background(), newRequest("tech", "en", 1, 10))
	second, _ := svc.Search(context.Background(), newRequest("tech", "en", 1, 10))
	if first.Results[0].Score() != second.Results[0].Score() {
		t.Errorf("scores differ: %v vs %v", first.Results[0].Score(), second.Results[0].Score())
	}
}

func TestSearch_CandidateCapIsReported(t *testing.T) {
	var items []*article.Article
	for i := range 3 {
		items = append(items, newArticle(string(rune('a'+i)), time.Duration(i)*time.Hour, func(a *article.Article) {
			a.Title = article.NewText("Cricket news")
		}))
	}
	svc := New(seeded(t, items...), Config{MaxCandidates: 2})

	before := testutil.ToFloat64(metrics.SearchTruncatedTotal)
	page, err := svc.Search(context.Background(), newRequest("cricket", "en", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 2 || page.Pagination.TotalResults != 3 {
		t.Fatalf("results = %d, total = %d", len(page.Results), page.Pagination.TotalResults)
	}
	if got := testutil.ToFloat64(metrics.SearchTruncatedTotal); got != before+1 {
		t.Errorf("truncated counter = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(metrics.SearchTruncatedTotal)
	if _, err := New(seeded(t, items...), Config{}).Search(context.Background(), newRequest("cricket", "en", 1, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(metrics.SearchTruncatedTotal); got != before {
		t.Errorf("uncapped search counted as truncated")
	}
}
