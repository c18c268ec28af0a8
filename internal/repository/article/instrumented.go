package article

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/duodex/internal/domain"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
	"github.com/kailas-cloud/duodex/internal/metrics"
)

// Backend is the method set shared by the Redis and in-memory repositories.
type Backend interface {
	EnsureIndex(ctx context.Context) (bool, error)
	RebuildIndex(ctx context.Context) error
	IndexReady(ctx context.Context) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
	TextSearch(ctx context.Context, pred predicate.Predicate, limit int) ([]score.Candidate, error)
	Find(ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int) ([]*domart.Article, error)
	Count(ctx context.Context, pred predicate.Predicate) (int, error)
	Get(ctx context.Context, id string) (*domart.Article, error)
	FindBySlug(ctx context.Context, slug string) ([]*domart.Article, error)
	All(ctx context.Context) ([]*domart.Article, error)
	Upsert(ctx context.Context, a *domart.Article) error
	UpsertMany(ctx context.Context, articles []*domart.Article) error
}

var (
	_ Backend = (*Repo)(nil)
	_ Backend = (*Memory)(nil)
	_ Backend = (*Instrumented)(nil)
)

// Instrumented wraps a Backend with duration and error metrics and debug logging.
// Not-found results are not counted as errors.
type Instrumented struct {
	inner  Backend
	logger *zap.Logger
}

// NewInstrumented wraps inner. logger may be nil.
func NewInstrumented(inner Backend, logger *zap.Logger) *Instrumented {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{inner: inner, logger: logger}
}

func (r *Instrumented) observe(op string, start time.Time, err error) {
	d := time.Since(start)
	metrics.RepositoryDuration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		metrics.RepositoryErrorsTotal.WithLabelValues(op).Inc()
		r.logger.Debug("Repository call failed",
			zap.String("op", op),
			zap.Duration("duration", d),
			zap.Error(err),
		)
	}
}

// EnsureIndex delegates to the inner backend.
func (r *Instrumented) EnsureIndex(ctx context.Context) (created bool, err error) {
	defer func(start time.Time) { r.observe("ensure_index", start, err) }(time.Now())
	return r.inner.EnsureIndex(ctx)
}

// RebuildIndex delegates to the inner backend.
func (r *Instrumented) RebuildIndex(ctx context.Context) (err error) {
	defer func(start time.Time) { r.observe("rebuild_index", start, err) }(time.Now())
	return r.inner.RebuildIndex(ctx)
}

// IndexReady delegates to the inner backend.
func (r *Instrumented) IndexReady(ctx context.Context) (ok bool, err error) {
	defer func(start time.Time) { r.observe("index_ready", start, err) }(time.Now())
	return r.inner.IndexReady(ctx)
}

// SupportsTextSearch delegates to the inner backend.
func (r *Instrumented) SupportsTextSearch(ctx context.Context) bool {
	return r.inner.SupportsTextSearch(ctx)
}

// TextSearch delegates to the inner backend.
func (r *Instrumented) TextSearch(
	ctx context.Context, pred predicate.Predicate, limit int,
) (out []score.Candidate, err error) {
	defer func(start time.Time) { r.observe("text_search", start, err) }(time.Now())
	return r.inner.TextSearch(ctx, pred, limit)
}

// Find delegates to the inner backend.
func (r *Instrumented) Find(
	ctx context.Context, pred predicate.Predicate, sort query.Sort, offset, limit int,
) (out []*domart.Article, err error) {
	defer func(start time.Time) { r.observe("find", start, err) }(time.Now())
	return r.inner.Find(ctx, pred, sort, offset, limit)
}

// Count delegates to the inner backend.
func (r *Instrumented) Count(ctx context.Context, pred predicate.Predicate) (n int, err error) {
	defer func(start time.Time) { r.observe("count", start, err) }(time.Now())
	return r.inner.Count(ctx, pred)
}

// Get delegates to the inner backend.
func (r *Instrumented) Get(ctx context.Context, id string) (a *domart.Article, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.inner.Get(ctx, id)
}

// FindBySlug delegates to the inner backend.
func (r *Instrumented) FindBySlug(ctx context.Context, slug string) (out []*domart.Article, err error) {
	defer func(start time.Time) { r.observe("find_by_slug", start, err) }(time.Now())
	return r.inner.FindBySlug(ctx, slug)
}

// All delegates to the inner backend.
func (r *Instrumented) All(ctx context.Context) (out []*domart.Article, err error) {
	defer func(start time.Time) { r.observe("all", start, err) }(time.Now())
	return r.inner.All(ctx)
}

// Upsert delegates to the inner backend.
func (r *Instrumented) Upsert(ctx context.Context, a *domart.Article) (err error) {
	defer func(start time.Time) { r.observe("upsert", start, err) }(time.Now())
	return r.inner.Upsert(ctx, a)
}

// UpsertMany delegates to the inner backend.
func (r *Instrumented) UpsertMany(ctx context.Context, articles []*domart.Article) (err error) {
	defer func(start time.Time) { r.observe("upsert_many", start, err) }(time.Now())
	return r.inner.UpsertMany(ctx, articles)
}
