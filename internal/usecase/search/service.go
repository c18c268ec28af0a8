package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/duodex/internal/domain"
	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/predicate"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/request"
	"github.com/kailas-cloud/duodex/internal/domain/search/result"
	"github.com/kailas-cloud/duodex/internal/domain/search/score"
	"github.com/kailas-cloud/duodex/internal/logger"
	"github.com/kailas-cloud/duodex/internal/metrics"
)

// DefaultMaxCandidates bounds the records scored by one ranked search.
const DefaultMaxCandidates = 1000

// Config tunes ranked search.
type Config struct {
	// MaxCandidates is the most records fetched and scored per ranked search.
	MaxCandidates int
	// NativeRelevance adds the store's relevance score when the store has one.
	NativeRelevance bool
	// RecencyDecayPerDay subtracts this much score per day of age; 0 disables it.
	RecencyDecayPerDay float64
}

// Service runs filtered, ranked and paginated article searches.
type Service struct {
	repo   Repository
	cfg    Config
	ranker score.Ranker
}

// New creates a search service.
func New(repo Repository, cfg Config) *Service {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &Service{
		repo:   repo,
		cfg:    cfg,
		ranker: score.Ranker{DecayPerDay: cfg.RecencyDecayPerDay},
	}
}

// WithClock overrides the time source used for recency decay.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.ranker.Now = now
	return s
}

// Search composes the store predicate, fetches one page (or the ranked
// candidate set) together with the total count, and projects every hit into
// the requested language. Either store failure fails the whole search.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	metrics.SearchRequestsTotal.WithLabelValues(
		string(req.Mode()), req.Language().String(), strconv.FormatBool(req.Ranked()),
	).Inc()

	pred := query.Compose(req.Term(), req.Filters(), req.Mode(), req.Language())
	logger.FromContext(ctx).Debug("Search predicate", zap.Stringer("predicate", pred))

	if req.Ranked() {
		return s.searchRanked(ctx, pred, req)
	}
	return s.searchRecent(ctx, pred, req)
}

// searchRecent pages through matches newest first.
func (s *Service) searchRecent(
	ctx context.Context, pred predicate.Predicate, req *request.Request,
) (result.Page, error) {
	paging := req.Paging()

	var items []*article.Article
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, pred, query.NewestFirst, paging.Offset(), paging.Size())
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
		results = append(results, result.New(article.Project(a, req.Language())))
	}
	return result.Page{Results: results, Pagination: result.Paginate(paging, total)}, nil
}

// searchRanked scores up to MaxCandidates matches and pages through the ranking.
func (s *Service) searchRanked(
	ctx context.Context, pred predicate.Predicate, req *request.Request,
) (result.Page, error) {
	var cands []score.Candidate
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cands, err = s.candidates(gctx, pred)
		return err
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
	if total > s.cfg.MaxCandidates {
		// Only the first MaxCandidates matches were scored; the rest never rank.
		metrics.SearchTruncatedTotal.Inc()
		logger.FromContext(ctx).Warn("Ranked search truncated",
			zap.Int("total", total),
			zap.Int("scored", len(cands)),
			zap.Int("max_candidates", s.cfg.MaxCandidates),
		)
	}

	ranked := s.ranker.Rank(cands, req.Term(), req.Mode(), req.Language())
	window, pagination := result.Assemble(ranked, req.Paging(), total)

	results := make([]result.Result, 0, len(window))
	for _, sc := range window {
		results = append(results, result.NewRanked(
			article.Project(sc.Article, req.Language()), sc.Score, sc.Matches,
		))
	}
	return result.Page{Results: results, Pagination: pagination}, nil
}

// candidates prefers the store's native relevance and falls back to the
// newest matches, which are then scored in process only.
func (s *Service) candidates(ctx context.Context, pred predicate.Predicate) ([]score.Candidate, error) {
	if s.cfg.NativeRelevance && s.repo.SupportsTextSearch(ctx) {
		cands, err := s.repo.TextSearch(ctx, pred, s.cfg.MaxCandidates)
		switch {
		case err == nil:
			metrics.SearchCandidates.WithLabelValues("native").Observe(float64(len(cands)))
			return cands, nil
		case !errors.Is(err, domain.ErrTextSearchNotSupported):
			return nil, fmt.Errorf("text search: %w", err)
		}
	}

	items, err := s.repo.Find(ctx, pred, query.NewestFirst, 0, s.cfg.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	metrics.SearchCandidates.WithLabelValues("fallback").Observe(float64(len(items)))

	cands := make([]score.Candidate, len(items))
	for i, a := range items {
		cands[i] = score.Candidate{Article: a}
	}
	return cands, nil
}
