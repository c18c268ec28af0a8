package maintenance

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/duodex/internal/domain/article"
)

// DefaultSeedBatchSize is the number of articles written per pipelined round-trip.
const DefaultSeedBatchSize = 500

// LanguageChange records one language tag correction.
type LanguageChange struct {
	ID   string
	From article.Language
	To   article.Language
}

// ReconcileReport summarizes a language reconciliation run.
type ReconcileReport struct {
	Scanned int
	Changes []LanguageChange
	DryRun  bool
}

// Service runs index management, seeding and data repair tasks.
type Service struct {
	repo      Repository
	logger    *zap.Logger
	batchSize int
	now       func() time.Time
}

// New creates a maintenance service. logger may be nil.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, batchSize: DefaultSeedBatchSize, now: time.Now}
}

// EnsureIndex creates the search index when missing.
func (s *Service) EnsureIndex(ctx context.Context) (bool, error) {
	created, err := s.repo.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	if created {
		s.logger.Info("Search index created")
	}
	return created, nil
}

// RebuildIndex drops and recreates the search index over the stored articles.
func (s *Service) RebuildIndex(ctx context.Context) error {
	if err := s.repo.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	s.logger.Info("Search index rebuilt")
	return nil
}

// Seed imports the articles of a seed document. Every record is validated
// before the first batch is written. Returns the number of imported articles.
func (s *Service) Seed(ctx context.Context, r io.Reader) (int, error) {
	records, err := DecodeSeed(r)
	if err != nil {
		return 0, err
	}

	now := s.now()
	articles := make([]*article.Article, len(records))
	for i := range records {
		a, err := records[i].ToArticle(now)
		if err != nil {
			return 0, fmt.Errorf("seed record %d: %w", i, err)
		}
		if err := a.Validate(); err != nil {
			return 0, fmt.Errorf("seed record %d: %w", i, err)
		}
		articles[i] = a
	}

	for start := 0; start < len(articles); start += s.batchSize {
		end := min(start+s.batchSize, len(articles))
		if err := s.repo.UpsertMany(ctx, articles[start:end]); err != nil {
			return start, fmt.Errorf("seed batch at %d: %w", start, err)
		}
	}

	s.logger.Info("Seed imported", zap.Int("articles", len(articles)))
	return len(articles), nil
}

// ReconcileLanguage rewrites language tags that contradict content presence.
// With dryRun set, changes are reported but not written.
func (s *Service) ReconcileLanguage(ctx context.Context, dryRun bool) (ReconcileReport, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("load articles: %w", err)
	}

	report := ReconcileReport{Scanned: len(all), DryRun: dryRun}
	for _, a := range all {
		want := article.ReconcileLanguage(a)
		if want == a.Language {
			continue
		}
		report.Changes = append(report.Changes, LanguageChange{ID: a.ID, From: a.Language, To: want})
		if dryRun {
			continue
		}
		a.Language = want
		a.UpdatedAt = s.now().UTC()
		if err := s.repo.Upsert(ctx, a); err != nil {
			return report, fmt.Errorf("update %s: %w", a.ID, err)
		}
	}

	s.logger.Info("Language reconciliation finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("changed", len(report.Changes)),
		zap.Bool("dry_run", dryRun),
	)
	return report, nil
}
