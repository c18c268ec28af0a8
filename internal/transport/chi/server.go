package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/duodex/internal/domain"
	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/query"
	"github.com/kailas-cloud/duodex/internal/domain/search/request"
	"github.com/kailas-cloud/duodex/internal/domain/search/result"
	"github.com/kailas-cloud/duodex/internal/version"
	articleuc "github.com/kailas-cloud/duodex/internal/usecase/article"
	healthuc "github.com/kailas-cloud/duodex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/duodex/internal/usecase/search"
)

// Client-facing error messages.
const (
	msgNotFound    = "Article not found"
	msgSearchError = "Server error while searching articles"
	msgFetchError  = "Server error while fetching articles"
	msgArticleErr  = "Server error while fetching article"
	msgTimeout     = "Request timed out"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Paging holds the page size limits applied to every list endpoint.
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Server serves the article read API.
type Server struct {
	search        *searchuc.Service
	articles      *articleuc.Service
	health        *healthuc.Service
	paging        Paging
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	articles *articleuc.Service,
	health *healthuc.Service,
	paging Paging,
	logger *zap.Logger,
) *Server {
	if paging.DefaultPageSize <= 0 {
		paging.DefaultPageSize = result.DefaultPageSize
	}
	if paging.MaxPageSize <= 0 {
		paging.MaxPageSize = result.MaxPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		articles: articles,
		health:   health,
		paging:   paging,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, msgNotFound),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, msgTimeout),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Banner)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", s.ListArticles)
		r.Get("/search", s.SearchArticles)
		r.Get("/type/{type}", s.ListByType)
		r.Get("/category/{category}", s.ListByCategory)
		r.Get("/slug/{slug}", s.GetArticleBySlug)
		r.Get("/{id}", s.GetArticle)
	})
}

// SearchArticles handles GET /api/articles/search.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	p := bindSearchParams(r.URL.Query())

	req := request.New(
		p.Q,
		query.Filters{Category: p.Category, Type: p.Type, Region: p.Region, Country: p.Country},
		p.Mode, p.Lang,
		p.Page, s.pageSize(p.limit()), s.paging.MaxPageSize,
	)

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err, msgSearchError)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(&page))
}

// ListArticles handles GET /api/articles.
func (s *Server) ListArticles(w http.ResponseWriter, r *http.Request) {
	p := bindListParams(r.URL.Query())
	s.list(w, r, query.Filters{Category: p.Category}, &p)
}

// ListByType handles GET /api/articles/type/{type}.
func (s *Server) ListByType(w http.ResponseWriter, r *http.Request) {
	p := bindListParams(r.URL.Query())
	s.list(w, r, query.Filters{Type: chi.URLParam(r, "type")}, &p)
}

// ListByCategory handles GET /api/articles/category/{category}.
func (s *Server) ListByCategory(w http.ResponseWriter, r *http.Request) {
	p := bindListParams(r.URL.Query())
	s.list(w, r, query.Filters{Category: chi.URLParam(r, "category")}, &p)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, filters query.Filters, p *listParams) {
	page, err := s.articles.List(r.Context(), articleuc.ListRequest{
		Filters:  filters,
		Language: article.ParseLanguage(p.Lang),
		Sort:     query.ParseSort(p.Sort),
		Paging:   result.NewPaging(p.Page, s.pageSize(p.limit()), s.paging.MaxPageSize),
	})
	if err != nil {
		s.handleDomainError(w, err, msgFetchError)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(&page))
}

// GetArticle handles GET /api/articles/{id}.
func (s *Server) GetArticle(w http.ResponseWriter, r *http.Request) {
	lang := article.ParseLanguage(bindString(r.URL.Query(), "lang"))
	a, err := s.articles.Get(r.Context(), chi.URLParam(r, "id"), lang)
	if err != nil {
		s.handleDomainError(w, err, msgArticleErr)
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(&a))
}

// GetArticleBySlug handles GET /api/articles/slug/{slug}.
func (s *Server) GetArticleBySlug(w http.ResponseWriter, r *http.Request) {
	lang := article.ParseLanguage(bindString(r.URL.Query(), "lang"))
	a, err := s.articles.BySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		s.handleDomainError(w, err, msgArticleErr)
		return
	}
	writeJSON(w, http.StatusOK, articleToResponse(&a))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// Banner handles GET /.
func (s *Server) Banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, BannerResponse{
		Status:  "API is working",
		Service: "duodex",
		Version: version.Version,
		Endpoints: map[string]string{
			"articles": "/api/articles",
			"search":   "/api/articles/search",
			"health":   "/health",
		},
	})
}

func (s *Server) pageSize(requested int) int {
	if requested <= 0 {
		return s.paging.DefaultPageSize
	}
	return requested
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// handleDomainError answers with the first matching handler, or a generic
// 500 carrying fallback. Internals never reach the client.
func (s *Server) handleDomainError(w http.ResponseWriter, err error, fallback string) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			if errors.Is(err, context.DeadlineExceeded) {
				s.logger.Warn("request deadline exceeded", zap.Error(err))
			} else {
				s.logger.Debug("domain error", zap.Error(err))
			}
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback)
}
