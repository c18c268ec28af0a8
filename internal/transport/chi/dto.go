package chi

import (
	"time"

	"github.com/kailas-cloud/duodex/internal/domain/article"
	"github.com/kailas-cloud/duodex/internal/domain/search/result"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ImageResponse references stored media.
type ImageResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ArticleResponse is an article projected into the requested language.
// Absent text fields serialize as null.
type ArticleResponse struct {
	ID         string        `json:"id"`
	Title      *string       `json:"title"`
	Summary    *string       `json:"summary"`
	Content    *string       `json:"content"`
	Language   string        `json:"language"`
	Category   string        `json:"category"`
	Type       string        `json:"type"`
	Region     string        `json:"region"`
	Country    string        `json:"country"`
	Tags       []string      `json:"tags"`
	Slug       string        `json:"slug,omitempty"`
	Author     string        `json:"author"`
	Image      ImageResponse `json:"image"`
	IsFeatured bool          `json:"isFeatured"`
	IsTrending bool          `json:"isTrending"`
	CreatedAt  *time.Time    `json:"createdAt"`
	UpdatedAt  *time.Time    `json:"updatedAt"`

	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
	Matches        []string `json:"matches,omitempty"`
}

// PaginationResponse is the page metadata of a list reply.
type PaginationResponse struct {
	Current      int  `json:"current"`
	Total        int  `json:"total"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
	TotalResults int  `json:"totalResults"`
}

// ArticleListResponse is the body of search and listing replies.
type ArticleListResponse struct {
	Articles   []ArticleResponse  `json:"articles"`
	Pagination PaginationResponse `json:"pagination"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// BannerResponse is the body of GET /.
type BannerResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func pageToResponse(p *result.Page) ArticleListResponse {
	items := make([]ArticleResponse, 0, len(p.Results))
	for i := range p.Results {
		r := &p.Results[i]
		a := r.Article()
		item := articleToResponse(&a)
		if r.Ranked() {
			score := r.Score()
			item.RelevanceScore = &score
			item.Matches = r.Matches()
		}
		items = append(items, item)
	}
	return ArticleListResponse{
		Articles: items,
		Pagination: PaginationResponse{
			Current:      p.Pagination.Current,
			Total:        p.Pagination.Total,
			HasNext:      p.Pagination.HasNext,
			HasPrev:      p.Pagination.HasPrev,
			TotalResults: p.Pagination.TotalResults,
		},
	}
}

func articleToResponse(a *article.Projected) ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleResponse{
		ID:         a.ID,
		Title:      textPtr(a.Title),
		Summary:    textPtr(a.Summary),
		Content:    textPtr(a.Content),
		Language:   a.Language.String(),
		Category:   a.Category,
		Type:       a.Type,
		Region:     a.Region,
		Country:    a.Country,
		Tags:       tags,
		Slug:       a.Slug,
		Author:     a.Author,
		Image:      ImageResponse{URL: a.Image.URL, PublicID: a.Image.PublicID},
		IsFeatured: a.IsFeatured,
		IsTrending: a.IsTrending,
		CreatedAt:  timePtr(a.CreatedAt),
		UpdatedAt:  timePtr(a.UpdatedAt),
	}
}

func textPtr(t article.Text) *string {
	if !t.Present() {
		return nil
	}
	s := t.String()
	return &s
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
