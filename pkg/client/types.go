package client

import "time"

// Language selects which variant of each article is returned.
type Language string

// Supported languages.
const (
	LanguagePrimary   Language = "en"
	LanguageSecondary Language = "ur"
)

// Mode is the search strictness.
type Mode string

// Search modes.
const (
	ModeDefault Mode = "default"
	ModeStrict  Mode = "strict"
)

// SearchParams are the parameters of a search. Zero values are omitted and
// the server applies its defaults.
type SearchParams struct {
	Query    string
	Category string
	Type     string
	Region   string
	Country  string
	Mode     Mode
	Language Language
	Page     int
	Limit    int
}

// ListParams are the parameters of a listing.
type ListParams struct {
	Category string
	Language Language
	Oldest   bool
	Page     int
	Limit    int
}

// Image references stored media.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Article is an article projected into the requested language.
type Article struct {
	ID         string     `json:"id"`
	Title      *string    `json:"title"`
	Summary    *string    `json:"summary"`
	Content    *string    `json:"content"`
	Language   Language   `json:"language"`
	Category   string     `json:"category"`
	Type       string     `json:"type"`
	Region     string     `json:"region"`
	Country    string     `json:"country"`
	Tags       []string   `json:"tags"`
	Slug       string     `json:"slug"`
	Author     string     `json:"author"`
	Image      Image      `json:"image"`
	IsFeatured bool       `json:"isFeatured"`
	IsTrending bool       `json:"isTrending"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`

	RelevanceScore *float64 `json:"relevanceScore"`
	Matches        []string `json:"matches"`
}

// Pagination is the page metadata of a list reply.
type Pagination struct {
	Current      int  `json:"current"`
	Total        int  `json:"total"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
	TotalResults int  `json:"totalResults"`
}

// SearchResponse is one page of search or listing results.
type SearchResponse struct {
	Articles   []Article  `json:"articles"`
	Pagination Pagination `json:"pagination"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"
}
