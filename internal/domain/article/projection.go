package article

import "time"

// Projected is the response-shaped view of an article in one language.
// It has no secondary fields, so they can never leak into a payload.
type Projected struct {
	ID       string
	Title    Text
	Summary  Text
	Content  Text
	Language Language

	Category string
	Type     string
	Region   string
	Country  string
	Tags     []string
	Slug     string
	Author   string
	Image    Image

	IsFeatured bool
	IsTrending bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Project resolves display fields for lang. Secondary readers get each
// secondary field, falling back to the primary one when it is absent.
func Project(a *Article, lang Language) Projected {
	p := Projected{
		ID:         a.ID,
		Title:      a.Title,
		Summary:    a.Summary,
		Content:    a.Content,
		Language:   a.Language,
		Category:   a.Category,
		Type:       a.Type,
		Region:     a.Region,
		Country:    a.Country,
		Tags:       append([]string(nil), a.Tags...),
		Slug:       a.Slug,
		Author:     a.Author,
		Image:      a.Image,
		IsFeatured: a.IsFeatured,
		IsTrending: a.IsTrending,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if lang == Secondary {
		p.Title = a.TitleAlt.Or(a.Title)
		p.Summary = a.SummaryAlt.Or(a.Summary)
		p.Content = a.ContentAlt.Or(a.Content)
	}
	return p
}
