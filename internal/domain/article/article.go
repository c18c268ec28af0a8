package article

import (
	"errors"
	"time"
)

// Defaults applied to records that omit optional metadata.
const (
	DefaultType   = "news"
	DefaultAuthor = "Admin"
)

// Image references media held by the object store.
type Image struct {
	URL      string
	PublicID string
}

// Article is the dual-language read model. The search core never mutates it.
type Article struct {
	ID string

	Title   Text
	Summary Text
	Content Text

	TitleAlt   Text
	SummaryAlt Text
	ContentAlt Text

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

// ApplyDefaults fills empty metadata with default values.
func (a *Article) ApplyDefaults() {
	if !a.Language.IsValid() {
		a.Language = Primary
	}
	if a.Type == "" {
		a.Type = DefaultType
	}
	if a.Author == "" {
		a.Author = DefaultAuthor
	}
}

// Validate checks the invariants every stored record satisfies.
func (a *Article) Validate() error {
	if a.ID == "" {
		return errors.New("article ID is required")
	}
	if a.Category == "" {
		return errors.New("category is required")
	}
	return nil
}

// Text returns the content field f, or an absent Text for non-content fields.
func (a *Article) Text(f Field) Text {
	switch f {
	case FieldTitle:
		return a.Title
	case FieldSummary:
		return a.Summary
	case FieldContent:
		return a.Content
	case FieldTitleAlt:
		return a.TitleAlt
	case FieldSummaryAlt:
		return a.SummaryAlt
	case FieldContentAlt:
		return a.ContentAlt
	}
	return Text{}
}

// Value returns the scalar metadata or content field f as a plain string.
func (a *Article) Value(f Field) string {
	switch f {
	case FieldCategory:
		return a.Category
	case FieldType:
		return a.Type
	case FieldRegion:
		return a.Region
	case FieldCountry:
		return a.Country
	case FieldLanguage:
		return string(a.Language)
	case FieldSlug:
		return a.Slug
	}
	return a.Text(f).String()
}

// PresentFields lists the content fields that carry content.
func (a *Article) PresentFields() []Field {
	var out []Field
	for _, f := range AllContentFields() {
		if a.Text(f).Present() {
			out = append(out, f)
		}
	}
	return out
}
