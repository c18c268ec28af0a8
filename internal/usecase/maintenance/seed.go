package maintenance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/duodex/internal/domain/article"
)

// SeedRecord is one article in a seed file. JSON files decode as well,
// since JSON is a subset of YAML.
type SeedRecord struct {
	ID         string    `yaml:"id"`
	Title      string    `yaml:"title"`
	Summary    string    `yaml:"summary"`
	Content    string    `yaml:"content"`
	TitleAlt   string    `yaml:"titleAlt"`
	SummaryAlt string    `yaml:"summaryAlt"`
	ContentAlt string    `yaml:"contentAlt"`
	Language   string    `yaml:"language"`
	Category   string    `yaml:"category"`
	Type       string    `yaml:"type"`
	Region     string    `yaml:"region"`
	Country    string    `yaml:"country"`
	Tags       []string  `yaml:"tags"`
	Slug       string    `yaml:"slug"`
	Author     string    `yaml:"author"`
	Image      SeedImage `yaml:"image"`
	IsFeatured bool      `yaml:"isFeatured"`
	IsTrending bool      `yaml:"isTrending"`
	CreatedAt  string    `yaml:"createdAt"`
	UpdatedAt  string    `yaml:"updatedAt"`
}

// SeedImage is the image reference of a seed record.
type SeedImage struct {
	URL      string `yaml:"url"`
	PublicID string `yaml:"publicId"`
}

type seedFile struct {
	Articles []SeedRecord `yaml:"articles"`
}

// DecodeSeed reads seed records from r. The document is either a list of
// records or a mapping with an "articles" list.
func DecodeSeed(r io.Reader) ([]SeedRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var records []SeedRecord
		if err := doc.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode seed list: %w", err)
		}
		return records, nil
	case yaml.MappingNode:
		var f seedFile
		if err := doc.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode seed file: %w", err)
		}
		return f.Articles, nil
	}
	return nil, errors.New("seed must be a list of articles or a mapping with an articles list")
}

// ToArticle converts a record, assigning a random ID when it has none.
// Missing timestamps default to now.
func (r *SeedRecord) ToArticle(now time.Time) (*article.Article, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	created, err := parseSeedTime(r.CreatedAt, now)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseSeedTime(r.UpdatedAt, created)
	if err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}

	a := &article.Article{
		ID:         id,
		Title:      article.NewText(r.Title),
		Summary:    article.NewText(r.Summary),
		Content:    article.NewText(r.Content),
		TitleAlt:   article.NewText(r.TitleAlt),
		SummaryAlt: article.NewText(r.SummaryAlt),
		ContentAlt: article.NewText(r.ContentAlt),
		Language:   article.ParseLanguage(r.Language),
		Category:   r.Category,
		Type:       r.Type,
		Region:     r.Region,
		Country:    r.Country,
		Tags:       r.Tags,
		Slug:       r.Slug,
		Author:     r.Author,
		Image:      article.Image{URL: r.Image.URL, PublicID: r.Image.PublicID},
		IsFeatured: r.IsFeatured,
		IsTrending: r.IsTrending,
		CreatedAt:  created.UTC(),
		UpdatedAt:  updated.UTC(),
	}
	a.ApplyDefaults()
	return a, nil
}

// seedTimeLayouts are the accepted timestamp formats, tried in order.
var seedTimeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly}

func parseSeedTime(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	for _, layout := range seedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
