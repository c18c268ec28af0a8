package article

import (
	"strconv"
	"strings"
	"time"

	domart "github.com/kailas-cloud/duodex/internal/domain/article"
)

// Hash field names beyond the article.Field set.
const (
	fieldPresent       = "present"
	fieldAuthor        = "author"
	fieldImageURL      = "image_url"
	fieldImagePublicID = "image_public_id"
	fieldFeatured      = "is_featured"
	fieldTrending      = "is_trending"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
)

// tagSeparator joins multi-valued TAG fields (tags, present).
const tagSeparator = ","

// buildHashFields flattens an article into HSET fields. Absent text is
// stored as "" and the present TAG lists the fields that carry content.
func buildHashFields(a *domart.Article) map[string]string {
	m := make(map[string]string, 22)
	for _, f := range domart.AllContentFields() {
		m[string(f)] = a.Text(f).String()
	}

	present := a.PresentFields()
	names := make([]string, len(present))
	for i, f := range present {
		names[i] = string(f)
	}
	m[fieldPresent] = strings.Join(names, tagSeparator)

	m[string(domart.FieldLanguage)] = string(a.Language)
	m[string(domart.FieldCategory)] = a.Category
	m[string(domart.FieldType)] = a.Type
	m[string(domart.FieldRegion)] = a.Region
	m[string(domart.FieldCountry)] = a.Country
	m[string(domart.FieldTags)] = strings.Join(a.Tags, tagSeparator)
	m[string(domart.FieldSlug)] = a.Slug
	m[fieldAuthor] = a.Author
	m[fieldImageURL] = a.Image.URL
	m[fieldImagePublicID] = a.Image.PublicID
	m[fieldFeatured] = boolToFlag(a.IsFeatured)
	m[fieldTrending] = boolToFlag(a.IsTrending)
	m[fieldCreatedAt] = timeToMillis(a.CreatedAt)
	m[fieldUpdatedAt] = timeToMillis(a.UpdatedAt)
	return m
}

// parseHashFields rebuilds an article from a hash.
func parseHashFields(id string, m map[string]string) *domart.Article {
	a := &domart.Article{
		ID:         id,
		Title:      domart.NewText(m[string(domart.FieldTitle)]),
		Summary:    domart.NewText(m[string(domart.FieldSummary)]),
		Content:    domart.NewText(m[string(domart.FieldContent)]),
		TitleAlt:   domart.NewText(m[string(domart.FieldTitleAlt)]),
		SummaryAlt: domart.NewText(m[string(domart.FieldSummaryAlt)]),
		ContentAlt: domart.NewText(m[string(domart.FieldContentAlt)]),
		Language:   domart.ParseLanguage(m[string(domart.FieldLanguage)]),
		Category:   m[string(domart.FieldCategory)],
		Type:       m[string(domart.FieldType)],
		Region:     m[string(domart.FieldRegion)],
		Country:    m[string(domart.FieldCountry)],
		Tags:       splitTags(m[string(domart.FieldTags)]),
		Slug:       m[string(domart.FieldSlug)],
		Author:     m[fieldAuthor],
		Image: domart.Image{
			URL:      m[fieldImageURL],
			PublicID: m[fieldImagePublicID],
		},
		IsFeatured: m[fieldFeatured] == "1",
		IsTrending: m[fieldTrending] == "1",
		CreatedAt:  millisToTime(m[fieldCreatedAt]),
		UpdatedAt:  millisToTime(m[fieldUpdatedAt]),
	}
	a.ApplyDefaults()
	return a
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, tagSeparator)
}

func boolToFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func timeToMillis(t time.Time) string {
	if t.IsZero() {
		return "0"
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func millisToTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
