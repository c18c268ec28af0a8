package article

import (
	"github.com/kailas-cloud/duodex/internal/db"
	domart "github.com/kailas-cloud/duodex/internal/domain/article"
)

// Relevance weights of the TEXT fields. Both language variants share them.
const (
	weightTitle   = 10
	weightSummary = 6
	weightContent = 3
)

// IndexDefinition returns the FT index over article hashes stored under prefix.
// Text fields are unstemmed and stopwords are disabled so that the store's
// candidate set matches the in-process tier classifier.
func IndexDefinition(prefix string) *db.IndexDefinition {
	return db.NewIndex(indexName(prefix)).
		Prefix(keyPrefix(prefix)).
		NoStopWords().
		TextExact(string(domart.FieldTitle), weightTitle).
		TextExact(string(domart.FieldSummary), weightSummary).
		TextExact(string(domart.FieldContent), weightContent).
		TextExact(string(domart.FieldTitleAlt), weightTitle).
		TextExact(string(domart.FieldSummaryAlt), weightSummary).
		TextExact(string(domart.FieldContentAlt), weightContent).
		TagWithOpts(fieldPresent, tagSeparator, false).
		TagWithOpts(string(domart.FieldTags), tagSeparator, false).
		Tag(string(domart.FieldLanguage)).
		Tag(string(domart.FieldCategory)).
		Tag(string(domart.FieldType)).
		Tag(string(domart.FieldRegion)).
		Tag(string(domart.FieldCountry)).
		Tag(string(domart.FieldSlug)).
		Numeric(fieldFeatured).
		Numeric(fieldTrending).
		NumericSortable(fieldCreatedAt).
		NumericSortable(fieldUpdatedAt).
		MustBuild()
}

func indexName(prefix string) string {
	return prefix + "articles:idx"
}

func keyPrefix(prefix string) string {
	return prefix + "article:"
}

func articleKey(prefix, id string) string {
	return keyPrefix(prefix) + id
}
