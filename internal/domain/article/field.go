package article

// Field names a searchable or filterable article attribute.
type Field string

// Article fields addressable by predicates and store adapters.
const (
	FieldTitle      Field = "title"
	FieldSummary    Field = "summary"
	FieldContent    Field = "content"
	FieldTitleAlt   Field = "titleAlt"
	FieldSummaryAlt Field = "summaryAlt"
	FieldContentAlt Field = "contentAlt"
	FieldTags       Field = "tags"
	FieldCategory   Field = "category"
	FieldType       Field = "type"
	FieldRegion     Field = "region"
	FieldCountry    Field = "country"
	FieldLanguage   Field = "language"
	FieldSlug       Field = "slug"
)

// ContentFields returns the title, summary and content fields of a language, in that order.
func ContentFields(lang Language) [3]Field {
	if lang == Secondary {
		return [3]Field{FieldTitleAlt, FieldSummaryAlt, FieldContentAlt}
	}
	return [3]Field{FieldTitle, FieldSummary, FieldContent}
}

// AllContentFields lists every optional content field in storage order.
func AllContentFields() []Field {
	return []Field{
		FieldTitle, FieldSummary, FieldContent,
		FieldTitleAlt, FieldSummaryAlt, FieldContentAlt,
	}
}

// Base strips the secondary suffix: titleAlt -> title.
func (f Field) Base() Field {
	switch f {
	case FieldTitleAlt:
		return FieldTitle
	case FieldSummaryAlt:
		return FieldSummary
	case FieldContentAlt:
		return FieldContent
	}
	return f
}
