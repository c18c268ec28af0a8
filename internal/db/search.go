package db

import "github.com/kailas-cloud/duodex/internal/domain/search/predicate"

// SortBy orders FT.SEARCH results by a SORTABLE field.
type SortBy struct {
	Field string
	Desc  bool
}

// ListQuery is the input for a filtered, sorted, paginated FT.SEARCH.
type ListQuery struct {
	IndexName string
	Filter    predicate.Predicate
	SortBy    *SortBy
	Offset    int
	Limit     int
}

// TextQuery is the input for a relevance-scored FT.SEARCH (WITHSCORES).
// The free-text part is carried by Matches leaves of Filter.
type TextQuery struct {
	IndexName string
	Filter    predicate.Predicate
	Offset    int
	TopK      int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
