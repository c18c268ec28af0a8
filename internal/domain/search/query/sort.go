package query

// Sort is a result ordering every repository understands.
type Sort int

// Orderings.
const (
	// NewestFirst orders by createdAt descending.
	NewestFirst Sort = iota
	// OldestFirst orders by createdAt ascending.
	OldestFirst
)

// Descending reports whether the ordering is newest first.
func (s Sort) Descending() bool { return s != OldestFirst }

// ParseSort reads "oldest" as OldestFirst; anything else is NewestFirst.
func ParseSort(s string) Sort {
	if s == "oldest" {
		return OldestFirst
	}
	return NewestFirst
}
