package result

// Paging defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Paging is a normalized page request.
type Paging struct {
	page int
	size int
}

// NewPaging clamps raw page parameters. page < 1 becomes 1; size < 1
// becomes DefaultPageSize; size above maxSize is capped (maxSize <= 0 means MaxPageSize).
func NewPaging(page, size, maxSize int) Paging {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if size > maxSize {
		size = maxSize
	}
	return Paging{page: page, size: size}
}

// Page returns the 1-based page number.
func (p Paging) Page() int { return p.page }

// Size returns the page size.
func (p Paging) Size() int { return p.size }

// Offset returns the number of items skipped before this page.
func (p Paging) Offset() int { return (p.page - 1) * p.size }

// Pagination is the metadata returned alongside a page.
type Pagination struct {
	Current      int
	Total        int
	HasNext      bool
	HasPrev      bool
	TotalResults int
}

// Paginate computes the metadata for a page over totalResults items.
func Paginate(p Paging, totalResults int) Pagination {
	totalResults = max(totalResults, 0)
	return Pagination{
		Current:      p.page,
		Total:        (totalResults + p.size - 1) / p.size,
		HasNext:      p.page*p.size < totalResults,
		HasPrev:      p.page > 1,
		TotalResults: totalResults,
	}
}

// Assemble cuts the page window out of the full ordered slice. An out-of-range
// page yields an empty window, never an error.
func Assemble[T any](all []T, p Paging, totalResults int) ([]T, Pagination) {
	start := p.Offset()
	if start >= len(all) {
		return []T{}, Paginate(p, totalResults)
	}
	end := min(start+p.size, len(all))
	return all[start:end], Paginate(p, totalResults)
}
