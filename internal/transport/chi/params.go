package chi

import (
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// searchParams are the query parameters of GET /api/articles/search.
type searchParams struct {
	Q        string
	Category string
	Type     string
	Region   string
	Country  string
	Mode     string
	Lang     string
	Page     int
	Limit    int
	PageSize int
}

// limit prefers limit over its pageSize alias.
func (p *searchParams) limit() int {
	if p.Limit > 0 {
		return p.Limit
	}
	return p.PageSize
}

// listParams are the query parameters of the listing endpoints.
type listParams struct {
	Category string
	Lang     string
	Sort     string
	Page     int
	Limit    int
	PageSize int
}

func (p *listParams) limit() int {
	if p.Limit > 0 {
		return p.Limit
	}
	return p.PageSize
}

func bindSearchParams(q url.Values) searchParams {
	return searchParams{
		Q:        bindString(q, "q"),
		Category: bindString(q, "category"),
		Type:     bindString(q, "type"),
		Region:   bindString(q, "region"),
		Country:  bindString(q, "country"),
		Mode:     bindString(q, "mode"),
		Lang:     bindString(q, "lang"),
		Page:     bindInt(q, "page"),
		Limit:    bindInt(q, "limit"),
		PageSize: bindInt(q, "pageSize"),
	}
}

func bindListParams(q url.Values) listParams {
	return listParams{
		Category: bindString(q, "category"),
		Lang:     bindString(q, "lang"),
		Sort:     bindString(q, "sort"),
		Page:     bindInt(q, "page"),
		Limit:    bindInt(q, "limit"),
		PageSize: bindInt(q, "pageSize"),
	}
}

// bindString binds an optional form-style parameter. Absent or malformed
// values yield "".
func bindString(q url.Values, name string) string {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil || v == nil {
		return ""
	}
	return *v
}

// bindInt binds an optional integer parameter. Absent or malformed values
// yield 0, which the paging layer replaces with its default.
func bindInt(q url.Values, name string) int {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil || v == nil {
		return 0
	}
	return *v
}
