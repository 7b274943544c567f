// Package pagination implements the page/limit/sort window contract shared by
// every list endpoint. All list handlers go through this package so edge
// behavior (clamping, out-of-range pages) is identical everywhere.
package pagination

// Window defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 50
)

// Columns whitelists the fields callers may sort one entity by, mapped to
// their column names. Each repository declares its own set so a field that is
// valid on one table never reaches ORDER BY on another.
type Columns map[string]string

// Params is a normalized pagination window.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// New normalizes raw query values into a Params: page is floor-clamped to >=1,
// limit is clamped to [1,50] (callers supply DefaultLimit when the query
// parameter is absent, so an explicit 0 clamps to 1), and the sort defaults to
// newest-first by creation time.
func New(page, limit int, sortBy, sortOrder string) Params {
	if page < DefaultPage {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return Params{Page: page, Limit: limit, SortBy: sortBy, SortOrder: sortOrder}
}

// Offset returns the number of records to skip for this window.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause returns a safe ORDER BY expression for this window. Sort fields
// outside the entity's whitelist fall back to created_at.
func (p Params) OrderClause(cols Columns) string {
	col, ok := cols[p.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// Meta is the pagination envelope returned alongside list data.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewMeta derives the response metadata for a window over total records.
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
