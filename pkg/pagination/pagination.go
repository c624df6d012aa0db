package pagination

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Params holds page-number pagination and sorting parameters extracted
// from a request. Page is zero-based.
type Params struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// FromContext extracts pagination and sort parameters from the echo context.
// defaultSort is used when the sortBy query parameter is absent. The sort
// direction defaults to ascending; only "desc" (case-insensitive) flips it.
func FromContext(c echo.Context, defaultSort string) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = defaultSort
	}

	sortDir := "asc"
	if strings.EqualFold(c.QueryParam("sortDir"), "desc") {
		sortDir = "desc"
	}

	return Params{Page: page, Size: size, SortBy: sortBy, SortDir: sortDir}
}

// Limit returns the page size for SQL LIMIT.
func (p Params) Limit() int { return p.Size }

// Offset returns the row offset for SQL OFFSET.
func (p Params) Offset() int { return p.Page * p.Size }

// Descending reports whether results should sort in descending order.
func (p Params) Descending() bool { return p.SortDir == "desc" }

// TotalPages returns the number of pages needed for total rows at the
// current page size.
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// OrderColumn resolves a client-supplied sort field against a whitelist of
// field-name to column mappings. Unknown fields fall back to fallback so a
// bad sortBy value can never reach the SQL text.
func OrderColumn(sortBy string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[sortBy]; ok {
		return col
	}
	return fallback
}
