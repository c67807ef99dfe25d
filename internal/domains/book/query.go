package book

import (
	"strconv"
	"strings"
)

// Pagination and sorting bounds for the search endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// sortColumns whitelists the sortable fields and maps them to their
// database columns. Anything outside the whitelist silently falls back
// to the default.
var sortColumns = map[string]string{
	"title":         "b.title",
	"publishedYear": "b.published_year",
	"createdAt":     "b.created_at",
}

const defaultSortColumn = "b.created_at"

// SearchParams carries the raw, untrusted query parameters exactly as
// received. All coercion happens in BuildSearchQuery and nowhere else.
type SearchParams struct {
	Search     string
	Genre      string
	AuthorName string
	Page       string
	Limit      string
	SortBy     string
	Order      string
}

// SearchQuery is the validated, bounded query descriptor. Everything
// downstream of BuildSearchQuery consumes typed values only.
type SearchQuery struct {
	Search     string // case-insensitive substring on title
	Genre      string // exact match
	AuthorName string // case-insensitive substring on author name

	Page   int
	Limit  int
	Offset int

	SortColumn string // whitelisted database column
	SortDesc   bool
}

// BuildSearchQuery converts raw request parameters into a safe
// descriptor. It never fails: malformed pagination input coerces to the
// defaults, unknown sort fields and directions fall back silently.
func BuildSearchQuery(params SearchParams) SearchQuery {
	page := parsePositiveInt(params.Page, DefaultPage)
	limit := parsePositiveInt(params.Limit, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortColumn, ok := sortColumns[params.SortBy]
	if !ok {
		sortColumn = defaultSortColumn
	}

	return SearchQuery{
		Search:     strings.TrimSpace(params.Search),
		Genre:      strings.TrimSpace(params.Genre),
		AuthorName: strings.TrimSpace(params.AuthorName),
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		SortColumn: sortColumn,
		SortDesc:   params.Order != "asc",
	}
}

// parsePositiveInt parses s as a positive integer, falling back to def
// for anything non-numeric or below 1.
func parsePositiveInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// EscapeLike escapes ILIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
