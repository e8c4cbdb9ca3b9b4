package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Options bounds the page size a listing accepts.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = Options{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = Options{DefaultPerPage: 50, MaxPerPage: 500}
)

// Params is a parsed ?page&per_page&sort_by&order query.
type Params struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

func queryInt(c *fiber.Ctx, keys ...string) int {
	for _, k := range keys {
		if n, err := strconv.Atoi(strings.TrimSpace(c.Query(k))); err == nil {
			return n
		}
	}
	return 0
}

func sortOrder(raw, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return "asc"
	case "desc":
		return "desc"
	}
	if fallback == "desc" {
		return "desc"
	}
	return "asc"
}

// ParseFiber reads page, per_page (or limit), sort_by and order (or sort).
// Out of range values are clamped rather than rejected.
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	p := Params{
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page", "limit"),
		SortBy:  strings.TrimSpace(c.Query("sort_by")),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = opt.DefaultPerPage
	}
	if p.PerPage > opt.MaxPerPage {
		p.PerPage = opt.MaxPerPage
	}
	if p.SortBy == "" {
		p.SortBy = defaultSortBy
	}

	order := c.Query("order")
	if order == "" {
		order = c.Query("sort")
	}
	p.SortOrder = sortOrder(order, strings.ToLower(defaultSortOrder))
	return p
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// OrderClause maps SortBy through the whitelist; unknown keys fall back to defaultKey.
func (p Params) OrderClause(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	if p.SortOrder == "desc" {
		return col + " DESC"
	}
	return col + " ASC"
}

// Meta is returned next to paginated lists.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func BuildMeta(total int64, p Params) Meta {
	pages := 0
	if p.PerPage > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
