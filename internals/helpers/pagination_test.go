package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, target string, opt Options) Params {
	t.Helper()
	var got Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "name", "asc", opt)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return got
}

func TestParseFiberDefaults(t *testing.T) {
	p := parseQuery(t, "/", DefaultOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, "asc", p.SortOrder)
	assert.Equal(t, 0, p.Offset())
}

func TestParseFiberClamps(t *testing.T) {
	p := parseQuery(t, "/?page=3&per_page=9999&order=DESC&sort_by=created_at", DefaultOpts)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 200, p.PerPage)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, 400, p.Offset())

	p = parseQuery(t, "/?page=-2&limit=abc&sort=sideways", AdminOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, "asc", p.SortOrder)

	p = parseQuery(t, "/?limit=10", AdminOpts)
	assert.Equal(t, 10, p.Limit())
}

func TestOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{"name": "full_name", "created_at": "created_at"}
	assert.Equal(t, "created_at DESC", Params{SortBy: "created_at", SortOrder: "desc"}.OrderClause(allowed, "name"))
	assert.Equal(t, "full_name ASC", Params{SortBy: "password; DROP", SortOrder: "asc"}.OrderClause(allowed, "name"))
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(51, Params{Page: 2, PerPage: 25})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasPrev)
	assert.True(t, m.HasNext)

	last := BuildMeta(50, Params{Page: 2, PerPage: 25})
	assert.Equal(t, 2, last.TotalPages)
	assert.False(t, last.HasNext)

	empty := BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
