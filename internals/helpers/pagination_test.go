package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func ctxWithQuery(app *fiber.App, query string) *fiber.Ctx {
	req := &fasthttp.RequestCtx{}
	req.Request.SetRequestURI("/?" + query)
	return app.AcquireCtx(req)
}

func TestParsePageParams(t *testing.T) {
	app := fiber.New()

	cases := []struct {
		query    string
		page     int
		paginate int
	}{
		{"", DefaultPage, DefaultPaginate},
		{"page=3&paginate=50", 3, 50},
		{"page=0&paginate=-2", DefaultPage, DefaultPaginate},
		{"page=abc&paginate=xyz", DefaultPage, DefaultPaginate},
		{"paginate=9999", DefaultPage, MaxPaginate},
	}
	for _, tc := range cases {
		c := ctxWithQuery(app, tc.query)
		p := ParsePageParams(c)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.paginate, p.Paginate, tc.query)
		app.ReleaseCtx(c)
	}
}

func TestPageParamsOffsetsAndMeta(t *testing.T) {
	p := PageParams{Page: 3, Paginate: 25}
	assert.Equal(t, 25, p.Limit())
	assert.Equal(t, 50, p.Offset())

	meta := p.BuildPagination(51)
	assert.Equal(t, 3, meta.Page)
	assert.EqualValues(t, 51, meta.TotalResults)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 2, PageParams{Page: 1, Paginate: 25}.BuildPagination(50).TotalPages)
	assert.Equal(t, 0, PageParams{Page: 1, Paginate: 25}.BuildPagination(0).TotalPages)
}
