package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage     = 1
	DefaultPaginate = 25
	MaxPaginate     = 200
)

// PageParams is the parsed page/paginate pair used by every list endpoint.
// Query names follow the API surface: ?page=2&paginate=50.
type PageParams struct {
	Page     int
	Paginate int
}

func ParsePageParams(c *fiber.Ctx) PageParams {
	page := atoiDefault(strings.TrimSpace(c.Query("page")), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	per := atoiDefault(strings.TrimSpace(c.Query("paginate")), DefaultPaginate)
	if per < 1 {
		per = DefaultPaginate
	}
	if per > MaxPaginate {
		per = MaxPaginate
	}
	return PageParams{Page: page, Paginate: per}
}

func (p PageParams) Limit() int  { return p.Paginate }
func (p PageParams) Offset() int { return (p.Page - 1) * p.Paginate }

// BuildPagination computes the meta block from the total row count.
func (p PageParams) BuildPagination(total int64) Pagination {
	pages := int(total) / p.Paginate
	if int(total)%p.Paginate != 0 {
		pages++
	}
	return Pagination{
		Page:         p.Page,
		Paginate:     p.Paginate,
		TotalResults: total,
		TotalPages:   pages,
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
