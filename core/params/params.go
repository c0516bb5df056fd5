package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

func NewQueryParams(ctx echo.Context) *QueryParams {
	page, err := strconv.Atoi(ctx.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(ctx.QueryParam("limit"))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   size,
		Search:     ctx.QueryParam("search"),
	}
}
