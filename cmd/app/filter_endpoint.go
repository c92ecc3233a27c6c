package main

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"StorefrontAPI/internal/filter"

	"github.com/labstack/echo/v4"
)

// filterRequest changes one category of the listing filters. The current
// filters travel in the query string of the POST.
type filterRequest struct {
	Category string `json:"category" form:"category"`
	Value    string `json:"value" form:"value"`
	Min      string `json:"min" form:"min"`
	Max      string `json:"max" form:"max"`
}

func (r filterRequest) value() filter.Value {
	if r.Category == filter.PriceRangeKey {
		return filter.RangeValue(parseBound(r.Min), parseBound(r.Max))
	}
	return filter.StringValue(strings.TrimSpace(r.Value))
}

// parseBound keeps an unparsable bound as NaN so the listing ignores the range.
func parseBound(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

func registerFilterRoutes(g *echo.Group) {
	f := g.Group("/products/filter")

	f.POST("", func(c echo.Context) error {
		req := new(filterRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if strings.TrimSpace(req.Category) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
		}
		next := filter.Update(c.QueryParams(), req.Category, req.value())
		return c.Redirect(http.StatusSeeOther, filter.URL(next))
	})

	f.POST("/clear", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, filter.URL(filter.Clear(c.QueryParams())))
	})
}
