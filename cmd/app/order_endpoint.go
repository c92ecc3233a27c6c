package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type orderView struct {
	model.Order
	FormattedTotal string `json:"formatted_total"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	g.GET("/orders", func(c echo.Context) error {
		orders, err := os.List(c.Request().Context(), middleware.GetSession(c))
		if err != nil {
			return respondErr(c, err)
		}
		out := make([]orderView, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderView{Order: o, FormattedTotal: services.FormatFloat(o.TotalAmount)})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": out})
	})
}
