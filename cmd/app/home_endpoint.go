package main

import (
	"net/http"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerHomeRoutes(g *echo.Group) {
	g.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"productTypes":       services.ProductTypes(),
			"defaultProductType": services.DefaultProductType,
		})
	})

	g.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
