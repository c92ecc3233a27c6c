package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerManageAddressRoutes(g *echo.Group, as *services.AddressService) {
	m := g.Group("/manage_address")

	m.GET("", func(c echo.Context) error {
		list, err := as.List(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"addresses": list})
	})

	m.POST("", func(c echo.Context) error {
		in := new(model.AddressInput)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		list, err := as.Create(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c), *in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message":   "Address saved successfully.",
			"addresses": list,
		})
	})

	m.PUT("/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		in := new(model.AddressInput)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		list, err := as.Edit(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c), id, *in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "Address updated successfully.",
			"addresses": list,
		})
	})

	m.DELETE("/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		list, err := as.Delete(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c), id)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "Address deleted successfully.",
			"addresses": list,
		})
	})
}
