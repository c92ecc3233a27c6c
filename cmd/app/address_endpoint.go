package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"
	"StorefrontAPI/internal/state"

	"github.com/labstack/echo/v4"
)

const paymentPath = "/payment"

func selectedID(shop *state.Shopping) int64 {
	if a, ok := shop.SelectedAddress(); ok {
		return a.ID
	}
	return 0
}

// registerAddressRoutes serves the checkout address step.
func registerAddressRoutes(g *echo.Group, as *services.AddressService) {
	a := g.Group("/address")

	a.GET("", func(c echo.Context) error {
		shop := middleware.GetShopping(c)
		list, err := as.List(c.Request().Context(), middleware.GetSession(c), shop)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"addresses":  list,
			"selectedId": selectedID(shop),
		})
	})

	// ADD and select
	a.POST("", func(c echo.Context) error {
		in := new(model.AddressInput)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		shop := middleware.GetShopping(c)
		addr, err := as.AddAndSelect(c.Request().Context(), middleware.GetSession(c), shop, *in)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"address":   addr,
			"addresses": shop.Addresses(),
		})
	})

	a.POST("/select/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		addr, err := as.Select(middleware.GetShopping(c), id)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"selectedId": addr.ID})
	})

	a.POST("/proceed", func(c echo.Context) error {
		if _, err := as.Proceed(middleware.GetShopping(c)); err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"redirect": paymentPath})
	})
}
