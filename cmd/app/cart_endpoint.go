package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/services"
	"StorefrontAPI/internal/state"

	"github.com/labstack/echo/v4"
)

// cartMutation is the shape shared by increase, decrease and delete.
type cartMutation func(c echo.Context, shop *state.Shopping, itemID int64) error

func cartItemHandler(do cartMutation) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := lineParam(c, "id")
		if !ok {
			return badID(c)
		}
		shop := middleware.GetShopping(c)
		if err := do(c, shop, id); err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, newCartView(shop.CartItems()))
	}
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")

	// GET cart, refreshed from the backend
	p.GET("", func(c echo.Context) error {
		items, err := cs.Load(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, newCartView(items))
	})

	p.POST("/items/:id/increase", cartItemHandler(func(c echo.Context, shop *state.Shopping, id int64) error {
		return cs.Increase(c.Request().Context(), middleware.GetSession(c), shop, id)
	}))

	p.POST("/items/:id/decrease", cartItemHandler(func(c echo.Context, shop *state.Shopping, id int64) error {
		return cs.Decrease(c.Request().Context(), middleware.GetSession(c), shop, id)
	}))

	p.DELETE("/items/:id", cartItemHandler(func(c echo.Context, shop *state.Shopping, id int64) error {
		return cs.Delete(c.Request().Context(), middleware.GetSession(c), shop, id)
	}))
}
