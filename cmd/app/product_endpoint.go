package main

import (
	"errors"
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addToCartRequest struct {
	Quantity int `json:"quantity" form:"quantity"`
}

func registerProductRoutes(g *echo.Group, ps *services.ProductService, cs *services.CartService) {
	p := g.Group("/products")

	// LIST with filters from the query string
	p.GET("", func(c echo.Context) error {
		listing, err := ps.List(c.Request().Context(), c.QueryParams())
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, newListingView(listing))
	})

	p.GET("/:id", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		product, err := ps.Get(c.Request().Context(), id)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, newProductView(*product))
	})

	// ADD to cart; the route is public so the check happens here
	p.POST("/:id/cart", func(c echo.Context) error {
		id, ok := idParam(c, "id")
		if !ok {
			return badID(c)
		}
		req := new(addToCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		msg, err := cs.Add(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c), id, req.Quantity)
		if err != nil {
			if errors.Is(err, services.ErrNotAuthenticated) {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    err.Error(),
					"redirect": middleware.LoginPath,
				})
			}
			return respondErr(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": msg})
	})
}
