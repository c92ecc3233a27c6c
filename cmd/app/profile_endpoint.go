package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProfileRoutes(g *echo.Group, as *services.AuthService) {
	p := g.Group("/profile")

	p.GET("", func(c echo.Context) error {
		profile, err := as.Profile(c.Request().Context(), middleware.GetSession(c))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, profile)
	})

	p.PUT("", func(c echo.Context) error {
		in := new(model.UserProfile)
		if err := c.Bind(in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := as.UpdateProfile(c.Request().Context(), middleware.GetSession(c), *in); err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully."})
	})
}
