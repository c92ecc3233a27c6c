package main

import (
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Identifier string `json:"identifier" form:"identifier"` // username or email
	Password   string `json:"password" form:"password"`
}

func loginHandler(as *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		current := middleware.GetSession(c)
		sess, err := as.Login(c.Request().Context(), current.ID, req.Identifier, req.Password)
		if err != nil {
			return respondErr(c, err)
		}
		middleware.SetSession(c, sess)

		return c.JSON(http.StatusOK, echo.Map{
			"role":     sess.Role,
			"fullName": sess.FullName,
			"redirect": middleware.HomePath,
		})
	}
}

func logoutHandler(as *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		current := middleware.GetSession(c)
		if err := as.Logout(c.Request().Context(), current.ID); err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"redirect": middleware.HomePath})
	}
}

func registerHandler(as *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(services.RegisterInput)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		msg, err := as.Register(c.Request().Context(), *req)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message":  msg,
			"redirect": middleware.LoginPath,
		})
	}
}

// sessionHandler reports what the navigation bar needs to know about the caller.
func sessionHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := middleware.GetSession(c)
		if !sess.IsAuthenticated() {
			return c.JSON(http.StatusOK, echo.Map{"isAuthenticated": false})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"isAuthenticated": true,
			"role":            sess.Role,
			"fullName":        sess.FullName,
			"mobileNumber":    sess.MobileNumber,
			"email":           sess.Email,
		})
	}
}

func registerAuthRoutes(g *echo.Group, as *services.AuthService) {
	g.POST("/login", loginHandler(as))
	g.POST("/logout", logoutHandler(as))
	g.POST("/register", registerHandler(as))
	g.GET("/session", sessionHandler())
}
