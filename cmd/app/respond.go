package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// respondErr writes err as {"error": msg}. Failures carry a message that is
// safe to show; anything else is logged and reported generically.
func respondErr(c echo.Context, err error) error {
	var f *services.Failure
	if errors.As(err, &f) {
		return c.JSON(services.StatusOf(err), echo.Map{"error": f.Message})
	}
	slog.Error("request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.Any("err", err),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func idParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// lineParam reads a cart line id. Lines added since the last cart load carry
// negative ids.
func lineParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}
