package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	stripeWebhookPath = "/payments/stripe/webhook"
	maxWebhookBody    = 64 << 10
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" form:"paymentMethod"`
}

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	// ============================
	// CHECKOUT
	// (session + selected address)
	// ============================
	p := g.Group(paymentPath, middleware.RequireSelectedAddress)

	p.GET("", func(c echo.Context) error {
		sum, err := ps.Summary(middleware.GetSession(c), middleware.GetShopping(c))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, newSummaryView(sum))
	})

	p.POST("", func(c echo.Context) error {
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		res, err := ps.Submit(c.Request().Context(), middleware.GetSession(c), middleware.GetShopping(c), req.PaymentMethod)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// ============================
	// MIDTRANS NOTIFICATION
	// (public)
	// ============================
	g.POST("/payments/notification", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": "invalid payload",
			})
		}

		err := ps.HandleMidtransNotification(c.Request().Context(), payload)
		var f *services.Failure
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
		case errors.As(err, &f):
			// Midtrans retries anything but 200; a bad notification stays bad
			slog.Warn("midtrans notification rejected", slog.String("reason", f.Message))
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": f.Message,
			})
		default:
			// storage failure: let Midtrans retry
			slog.Error("midtrans notification", slog.Any("err", err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	})

	// ============================
	// STRIPE WEBHOOK
	// (public)
	// ============================
	g.POST(stripeWebhookPath, func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		err = ps.HandleStripeEvent(c.Request().Context(), body, c.Request().Header.Get("Stripe-Signature"))
		var f *services.Failure
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
		case errors.Is(err, services.ErrInvalidSignature):
			slog.Warn("stripe event rejected", slog.Any("err", err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.As(err, &f):
			slog.Warn("stripe event ignored", slog.String("reason", f.Message))
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": f.Message,
			})
		default:
			slog.Error("stripe event", slog.Any("err", err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	})
}

// registerConfirmationRoutes serves the screen the checkout redirects to.
func registerConfirmationRoutes(g *echo.Group) {
	g.GET(middleware.ConfirmationPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Thank you! Your order has been placed.",
		})
	})
}
