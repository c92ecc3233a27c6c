package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"StorefrontAPI/external/abstractapi"
	"StorefrontAPI/external/backend"
	"StorefrontAPI/external/midtrans"
	"StorefrontAPI/external/resend"
	"StorefrontAPI/external/stripe"
	"StorefrontAPI/internal/db"
	"StorefrontAPI/internal/middleware"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"
	"StorefrontAPI/internal/services"
	"StorefrontAPI/internal/state"
	"StorefrontAPI/pkg/config"
	"StorefrontAPI/pkg/logger"
	"StorefrontAPI/pkg/shutdown"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

var errMissingSecret = errors.New("SESSION_SECRET is required in production")

// sessionPurger is implemented by both session repositories.
type sessionPurger interface {
	DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

type application struct {
	tokens   *middleware.SessionTokens
	registry *state.Registry
	auth     *services.AuthService
	products *services.ProductService
	cart     *services.CartService
	address  *services.AddressService
	payments *services.PaymentService
	orders   *services.OrderService

	corsOrigins []string
}

func main() {
	cfg := config.Load()
	logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg); err != nil {
		slog.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	secret := cfg.SessionSecret
	if secret == "" {
		if cfg.Production() {
			return errMissingSecret
		}
		slog.Warn("SESSION_SECRET not set, sessions will not survive a restart")
		secret = uuid.NewString()
	}

	// ======================
	// INFRA
	// ======================
	var (
		sessions services.SessionStore
		purger   sessionPurger
		payStore services.PaymentStore
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}

		// ======================
		// REPOSITORIES
		// ======================
		sessionRepo := repository.NewSessionRepository(pool)
		sessions, purger = sessionRepo, sessionRepo
		payStore = repository.NewPaymentRepository(pool)
	} else {
		slog.Info("DATABASE_URL not set, keeping sessions and payments in memory")
		sessionRepo := repository.NewMemorySessionRepository()
		sessions, purger = sessionRepo, sessionRepo
		payStore = repository.NewMemoryPaymentRepository()
	}

	// ======================
	// EXTERNALS
	// ======================
	api := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	registry := state.NewRegistry()

	// ======================
	// SERVICES
	// ======================
	paymentSvc := services.NewPaymentService(api, payStore, cfg.MidtransServerKey)
	if cfg.StripeSecretKey != "" {
		paymentSvc.UseGateway(stripe.NewCardGateway(cfg.StripeSecretKey), model.PaymentCard)
		paymentSvc.StripeWebhookSecret = cfg.StripeWebhookSecret
		if cfg.StripeWebhookSecret == "" {
			slog.Warn("STRIPE_WEBHOOK_SECRET not set, card payments will stay pending")
		}
	}
	if cfg.MidtransServerKey != "" {
		snapGw := midtrans.NewSnapGateway(cfg.MidtransServerKey, cfg.Production())
		paymentSvc.UseGateway(snapGw, model.PaymentUPI, model.PaymentNetBanking, model.PaymentWallet)
	}

	if cfg.ResendAPIKey != "" {
		paymentSvc.Mailer = resend.NewMailer(cfg.ResendAPIKey, cfg.MailFrom)
	}

	authSvc := services.NewAuthService(api, sessions, registry)
	if cfg.AbstractEmailAPIKey != "" {
		authSvc.Emails = abstractapi.NewReputationValidator(cfg.AbstractEmailAPIKey)
	}

	app := &application{
		tokens:      middleware.NewSessionTokens(secret, cfg.SessionTTL),
		registry:    registry,
		auth:        authSvc,
		products:    services.NewProductService(api),
		cart:        services.NewCartService(api, cfg.CartFetchConcurrency),
		address:     services.NewAddressService(api),
		payments:    paymentSvc,
		orders:      services.NewOrderService(api),
		corsOrigins: cfg.CORSOrigins,
	}

	go registry.RunSweeper(ctx, sweepInterval, cfg.SessionTTL)
	go purgeSessions(ctx, purger, sweepInterval, cfg.SessionTTL)

	// ======================
	// SERVER
	// ======================
	e := newEcho(app)
	addr := ":" + strconv.Itoa(cfg.HTTPPort)
	slog.Info("listening", slog.String("addr", addr), slog.String("backend", cfg.BackendURL))

	return shutdown.Serve(ctx,
		func() error { return e.Start(addr) },
		e.Shutdown,
		shutdownTimeout,
	)
}

func newEcho(app *application) *echo.Echo {
	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	if len(app.corsOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     app.corsOrigins,
			AllowCredentials: true,
		}))
	}
	e.Use(middleware.SessionMiddleware(app.tokens, app.auth, app.registry))
	e.Use(middleware.Guard())

	root := e.Group("")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerHomeRoutes(root)
	registerAuthRoutes(root, app.auth)
	registerFilterRoutes(root)
	registerProductRoutes(root, app.products, app.cart)
	registerCartRoutes(root, app.cart)
	registerAddressRoutes(root, app.address)
	registerManageAddressRoutes(root, app.address)
	registerPaymentRoutes(root, app.payments)
	registerConfirmationRoutes(root)
	registerProfileRoutes(root, app.auth)
	registerOrderRoutes(root, app.orders)
	registerAdminProductRoutes(root, app.products)

	return e
}

// purgeSessions deletes stored sessions untouched for longer than ttl.
func purgeSessions(ctx context.Context, store sessionPurger, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := store.DeleteIdle(ctx, now.Add(-ttl))
			if err != nil {
				slog.Error("purge sessions", slog.Any("err", err))
				continue
			}
			if n > 0 {
				slog.Debug("sessions purged", slog.Int64("deleted", n))
			}
		}
	}
}
