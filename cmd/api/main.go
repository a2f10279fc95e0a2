package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/r70610363/swiftcart-backend/api/routes"
	"github.com/r70610363/swiftcart-backend/internal/banners"
	"github.com/r70610363/swiftcart-backend/internal/cart"
	"github.com/r70610363/swiftcart-backend/internal/catalog"
	"github.com/r70610363/swiftcart-backend/internal/checkout"
	"github.com/r70610363/swiftcart-backend/internal/notifications"
	"github.com/r70610363/swiftcart-backend/internal/orders"
	"github.com/r70610363/swiftcart-backend/internal/otp"
	"github.com/r70610363/swiftcart-backend/internal/payments"
	"github.com/r70610363/swiftcart-backend/internal/session"
	"github.com/r70610363/swiftcart-backend/internal/users"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
	"github.com/r70610363/swiftcart-backend/pkg/metrics"
	"github.com/r70610363/swiftcart-backend/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	store, err := kvstore.New(ctx, cfg.Store, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap the state store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(ctx, "error closing the state store", err)
		}
	}()

	challenges := otp.NewMemoryChallengeStore()
	if cfg.Redis.Configured() {
		redisClient, err := kvstore.RedisFromConfig(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis for otp challenges", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		challenges = otp.NewRedisChallengeStore(redisClient, cfg.OTP.TTL)
	}

	up := upstream.New(cfg.Upstream)
	registry := prometheus.NewRegistry()
	met := metrics.NewStorefrontMetrics(registry)

	catalogService, err := catalog.NewService(ctx, store, up, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(ctx, store, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(ctx, store, up, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(ctx, store, up, cfg.Admin, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create users service", err)
		os.Exit(1)
	}
	otpService, err := otp.NewService(challenges, up, cfg.OTP, cfg.Security, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create otp service", err)
		os.Exit(1)
	}
	bannersService, err := banners.NewService(ctx, store, logg)
	if err != nil {
		logg.Error(ctx, "failed to create banners service", err)
		os.Exit(1)
	}
	notificationsService := notifications.NewService()
	gateway, err := payments.NewGateway(up, cfg.Checkout.SimulateOnFailure, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create payment gateway", err)
		os.Exit(1)
	}
	checkoutService, err := checkout.NewService(ctx, store, cartService, ordersService, gateway, notificationsService, cfg.Checkout, logg, met)
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}
	sessionService, err := session.NewService(ctx, store, usersService, cartService, checkoutService, notificationsService, cfg.JWT, logg)
	if err != nil {
		logg.Error(ctx, "failed to create session service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"store_driver": cfg.Store.Driver,
		"upstream":     up.Enabled(),
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			store,
			registry,
			catalogService,
			cartService,
			ordersService,
			usersService,
			otpService,
			bannersService,
			gateway,
			notificationsService,
			checkoutService,
			sessionService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(runCtx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "graceful shutdown failed", err)
		}
	}
}
