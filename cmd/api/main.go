package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quintal/roomdesk/internal/app"
	"github.com/quintal/roomdesk/internal/auth"
	"github.com/quintal/roomdesk/internal/cache"
	"github.com/quintal/roomdesk/internal/clock"
	"github.com/quintal/roomdesk/internal/config"
	"github.com/quintal/roomdesk/internal/notify"
	"github.com/quintal/roomdesk/internal/storage/postgres"
	transporthttp "github.com/quintal/roomdesk/internal/transport/http"
	"github.com/quintal/roomdesk/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Environment)
	defer func() { _ = logger.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	notifier := newNotifier(cfg, logger)
	listingCache := newCache(cfg, logger)

	bookingRepo := postgres.NewBookingRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	clk := clock.NewSystem()
	bookingSvc := app.NewBookingService(bookingRepo, clk, notifier, logger)
	transitionSvc := app.NewTransitionService(bookingRepo, clk, notifier, logger)
	catalogSvc := app.NewCatalogService(catalogRepo, clk, listingCache, cfg.CacheTTL, logger)

	verifier := auth.NewManager(cfg.JWTSecret)

	handler := transporthttp.NewRouter(transporthttp.Services{
		Bookings:    bookingSvc,
		Transitions: transitionSvc,
		Catalog:     catalogSvc,
	}, verifier, cfg.CORSOrigins, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(environment string) *zap.Logger {
	if environment == "development" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}

func newNotifier(cfg config.Config, logger *zap.Logger) notify.Notifier {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP_URL not set, booking events go to the log only")
		return notify.NewLogNotifier(logger)
	}
	notifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		// A broken broker must not block bookings; fall back to logging.
		logger.Error("amqp notifier unavailable, falling back to log", zap.Error(err))
		return notify.NewLogNotifier(logger)
	}
	logger.Info("amqp notifier connected", zap.String("exchange", cfg.AMQPExchange))
	return notifier
}

func newCache(cfg config.Config, logger *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNoop()
	}
	logger.Info("listing cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	return cache.NewRedis(cfg.RedisAddr, logger)
}
