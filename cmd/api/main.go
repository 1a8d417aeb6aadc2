package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-counter/internal/cart"
	"cafe-counter/internal/config"
	"cafe-counter/internal/database"
	"cafe-counter/internal/handler"
	"cafe-counter/internal/notify"
	"cafe-counter/internal/repository"
	"cafe-counter/internal/router"
	"cafe-counter/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cafe-counter API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	notifyChannel := ""
	if cfg.Realtime.Enabled {
		notifyChannel = cfg.Realtime.Channel
	}

	// Initialize repositories
	menuRepo := repository.NewMenuRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	tableRepo := repository.NewTableRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, notifyChannel, logger)

	// In-memory session carts and order-change fan-out
	carts := cart.NewStore()
	hub := notify.NewHub(logger)

	if cfg.Realtime.Enabled {
		listener := notify.NewListener(cfg.Database.ConnectionString(), cfg.Realtime.Channel, hub, logger)
		go listener.Run(ctx)
	} else {
		logger.Info().Msg("realtime order events disabled")
	}

	// Initialize services
	menuService := service.NewMenuService(menuRepo, logger)
	cartService := service.NewCartService(carts, menuRepo, couponRepo, logger)
	orderService := service.NewOrderService(carts, orderRepo, couponRepo, tableRepo, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	tableService := service.NewTableService(tableRepo, logger)
	contactService := service.NewContactService(contactRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Menu:    handler.NewMenuHandler(menuService, logger),
		Cart:    handler.NewCartHandler(cartService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
		Coupon:  handler.NewCouponHandler(couponService, logger),
		Table:   handler.NewTableHandler(tableService, logger),
		Contact: handler.NewContactHandler(contactService, logger),
		Events:  handler.NewEventsHandler(hub, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.JWTSecret, logger)

	// Create HTTP server. WriteTimeout stays unset so the event stream
	// endpoint can hold connections open.
	server := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
