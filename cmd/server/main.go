package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maltedev/amazon-product-scraper/internal/api"
	"github.com/maltedev/amazon-product-scraper/internal/browser"
	"github.com/maltedev/amazon-product-scraper/internal/config"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/scraper"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	sessions := session.NewBuilder(cfg.Session.UserAgents)
	metrics := scraper.NewMetrics()

	products := scraper.NewProductScraper(
		sessions,
		&browser.Options{
			Headless:          cfg.Browser.Headless,
			NavigationTimeout: cfg.Browser.NavigationTimeout,
			TitleWaitTimeout:  cfg.Browser.TitleWaitTimeout,
		},
		&retry.Policy{MaxAttempts: cfg.Product.MaxAttempts, BaseDelay: cfg.Product.RetryDelay},
		metrics,
		logger,
	)

	reviews := scraper.NewReviewScraper(
		sessions,
		&retry.Policy{MaxAttempts: cfg.Reviews.MaxAttempts, BaseDelay: cfg.Reviews.RetryDelay},
		&scraper.ReviewOptions{
			MaxPages:       cfg.Reviews.MaxPages,
			SampleLimit:    cfg.Reviews.SampleLimit,
			RequestTimeout: cfg.Reviews.RequestTimeout,
			InterPageMin:   cfg.Reviews.InterPageMin,
			InterPageMax:   cfg.Reviews.InterPageMax,
		},
		metrics,
		logger,
	)

	handlers := api.NewHandlers(products, reviews, logger)
	router := api.NewRouter(handlers, metrics, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
