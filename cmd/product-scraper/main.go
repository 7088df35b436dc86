package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maltedev/amazon-product-scraper/internal/browser"
	"github.com/maltedev/amazon-product-scraper/internal/config"
	"github.com/maltedev/amazon-product-scraper/internal/models"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/scraper"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

func main() {
	var (
		timeout  = flag.Duration("timeout", 3*time.Minute, "Overall deadline for the scrape")
		headless = flag.Bool("headless", true, "Run browser in headless mode")
	)
	flag.Parse()

	// Result JSON goes to stdout; everything diagnostic goes to stderr.
	if flag.NArg() < 1 {
		printJSON(models.FailureOutcome("Please provide the Amazon product URL.", 0))
		os.Exit(1)
	}
	productURL := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	sessions := session.NewBuilder(cfg.Session.UserAgents)
	policy := &retry.Policy{
		MaxAttempts: cfg.Product.MaxAttempts,
		BaseDelay:   cfg.Product.RetryDelay,
	}
	browserOpts := &browser.Options{
		Headless:          *headless && cfg.Browser.Headless,
		NavigationTimeout: cfg.Browser.NavigationTimeout,
		TitleWaitTimeout:  cfg.Browser.TitleWaitTimeout,
	}

	s := scraper.NewProductScraper(sessions, browserOpts, policy, scraper.NewMetrics(), logger)

	outcome := s.Scrape(ctx, productURL)
	if !outcome.OK() {
		logger.Warn("scrape finished with error payload", "attempts", outcome.Attempts)
	}

	if err := printJSON(outcome); err != nil {
		fmt.Fprintf(os.Stderr, "unexpected error: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
