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

	"github.com/maltedev/amazon-product-scraper/internal/config"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/scraper"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

type errorPayload struct {
	Error string `json:"error"`
}

type reviewPayload struct {
	Description string `json:"Description"`
	Stars       string `json:"Stars"`
}

func main() {
	timeout := flag.Duration("timeout", 3*time.Minute, "Overall deadline for the scrape")
	flag.Parse()

	if flag.NArg() < 1 {
		printJSON(errorPayload{Error: "Please provide the Amazon review URL."})
		os.Exit(1)
	}
	reviewsURL := flag.Arg(0)

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
		MaxAttempts: cfg.Reviews.MaxAttempts,
		BaseDelay:   cfg.Reviews.RetryDelay,
	}
	opts := &scraper.ReviewOptions{
		MaxPages:       cfg.Reviews.MaxPages,
		SampleLimit:    cfg.Reviews.SampleLimit,
		RequestTimeout: cfg.Reviews.RequestTimeout,
		InterPageMin:   cfg.Reviews.InterPageMin,
		InterPageMax:   cfg.Reviews.InterPageMax,
	}

	s := scraper.NewReviewScraper(sessions, policy, opts, scraper.NewMetrics(), logger)

	logger.Info("starting review scraping", "url", reviewsURL)

	records, err := s.Scrape(ctx, reviewsURL)
	if err != nil {
		// Controlled failure: still a well-formed JSON document, exit 0.
		if perr := printJSON(errorPayload{Error: err.Error()}); perr != nil {
			fmt.Fprintf(os.Stderr, "unexpected error: %v\n", perr)
			os.Exit(1)
		}
		return
	}

	payload := make([]reviewPayload, len(records))
	for i, rec := range records {
		payload[i] = reviewPayload(rec)
	}

	if err := printJSON(payload); err != nil {
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
