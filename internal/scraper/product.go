package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/maltedev/amazon-product-scraper/internal/asin"
	"github.com/maltedev/amazon-product-scraper/internal/browser"
	"github.com/maltedev/amazon-product-scraper/internal/models"
	"github.com/maltedev/amazon-product-scraper/internal/parser"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

var (
	ErrBlocked     = errors.New("blocked by anti-bot protection")
	ErrRateLimited = errors.New("rate limited by target")
)

// ProductScraper runs the end-to-end product extraction: build a hardened
// browser session, load the page, extract every field. It owns the
// attempt loop; a fresh session is acquired per attempt and released on
// every exit path.
type ProductScraper struct {
	sessions    *session.Builder
	browserOpts *browser.Options
	extractor   *parser.FieldExtractor
	policy      *retry.Policy
	preNavDelay time.Duration
	metrics     *Metrics
	logger      *slog.Logger
}

func NewProductScraper(sessions *session.Builder, browserOpts *browser.Options, policy *retry.Policy, metrics *Metrics, logger *slog.Logger) *ProductScraper {
	return &ProductScraper{
		sessions:    sessions,
		browserOpts: browserOpts,
		extractor:   parser.NewFieldExtractor(logger),
		policy:      policy,
		preNavDelay: time.Second,
		metrics:     metrics,
		logger:      logger.With("component", "product_scraper"),
	}
}

// Scrape resolves the ASIN and runs the bounded attempt loop. Controlled
// failures are reported through the outcome, never as an error.
func (s *ProductScraper) Scrape(ctx context.Context, url string) *models.ScrapeOutcome {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration("product", time.Since(start)) }()

	id, err := asin.Resolve(url)
	if err != nil {
		s.metrics.IncOutcome("product", "invalid_input")
		return models.FailureOutcome(err.Error(), 0)
	}

	var lastErr error
	attempts := 0

	for attempt := 0; attempt < s.policy.MaxAttempts; attempt++ {
		attempts = attempt + 1
		s.metrics.IncAttempt("product")
		s.logger.Info("attempting to scrape product", "asin", id, "attempt", attempts, "maxAttempts", s.policy.MaxAttempts)

		record, err := s.attempt(ctx, url, id)
		if err == nil {
			s.metrics.IncOutcome("product", "success")
			return models.SuccessOutcome(record)
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}

		class := retry.Classify(err)
		s.logger.Warn("scrape attempt failed", "asin", id, "attempt", attempts, "class", class.String(), "error", err)

		if !s.policy.ShouldRetry(attempt, class) {
			break
		}

		delay := retry.Jitter(s.policy.DelayFor(attempt))
		s.logger.Info("retrying after backoff", "asin", id, "delay", delay)
		s.metrics.IncRetry("product")
		if err := retry.Sleep(ctx, delay); err != nil {
			lastErr = err
			break
		}
	}

	s.metrics.IncOutcome("product", "failure")
	return models.FailureOutcome(s.failureMessage(url, lastErr, attempts), attempts)
}

// attempt runs a single session-scoped scrape. The browser is closed on
// every return path so no session leaks across retries.
func (s *ProductScraper) attempt(ctx context.Context, url, id string) (*models.ProductRecord, error) {
	sess := s.sessions.Build()

	b, err := browser.New(sess, s.browserOpts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer b.Close()

	page, err := b.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// Short randomized pause before navigation.
	if err := retry.Sleep(ctx, retry.Jitter(s.preNavDelay)); err != nil {
		return nil, err
	}

	if err := b.LoadProductPage(page, url); err != nil {
		return nil, s.classifyLoadFailure(page, err)
	}

	if err := retry.Sleep(ctx, retry.Jitter(s.preNavDelay/2)); err != nil {
		return nil, err
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return s.extractor.Extract(doc, id), nil
}

// classifyLoadFailure inspects whatever rendered before the load failed
// so anti-bot interstitials surface as blocking errors instead of generic
// timeouts.
func (s *ProductScraper) classifyLoadFailure(page playwright.Page, cause error) error {
	html, err := page.Content()
	if err != nil {
		return cause
	}
	lower := strings.ToLower(html)
	switch {
	case strings.Contains(lower, "captcha") || strings.Contains(lower, "robot check"):
		return fmt.Errorf("%w: %v", ErrBlocked, cause)
	case strings.Contains(lower, "too many requests") || strings.Contains(lower, "rate limit"):
		return fmt.Errorf("%w: %v", ErrRateLimited, cause)
	}
	return cause
}

func (s *ProductScraper) failureMessage(url string, err error, attempts int) string {
	if err == nil {
		return fmt.Sprintf("Failed after %d attempts", attempts)
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return fmt.Sprintf("Timeout while loading page after %d attempts: %s. The page may be blocked or too slow.", attempts, url)
	}
	return fmt.Sprintf("Failed after %d attempts: %v", attempts, err)
}
