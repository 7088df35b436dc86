package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/amazon-product-scraper/internal/models"
	"github.com/maltedev/amazon-product-scraper/internal/ratelimit"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/reviews"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

// ErrNoPages indicates no review page could be retrieved at all.
var ErrNoPages = errors.New("No data retrieved from any pages.")

// ReviewScraper pulls review listing pages over plain HTTP, extracts the
// review/rating pairs and bounds the result to a fixed sample size.
type ReviewScraper struct {
	client       *http.Client
	sessions     *session.Builder
	policy       *retry.Policy
	maxPages     int
	sampleLimit  int
	interPageMin time.Duration
	interPageMax time.Duration
	metrics      *Metrics
	logger       *slog.Logger
}

type ReviewOptions struct {
	MaxPages       int
	SampleLimit    int
	RequestTimeout time.Duration
	InterPageMin   time.Duration
	InterPageMax   time.Duration
}

func DefaultReviewOptions() *ReviewOptions {
	return &ReviewOptions{
		MaxPages:       3,
		SampleLimit:    25,
		RequestTimeout: 30 * time.Second,
		InterPageMin:   500 * time.Millisecond,
		InterPageMax:   1500 * time.Millisecond,
	}
}

func NewReviewScraper(sessions *session.Builder, policy *retry.Policy, opts *ReviewOptions, metrics *Metrics, logger *slog.Logger) *ReviewScraper {
	if opts == nil {
		opts = DefaultReviewOptions()
	}
	return &ReviewScraper{
		client:       &http.Client{Timeout: opts.RequestTimeout},
		sessions:     sessions,
		policy:       policy,
		maxPages:     opts.MaxPages,
		sampleLimit:  opts.SampleLimit,
		interPageMin: opts.InterPageMin,
		interPageMax: opts.InterPageMax,
		metrics:      metrics,
		logger:       logger.With("component", "review_scraper"),
	}
}

// SetClient replaces the HTTP client. Used by tests.
func (s *ReviewScraper) SetClient(client *http.Client) {
	s.client = client
}

// Scrape fetches up to maxPages review pages and returns at most
// sampleLimit review records. ErrNoPages is returned when not a single
// page could be retrieved.
func (s *ReviewScraper) Scrape(ctx context.Context, baseURL string) ([]models.ReviewRecord, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDuration("reviews", time.Since(start)) }()

	limiter := ratelimit.New(s.interPageMin, s.interPageMax)
	paginator := reviews.NewPaginator(baseURL, s.maxPages, s.client, s.sessions, s.policy, limiter, s.logger)

	var docs []*goquery.Document
	for {
		s.metrics.IncAttempt("reviews")
		doc, err := paginator.Next(ctx)
		if err != nil {
			s.metrics.IncOutcome("reviews", "failure")
			return nil, err
		}
		if doc == nil {
			break
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		s.metrics.IncOutcome("reviews", "failure")
		return nil, ErrNoPages
	}

	all := reviews.Collect(docs)
	s.logger.Info("extracted reviews", "count", len(all), "pages", len(docs))

	sampled := reviews.Sample(all, s.sampleLimit)
	s.metrics.AddSampled(len(sampled))
	s.metrics.IncOutcome("reviews", "success")

	return sampled, nil
}
