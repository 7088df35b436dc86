package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/amazon-product-scraper/internal/ratelimit"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

// Paginator walks successive review listing pages. It yields one parsed
// document at a time and is not restartable; a failed page ends the
// sequence rather than being skipped.
type Paginator struct {
	baseURL  string
	maxPages int
	client   *http.Client
	sessions *session.Builder
	policy   *retry.Policy
	limiter  *ratelimit.Limiter
	logger   *slog.Logger

	page int
	done bool
}

func NewPaginator(baseURL string, maxPages int, client *http.Client, sessions *session.Builder, policy *retry.Policy, limiter *ratelimit.Limiter, logger *slog.Logger) *Paginator {
	return &Paginator{
		baseURL:  baseURL,
		maxPages: maxPages,
		client:   client,
		sessions: sessions,
		policy:   policy,
		limiter:  limiter,
		logger:   logger.With("component", "review_paginator"),
	}
}

// Next fetches the next review page. It returns (nil, nil) once the page
// limit is reached or a page could not be retrieved; a failed page is
// treated as "no more pages".
func (p *Paginator) Next(ctx context.Context) (*goquery.Document, error) {
	if p.done || p.page >= p.maxPages {
		return nil, nil
	}

	// Inter-page delay between successful pages, never before the first.
	if p.page > 0 {
		if err := p.limiter.Wait(ctx); err != nil {
			p.done = true
			return nil, err
		}
	}

	p.page++
	url := fmt.Sprintf("%s/ref=cm_cr_getr_d_paging_btm_next_%d?pageNumber=%d", p.baseURL, p.page, p.page)

	p.logger.Info("scraping review page", "page", p.page, "maxPages", p.maxPages)

	doc, err := p.fetchWithRetry(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			p.done = true
			return nil, ctx.Err()
		}
		p.logger.Warn("failed to retrieve page, stopping pagination", "page", p.page, "error", err)
		p.done = true
		return nil, nil
	}

	return doc, nil
}

func (p *Paginator) fetchWithRetry(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error

	for attempt := 0; attempt < p.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := retry.Jitter(p.policy.DelayFor(attempt - 1))
			p.logger.Info("retrying review page fetch", "attempt", attempt+1, "delay", delay)
			if err := retry.Sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		doc, err := p.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}

		lastErr = err
		class := retry.Classify(err)
		p.logger.Warn("review page fetch failed", "attempt", attempt+1, "class", class.String(), "error", err)

		if !p.policy.ShouldRetry(attempt, class) {
			break
		}
	}

	return nil, lastErr
}

func (p *Paginator) fetchOnce(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	p.sessions.Build().ApplyHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
