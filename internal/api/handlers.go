package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/maltedev/amazon-product-scraper/internal/models"
	"github.com/maltedev/amazon-product-scraper/internal/scraper"
)

type Handlers struct {
	products *scraper.ProductScraper
	reviews  *scraper.ReviewScraper
	logger   *slog.Logger
}

func NewHandlers(products *scraper.ProductScraper, reviews *scraper.ReviewScraper, logger *slog.Logger) *Handlers {
	return &Handlers{
		products: products,
		reviews:  reviews,
		logger:   logger,
	}
}

// ScrapeRequest carries the single target URL for either path.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ReviewsResponse wraps the sampled review records.
type ReviewsResponse struct {
	Reviews []ReviewItem `json:"reviews,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type ReviewItem struct {
	Description string `json:"Description"`
	Stars       string `json:"Stars"`
}

// ScrapeProduct runs the product pipeline for one URL. Controlled scrape
// failures still answer 200 with an error payload; only malformed
// requests are rejected.
func (h *Handlers) ScrapeProduct(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	outcome := h.products.Scrape(r.Context(), req.URL)
	if !outcome.OK() {
		h.logger.Warn("product scrape failed", "requestID", RequestID(r.Context()), "url", req.URL, "attempts", outcome.Attempts)
	}

	h.respondJSON(w, http.StatusOK, outcome)
}

// ScrapeReviews runs the review pipeline for one listing URL.
func (h *Handlers) ScrapeReviews(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	records, err := h.reviews.Scrape(r.Context(), req.URL)
	if err != nil {
		h.logger.Warn("review scrape failed", "requestID", RequestID(r.Context()), "url", req.URL, "error", err)
		h.respondJSON(w, http.StatusOK, ReviewsResponse{Error: err.Error()})
		return
	}

	items := make([]ReviewItem, len(records))
	for i, rec := range records {
		items[i] = ReviewItem(rec)
	}

	h.respondJSON(w, http.StatusOK, ReviewsResponse{Reviews: items})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.FailureOutcome(message, 0))
}
