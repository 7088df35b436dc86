package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/amazon-product-scraper/internal/browser"
	"github.com/maltedev/amazon-product-scraper/internal/retry"
	"github.com/maltedev/amazon-product-scraper/internal/scraper"
	"github.com/maltedev/amazon-product-scraper/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	logger := slog.Default()
	metrics := scraper.NewMetrics()
	sessions := session.NewBuilder(nil)

	products := scraper.NewProductScraper(
		sessions,
		browser.DefaultOptions(),
		&retry.Policy{MaxAttempts: 2, BaseDelay: time.Second},
		metrics,
		logger,
	)

	reviews := scraper.NewReviewScraper(
		sessions,
		&retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond},
		&scraper.ReviewOptions{
			MaxPages:       1,
			SampleLimit:    25,
			RequestTimeout: time.Second,
			InterPageMin:   time.Millisecond,
			InterPageMax:   2 * time.Millisecond,
		},
		metrics,
		logger,
	)
	reviews.SetClient(client)

	handlers := NewHandlers(products, reviews, logger)
	return NewRouter(handlers, metrics, logger)
}

func TestScrapeProductRejectsMissingURL(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/product", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrapeProductInvalidURLReturnsErrorPayload(t *testing.T) {
	router := newTestRouter(t)

	body := `{"url": "https://www.amazon.com/s?k=echo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/product", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Controlled failures still answer 200 with an error payload.
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Could not find a valid 10-character ASIN in the URL. Please check the link.", payload["error"])
	assert.NotContains(t, payload, "data")
}

func TestScrapeReviews(t *testing.T) {
	router := newTestRouter(t)

	base := "https://www.amazon.com/product-reviews/B08N5WRWNW"
	pageURL := fmt.Sprintf("%s/ref=cm_cr_getr_d_paging_btm_next_1?pageNumber=1", base)
	httpmock.RegisterResponder("GET", pageURL, httpmock.NewStringResponder(200, `<html><body>
		<span class="review-text">Works great</span>
		<i class="review-rating">5.0 out of 5 stars</i>
	</body></html>`))

	body := fmt.Sprintf(`{"url": %q}`, base)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/reviews", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload ReviewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Reviews, 1)
	assert.Equal(t, "Works great", payload.Reviews[0].Description)
	assert.Equal(t, "5.0 out of 5 stars", payload.Reviews[0].Stars)
	assert.Empty(t, payload.Error)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
