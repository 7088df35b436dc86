package reviews

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/amazon-product-scraper/internal/models"
)

func makeReviews(n int) []models.ReviewRecord {
	reviews := make([]models.ReviewRecord, n)
	for i := range reviews {
		reviews[i] = models.ReviewRecord{
			Description: fmt.Sprintf("review %d", i),
			Stars:       "5.0 out of 5 stars",
		}
	}
	return reviews
}

func TestSampleUnderLimitReturnsInputUnchanged(t *testing.T) {
	reviews := makeReviews(10)

	sampled := Sample(reviews, 25)

	assert.Equal(t, reviews, sampled)
}

func TestSampleAtLimitReturnsInputUnchanged(t *testing.T) {
	reviews := makeReviews(25)

	sampled := Sample(reviews, 25)

	assert.Equal(t, reviews, sampled)
}

func TestSampleOverLimit(t *testing.T) {
	reviews := makeReviews(40)

	sampled := Sample(reviews, 25)

	require.Len(t, sampled, 25)

	seen := map[string]bool{}
	valid := map[string]bool{}
	for _, r := range reviews {
		valid[r.Description] = true
	}

	for _, r := range sampled {
		assert.True(t, valid[r.Description], "sampled review not drawn from input: %q", r.Description)
		assert.False(t, seen[r.Description], "duplicate in sample: %q", r.Description)
		seen[r.Description] = true
	}
}

func TestSampleZeroLimitReturnsInput(t *testing.T) {
	reviews := makeReviews(3)

	assert.Equal(t, reviews, Sample(reviews, 0))
}

func TestSampleEmptyInput(t *testing.T) {
	sampled := Sample(nil, 25)
	assert.Empty(t, sampled)
}
