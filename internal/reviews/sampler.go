package reviews

import (
	"math/rand"

	"github.com/maltedev/amazon-product-scraper/internal/models"
)

// Sample bounds the review set to limit entries. Inputs at or under the
// limit are returned unchanged in their original order; larger inputs
// are sampled uniformly at random without replacement.
func Sample(reviews []models.ReviewRecord, limit int) []models.ReviewRecord {
	if limit <= 0 || len(reviews) <= limit {
		return reviews
	}

	selected := make([]models.ReviewRecord, 0, limit)
	for _, idx := range rand.Perm(len(reviews))[:limit] {
		selected = append(selected, reviews[idx])
	}

	return selected
}
