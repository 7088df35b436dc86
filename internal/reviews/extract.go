package reviews

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/amazon-product-scraper/internal/models"
)

// Collect pulls review bodies and star ratings out of the fetched pages
// and pairs them strictly by position across the flattened extraction
// order. When the two lists differ in length only the overlapping prefix
// is paired; trailing unmatched entries are dropped.
func Collect(docs []*goquery.Document) []models.ReviewRecord {
	var texts []string
	var ratings []string

	for _, doc := range docs {
		doc.Find("span.review-text").Each(func(i int, s *goquery.Selection) {
			texts = append(texts, strings.TrimSpace(s.Text()))
		})
		doc.Find("i.review-rating").Each(func(i int, s *goquery.Selection) {
			ratings = append(ratings, strings.TrimSpace(s.Text()))
		})
	}

	n := len(texts)
	if len(ratings) < n {
		n = len(ratings)
	}

	records := make([]models.ReviewRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.ReviewRecord{
			Description: texts[i],
			Stars:       ratings[i],
		})
	}

	return records
}
