package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/maltedev/amazon-product-scraper/internal/models"
)

var (
	decimalPattern   = regexp.MustCompile(`(\d+[.,]?\d*)`)
	nonDigitPattern  = regexp.MustCompile(`[^0-9]`)
	imageSizePattern = regexp.MustCompile(`\._AC_.*?_\.`)
)

// placeholderImageMarker identifies blank thumbnail slots.
const placeholderImageMarker = "images/I/01"

// strategy yields a candidate value for one field, or "" when its
// selector does not apply to the document.
type strategy func(doc *goquery.Document) string

// fieldChain is an ordered fallback chain for one product field. The
// first non-empty strategy result wins; exhaustion leaves the default.
type fieldChain struct {
	field      string
	strategies []strategy
	assign     func(rec *models.ProductRecord, value string)
}

// FieldExtractor extracts every product field from a loaded document.
// Extraction never fails as a whole; missing fields keep their defaults.
type FieldExtractor struct {
	chains []fieldChain
	logger *slog.Logger
}

func NewFieldExtractor(logger *slog.Logger) *FieldExtractor {
	return &FieldExtractor{
		chains: productFieldChains(),
		logger: logger.With("component", "field_extractor"),
	}
}

// Extract runs every fallback chain against doc and returns a record that
// is complete regardless of which selectors matched. It is a pure
// function of the document.
func (e *FieldExtractor) Extract(doc *goquery.Document, asin string) *models.ProductRecord {
	record := models.NewProductRecord(asin)

	for _, chain := range e.chains {
		value := ""
		for _, apply := range chain.strategies {
			if v := apply(doc); v != "" {
				value = v
				break
			}
		}
		if value == "" {
			e.logger.Warn("could not extract field, using default", "field", chain.field)
			continue
		}
		chain.assign(record, value)
	}

	record.Features = extractFeatures(doc)
	record.Images = extractImages(doc)

	if len(record.Features) == 0 {
		e.logger.Warn("could not extract field, using default", "field", "features")
	}
	if len(record.Images) == 0 {
		e.logger.Warn("could not extract field, using default", "field", "images")
	}

	return record
}

func productFieldChains() []fieldChain {
	return []fieldChain{
		{
			field: "title",
			strategies: []strategy{
				// The hidden input carries the untruncated title; the
				// visible heading may be shortened for display.
				attrText(`input[name="productTitle"]`, "value"),
				selectorText("span#productTitle"),
				selectorText("#productTitle"),
			},
			assign: func(r *models.ProductRecord, v string) { r.Title = v },
		},
		{
			field: "price",
			strategies: []strategy{
				selectorText("span.a-price .a-offscreen"),
			},
			assign: func(r *models.ProductRecord, v string) { r.Price = v },
		},
		{
			field: "original_price",
			strategies: []strategy{
				selectorText(`span[data-a-strike="true"] span.a-offscreen`),
			},
			assign: func(r *models.ProductRecord, v string) { r.OriginalPrice = &v },
		},
		{
			field: "discount_percentage",
			strategies: []strategy{
				digitsOf(selectorText("span.savingsPercentage")),
			},
			assign: func(r *models.ProductRecord, v string) { r.DiscountPercentage = &v },
		},
		{
			field: "rating",
			strategies: []strategy{
				ratingFromPopover("#acrPopover"),
			},
			assign: func(r *models.ProductRecord, v string) { r.Rating = v },
		},
		{
			field: "reviewCount",
			strategies: []strategy{
				reviewCountText("#acrCustomerReviewText"),
			},
			assign: func(r *models.ProductRecord, v string) { r.ReviewCount = v },
		},
		{
			field: "availability",
			strategies: []strategy{
				selectorText("#availability"),
			},
			assign: func(r *models.ProductRecord, v string) { r.Availability = v },
		},
		{
			field: "description",
			strategies: []strategy{
				selectorText("#productDescription"),
			},
			assign: func(r *models.ProductRecord, v string) { r.Description = v },
		},
	}
}

func selectorText(sel string) strategy {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(sel).First().Text())
	}
}

func attrText(sel, attr string) strategy {
	return func(doc *goquery.Document) string {
		value, _ := doc.Find(sel).First().Attr(attr)
		return strings.TrimSpace(value)
	}
}

func digitsOf(inner strategy) strategy {
	return func(doc *goquery.Document) string {
		return nonDigitPattern.ReplaceAllString(inner(doc), "")
	}
}

// ratingFromPopover parses the decimal rating out of the popover title
// attribute, accepting both "." and "," as decimal separator.
func ratingFromPopover(sel string) strategy {
	return func(doc *goquery.Document) string {
		title, _ := doc.Find(sel).First().Attr("title")
		match := decimalPattern.FindString(title)
		return strings.ReplaceAll(match, ",", ".")
	}
}

// reviewCountText takes the first whitespace-delimited token of the
// review count label and strips everything but digits.
func reviewCountText(sel string) strategy {
	return func(doc *goquery.Document) string {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		fields := strings.Fields(text)
		if len(fields) == 0 {
			return ""
		}
		return nonDigitPattern.ReplaceAllString(fields[0], "")
	}
}

func extractFeatures(doc *goquery.Document) []string {
	features := []string{}
	doc.Find("#feature-bullets ul li span.a-list-item").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			features = append(features, text)
		}
	})
	return features
}

func extractImages(doc *goquery.Document) []string {
	images := []string{}
	doc.Find("#altImages ul li span.a-button-text img").Each(func(i int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" || strings.Contains(src, placeholderImageMarker) {
			return
		}
		images = append(images, imageSizePattern.ReplaceAllString(src, "._AC_SL1500_."))
	})
	return images
}
