package models

// ProductRecord holds every field extracted from a product detail page.
// Each field carries a defined default so a partial extraction still
// marshals to a complete JSON object.
type ProductRecord struct {
	ASIN               string   `json:"asin"`
	Title              string   `json:"title"`
	Price              string   `json:"price"`
	OriginalPrice      *string  `json:"original_price"`
	DiscountPercentage *string  `json:"discount_percentage"`
	Rating             string   `json:"rating"`
	ReviewCount        string   `json:"reviewCount"`
	Availability       string   `json:"availability"`
	Features           []string `json:"features"`
	Description        string   `json:"description"`
	Images             []string `json:"images"`
}

// NewProductRecord returns a record with every field set to its default.
func NewProductRecord(asin string) *ProductRecord {
	return &ProductRecord{
		ASIN:         asin,
		Title:        "N/A",
		Price:        "N/A",
		Rating:       "0",
		ReviewCount:  "0",
		Availability: "N/A",
		Features:     []string{},
		Description:  "N/A",
		Images:       []string{},
	}
}

// ReviewRecord pairs one review body with its star rating text.
// The exported field names are the wire keys.
type ReviewRecord struct {
	Description string
	Stars       string
}
