package models

// ScrapeOutcome is the terminal result of one product scrape invocation.
// Exactly one of Data or Error is set.
type ScrapeOutcome struct {
	Data     *ProductRecord `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Attempts int            `json:"-"`
}

func SuccessOutcome(record *ProductRecord) *ScrapeOutcome {
	return &ScrapeOutcome{Data: record}
}

func FailureOutcome(message string, attempts int) *ScrapeOutcome {
	return &ScrapeOutcome{Error: message, Attempts: attempts}
}

// OK reports whether the outcome carries a product record.
func (o *ScrapeOutcome) OK() bool {
	return o.Data != nil
}
