package ozonkw

import (
	"context"
	"time"
)

// Record is one row of Ozon search-queries analytics.
//
// QueryKeyword and ScrapedAt are stamped by the executor at extraction time;
// the remaining fields come from the in-page extraction script verbatim. The
// JSON keys mirror the analytics API payload, so a page-provided value for a
// synthetic key wins over the stamp when the two collide.
type Record struct {
	QueryKeyword          string    `json:"_query_keyword"`
	ScrapedAt             time.Time `json:"_scraped_at"`
	Query                 string    `json:"query"`
	Count                 int       `json:"count"`
	AvgPriceRub           float64   `json:"avgCaRub"`
	AvgItemCount          float64   `json:"avgCountItems"`
	CartConversion        float64   `json:"ca"`
	ItemViews             float64   `json:"itemsViews"`
	UniqueQueriesWithCart float64   `json:"uniqQueriesWCa"`
	UniqueSellers         float64   `json:"uniqSellers"`
}

// Validate returns an error if the record is missing required fields.
// QueryKeyword may legitimately be empty: an empty seed keyword produces an
// unfiltered top-queries view.
func (r *Record) Validate() error {
	if r.Query == "" {
		return Errorf(EINVALID, "record query required")
	}
	if r.ScrapedAt.IsZero() {
		return Errorf(EINVALID, "record scraped-at timestamp required")
	}
	return nil
}

// RecordWriter is the sink for extracted records. The engine emits a lazy
// stream of records; implementations decide how to persist or forward them.
type RecordWriter interface {
	WriteRecord(ctx context.Context, rec *Record) error
}
