package sqlite

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/msaveliev/ozonkw"
)

// Compile-time interface verification.
var _ ozonkw.RecordWriter = (*RecordService)(nil)

// RecordService persists extracted records. All writes of one service share
// a run ID; identical rows within a run are written once (the crawl may
// legitimately observe the same analytics row from two expansions).
type RecordService struct {
	db    *DB
	runID string
}

// NewRecordService creates a RecordService with a fresh run ID.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{
		db:    db,
		runID: uuid.New().String(),
	}
}

// RunID returns the identifier stamped on every record of this service.
func (s *RecordService) RunID() string {
	return s.runID
}

// hashRecord computes a content hash over the fields that identify a row
// within a run. ScrapedAt is excluded: the same analytics row re-observed
// seconds later is still the same row.
func hashRecord(rec *ozonkw.Record) string {
	h := xxhash.New()
	_, _ = h.WriteString(rec.QueryKeyword)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(rec.Query)
	_, _ = fmt.Fprintf(h, "\x00%d", rec.Count)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteRecord persists one record, ignoring exact duplicates within the run.
func (s *RecordService) WriteRecord(ctx context.Context, rec *ozonkw.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO search_queries (
			id, run_id, row_hash, query_keyword, scraped_at, query, count,
			avg_price_rub, avg_item_count, cart_conversion, item_views,
			uniq_queries_with_cart, uniq_sellers
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.runID, hashRecord(rec),
		rec.QueryKeyword, rec.ScrapedAt.UTC().Format(time.RFC3339Nano),
		rec.Query, rec.Count, rec.AvgPriceRub, rec.AvgItemCount,
		rec.CartConversion, rec.ItemViews, rec.UniqueQueriesWithCart,
		rec.UniqueSellers)

	return err
}

// RecordsByRun returns the records persisted for a run, in insertion order.
func (s *RecordService) RecordsByRun(ctx context.Context, runID string) ([]*ozonkw.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query_keyword, scraped_at, query, count,
		       avg_price_rub, avg_item_count, cart_conversion, item_views,
		       uniq_queries_with_cart, uniq_sellers
		FROM search_queries
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ozonkw.Record
	for rows.Next() {
		var rec ozonkw.Record
		var scrapedAt string
		err := rows.Scan(&rec.QueryKeyword, &scrapedAt, &rec.Query, &rec.Count,
			&rec.AvgPriceRub, &rec.AvgItemCount, &rec.CartConversion,
			&rec.ItemViews, &rec.UniqueQueriesWithCart, &rec.UniqueSellers)
		if err != nil {
			return nil, err
		}
		rec.ScrapedAt, err = time.Parse(time.RFC3339Nano, scrapedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
