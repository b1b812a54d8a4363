package state

import (
	"context"
	"encoding/json"
	"fmt"

	"readnext/pkg/db"
	"readnext/pkg/domain"
)

// SQLStore appends each run as a row in Postgres, with the full record
// list as JSONB. It works against any db.DBProvider, so plain Postgres
// and Supabase are both supported.
type SQLStore struct {
	provider db.DBProvider
}

// NewSQLStore creates a store over an already-connected database client
func NewSQLStore(provider db.DBProvider) *SQLStore {
	return &SQLStore{provider: provider}
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS crawl_runs (
	id           BIGSERIAL PRIMARY KEY,
	cutoff       TIMESTAMPTZ NOT NULL,
	crawled_at   TIMESTAMPTZ NOT NULL,
	rss_count    INTEGER NOT NULL,
	shot_count   INTEGER NOT NULL,
	failed_count INTEGER NOT NULL,
	entry_count  INTEGER NOT NULL,
	records      JSONB NOT NULL
)`

// Init creates the runs table when it does not exist yet.
func (s *SQLStore) Init(ctx context.Context) error {
	if _, err := s.provider.DB().ExecContext(ctx, createRunsTable); err != nil {
		return fmt.Errorf("failed to create crawl_runs table: %w", err)
	}
	return nil
}

// Save inserts one row for the run.
func (s *SQLStore) Save(ctx context.Context, result *domain.Result) error {
	records, err := json.Marshal(result.Records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	summary := result.Summarize()
	_, err = s.provider.DB().ExecContext(ctx,
		`INSERT INTO crawl_runs (cutoff, crawled_at, rss_count, shot_count, failed_count, entry_count, records)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.Cutoff, result.CrawledAt,
		summary.RSS, summary.Screenshots, summary.Failed, summary.TotalEntries,
		records,
	)
	if err != nil {
		return fmt.Errorf("failed to insert crawl run: %w", err)
	}
	return nil
}
