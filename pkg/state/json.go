package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"readnext/pkg/domain"
)

// JSONStore writes each run's result to a single JSON state file,
// replacing the previous run.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store writing to the given file path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// stateFile is the on-disk shape; the cutoff is stored as a bare date
// because that is the granularity the cutoff flag accepts.
type stateFile struct {
	CutoffDate string               `json:"cutoff_date"`
	CrawledAt  time.Time            `json:"crawled_at"`
	Sources    []domain.CrawlRecord `json:"sources"`
}

// Save writes the result, creating parent directories as needed.
func (s *JSONStore) Save(ctx context.Context, result *domain.Result) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(stateFile{
		CutoffDate: result.Cutoff.Format("2006-01-02"),
		CrawledAt:  result.CrawledAt,
		Sources:    result.Records,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
