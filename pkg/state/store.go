// Package state persists crawl results. The JSON file store is the
// default; Postgres (plain or Supabase-hosted) and MongoDB stores exist
// for installations that keep run history queryable.
package state

import (
	"context"

	"readnext/pkg/domain"
)

// Store persists the result of one crawl run.
type Store interface {
	Save(ctx context.Context, result *domain.Result) error
}
