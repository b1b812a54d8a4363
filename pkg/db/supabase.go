package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds what is needed to connect to a Supabase project.
// The crawl results land in the project's Postgres database; the SDK
// client is kept around for the project's REST surface.
type SupabaseConfig struct {
	// URL is the Supabase project URL, e.g. "https://[ref].supabase.co".
	URL string
	// Key is the project API key (service_role for server-side writes).
	Key string
	// Password is the database password, used to build the direct
	// Postgres connection string.
	Password string
}

// SupabaseClient provides access to Supabase Postgres and the SDK.
// It satisfies DBProvider, so the SQL results store runs against it
// exactly as it does against a plain PostgresClient.
type SupabaseClient struct {
	db  *sql.DB
	sdk *supabase.Client
	cfg SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client; call Connect before use.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the SDK client and the direct Postgres connection.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.URL != "" && c.cfg.Key != "" {
		sdkClient, err := supabase.NewClient(c.cfg.URL, c.cfg.Key, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.sdk = sdkClient
	}

	connStr, err := c.buildConnectionString()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle for direct database operations.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// SDK returns the Supabase SDK client, or nil when no URL/key was given.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.sdk
}

// buildConnectionString derives the direct Postgres connection string
// from the project URL and database password.
func (c *SupabaseClient) buildConnectionString() (string, error) {
	if c.cfg.URL == "" {
		return "", fmt.Errorf("supabase URL is required")
	}
	if c.cfg.Password == "" {
		return "", fmt.Errorf("supabase password is required")
	}

	// URL format: https://[project-ref].supabase.co
	parsedURL, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	// Prepared statement cache off; Supabase's pooler dislikes it.
	encodedPassword := url.QueryEscape(c.cfg.Password)
	return fmt.Sprintf(
		"postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require&statement_cache_capacity=0",
		encodedPassword, projectRef,
	), nil
}
