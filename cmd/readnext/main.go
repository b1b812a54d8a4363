package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"readnext/pkg/config"
	"readnext/pkg/content"
	"readnext/pkg/crawler"
	"readnext/pkg/db"
	"readnext/pkg/discovery"
	"readnext/pkg/domain"
	"readnext/pkg/feed"
	"readnext/pkg/httpclient"
	"readnext/pkg/logger"
	"readnext/pkg/snapshot"
	"readnext/pkg/sources"
	"readnext/pkg/state"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to YAML config (optional; defaults apply when missing)")
		linksPath  = flag.String("links", "links.txt", "Path to the links catalog")
		cutoffStr  = flag.String("cutoff", "", "Cutoff date in YYYY-MM-DD format (default: 30 days ago)")
		noShots    = flag.Bool("no-screenshots", false, "Skip screenshots (RSS-only mode)")
		workers    = flag.Int("workers", 0, "Concurrent source workers (overrides config when > 0)")
		previewURL = flag.String("preview", "", "Print the readable title and text of one URL, then exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "bad log config: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	if *previewURL != "" {
		if err := runPreview(ctx, cfg, *previewURL); err != nil {
			logger.Errorf("preview failed: %v", err)
			os.Exit(1)
		}
		return
	}

	cutoff, err := resolveCutoff(*cutoffStr, cfg)
	if err != nil {
		logger.Errorf("bad cutoff: %v", err)
		os.Exit(1)
	}

	catalog, err := sources.NewParser().ParseFile(*linksPath)
	if err != nil {
		logger.Errorf("failed to load sources: %v", err)
		os.Exit(1)
	}

	logger.Infof("ReadNext crawler")
	logger.Infof("cutoff date: %s", cutoff.Format("2006-01-02"))
	logger.Infof("found %d sources in %s", len(catalog), *linksPath)

	locator := discovery.NewDefaultLocator(cfg.Crawler.RequestTimeout(), cfg.Crawler.Platforms, cfg.Crawler.WellKnownPaths)
	filter := feed.NewFilter(cfg.Crawler.RequestTimeout())

	var capturer snapshot.Capturer
	if !*noShots {
		capturer = snapshot.NewChromeCapturer(cfg.Snapshot.Dir, cfg.Snapshot.Viewport, cfg.Snapshot.CaptureTimeout())
	}

	poolSize := cfg.Crawler.Workers
	if *workers > 0 {
		poolSize = *workers
	}

	session := crawler.NewSession(
		crawler.New(locator, filter, capturer, cfg.Crawler.SkipHosts),
		poolSize,
	)
	result := session.Run(ctx, catalog, cutoff, !*noShots)

	if err := saveResult(ctx, cfg, result); err != nil {
		logger.Errorf("failed to persist results: %v", err)
		os.Exit(1)
	}
}

// resolveCutoff parses the -cutoff flag, falling back to the configured
// lookback window when the flag is empty.
func resolveCutoff(raw string, cfg config.Config) (time.Time, error) {
	if raw == "" {
		return cfg.Crawler.DefaultCutoff(time.Now()), nil
	}

	cutoff, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q: %w", raw, err)
	}
	return cutoff, nil
}

// saveResult persists the run to the configured backend.
func saveResult(ctx context.Context, cfg config.Config, result *domain.Result) error {
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := store.Save(ctx, result); err != nil {
		return err
	}

	logger.Infof("results written to %s store", cfg.Storage.Backend)
	return nil
}

func buildStore(ctx context.Context, cfg config.Config) (state.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case "json":
		return state.NewJSONStore(cfg.Storage.StateFile), noop, nil

	case "postgres":
		client := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.Storage.Postgres.DSN})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		store := state.NewSQLStore(client)
		if err := store.Init(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return store, func() { _ = client.Close() }, nil

	case "supabase":
		client := db.NewSupabaseClient(db.SupabaseConfig{
			URL:      cfg.Storage.Supabase.URL,
			Key:      cfg.Storage.Supabase.Key,
			Password: cfg.Storage.Supabase.Password,
		})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		store := state.NewSQLStore(client)
		if err := store.Init(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return store, func() { _ = client.Close() }, nil

	case "mongo":
		store, err := state.NewMongoStore(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database, cfg.Storage.Mongo.Collection)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close(ctx) }, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
}

// runPreview fetches one page and prints its readable title and text,
// a quick way to eyeball what a source currently publishes.
func runPreview(ctx context.Context, cfg config.Config, pageURL string) error {
	client := httpclient.NewClient(httpclient.CrawlerClient, cfg.Crawler.RequestTimeout())
	resp, err := client.Get(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	title, err := content.ExtractTitle(string(body))
	if err != nil {
		title = pageURL
	}

	text, err := content.ExtractText(string(body))
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	fmt.Printf("%s\n\n%s\n", title, text)
	return nil
}
