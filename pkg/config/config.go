package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"readnext/pkg/logger"
	"readnext/pkg/snapshot"
)

// Config is the top-level crawler configuration, loaded from YAML and
// overlaid on Default(). Every table in here is fixed for the lifetime
// of a run; the crawl code receives it by value and never mutates it.
type Config struct {
	Crawler  CrawlerConfig  `yaml:"crawler"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      logger.Config  `yaml:"log"`
}

// CrawlerConfig holds the feed discovery and filtering knobs.
type CrawlerConfig struct {
	// TimeoutSeconds bounds every individual fetch and HEAD probe.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// CutoffDays is how far back the default cutoff reaches when no
	// explicit cutoff date is given.
	CutoffDays int `yaml:"cutoff_days"`
	// Workers is the number of sources crawled concurrently.
	Workers int `yaml:"workers"`
	// SkipHosts are hosts (www. stripped) never probed at all.
	SkipHosts []string `yaml:"skip_hosts"`
	// WellKnownPaths are the common feed paths probed as a last resort.
	WellKnownPaths []string `yaml:"well_known_paths"`
	// Platforms maps a host fragment to the suffix appended to a page
	// URL to build that platform's conventional feed URL.
	Platforms map[string]string `yaml:"platforms"`
}

// SnapshotConfig holds the screenshot fallback settings.
type SnapshotConfig struct {
	Dir            string            `yaml:"dir"`
	Viewport       snapshot.Viewport `yaml:"viewport"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// StorageConfig selects where crawl results are persisted.
type StorageConfig struct {
	// Backend is one of: json, postgres, supabase, mongo.
	Backend   string         `yaml:"backend"`
	StateFile string         `yaml:"state_file"`
	Postgres  PostgresConfig `yaml:"postgres"`
	Supabase  SupabaseConfig `yaml:"supabase"`
	Mongo     MongoConfig    `yaml:"mongo"`
}

// PostgresConfig is the DSN for the Postgres results store.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// SupabaseConfig connects the results store to a Supabase project.
type SupabaseConfig struct {
	URL      string `yaml:"url"`
	Key      string `yaml:"key"`
	Password string `yaml:"password"`
}

// MongoConfig is the connection info for the Mongo results store.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Default returns the built-in configuration, matching the defaults the
// crawler has always shipped with.
func Default() Config {
	return Config{
		Crawler: CrawlerConfig{
			TimeoutSeconds: 15,
			CutoffDays:     30,
			Workers:        1,
			SkipHosts:      []string{"nitter.net"},
			WellKnownPaths: []string{"/feed", "/rss", "/rss.xml", "/atom.xml", "/feed.xml", "/index.xml"},
			Platforms: map[string]string{
				"medium.com":   "/feed",
				"substack.com": "/feed",
			},
		},
		Snapshot: SnapshotConfig{
			Dir:            "data/screenshots",
			Viewport:       snapshot.Viewport{Width: 1280, Height: 800},
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			Backend:   "json",
			StateFile: "data/crawl_state.json",
			Mongo: MongoConfig{
				Database:   "readnext",
				Collection: "crawls",
			},
		},
		Log: logger.Config{Level: "info"},
	}
}

// Load reads a YAML config file and overlays it on the defaults. An
// unreadable or invalid file is an error; a missing path returns the
// defaults untouched when allowMissing is set.
func Load(path string, allowMissing bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be positive")
	}
	if c.Crawler.CutoffDays <= 0 {
		return fmt.Errorf("crawler.cutoff_days must be positive")
	}
	switch c.Storage.Backend {
	case "json", "postgres", "supabase", "mongo":
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	return nil
}

// RequestTimeout is the per-request timeout as a duration.
func (c CrawlerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultCutoff computes the cutoff instant used when the caller gives
// no explicit date: now minus the configured lookback window.
func (c CrawlerConfig) DefaultCutoff(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -c.CutoffDays)
}

// CaptureTimeout is the per-screenshot timeout as a duration.
func (c SnapshotConfig) CaptureTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
