package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/docpath"
)

// Config represents the docnav configuration file.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Store   StoreConfig   `yaml:"store"`
	Content ContentConfig `yaml:"content"`
	Routes  RoutesConfig  `yaml:"routes"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig holds presentation strings for the home route.
type SiteConfig struct {
	Name         string `yaml:"name"` // Prefix used for document titles ("Name | Title")
	HomeTitle    string `yaml:"home_title"`
	HomeEyebrow  string `yaml:"home_eyebrow"`
	HomeSubtitle string `yaml:"home_subtitle"`
}

// StoreConfig selects the document store. Exactly one of BaseURL or Dir is set.
type StoreConfig struct {
	BaseURL  string        `yaml:"base_url,omitempty"` // Remote static host, documents fetched over HTTP GET
	Dir      string        `yaml:"dir,omitempty"`      // Local checkout served through an fs.FS
	Timeout  time.Duration `yaml:"timeout"`
	MaxBytes int64         `yaml:"max_bytes"` // Upper bound on a single retrieved document
}

// ContentConfig describes the physical layout of the content store.
type ContentConfig struct {
	DocsDir       string   `yaml:"docs_dir"`   // Documents directory ("docs")
	DocsIndex     string   `yaml:"docs_index"` // Documents index file name ("index.md")
	MirrorDir     string   `yaml:"mirror_dir"` // Nested mirror directory under DocsDir ("docs")
	Extension     string   `yaml:"extension"`  // Document extension (".md")
	Roots         []string `yaml:"roots"`      // Known top-level content roots
	Locale        string   `yaml:"locale"`     // BCP 47 tag used for series collation
	SummaryLength int      `yaml:"summary_length"`
}

// IndexPath returns the store path of the documents index.
func (c ContentConfig) IndexPath() string {
	return c.DocsDir + "/" + c.DocsIndex
}

// Layout returns the path layout used to resolve references.
func (c ContentConfig) Layout() docpath.Layout {
	return docpath.Layout{
		DocsDir:   c.DocsDir,
		MirrorDir: c.MirrorDir,
		Extension: c.Extension,
		Roots:     c.Roots,
	}
}

// RoutesConfig configures the route table.
type RoutesConfig struct {
	Unmatched UnmatchedPolicy   `yaml:"unmatched"`
	Static    []StaticRoute     `yaml:"static"`
	Aliases   map[string]string `yaml:"aliases,omitempty"` // Document slug substitutions
	Docs      DocsRoute         `yaml:"docs"`
	Gallery   GalleryRoute      `yaml:"gallery"`
}

// StaticRoute is a fixed page with a known canonical path.
type StaticRoute struct {
	Slug     string `yaml:"slug"`
	Path     string `yaml:"path"`
	Title    string `yaml:"title"`
	Eyebrow  string `yaml:"eyebrow"`
	Subtitle string `yaml:"subtitle"`
}

// DocsRoute configures the documents index route and document detail headers.
type DocsRoute struct {
	Slug           string `yaml:"slug"`
	Title          string `yaml:"title"`
	Eyebrow        string `yaml:"eyebrow"`
	Subtitle       string `yaml:"subtitle"`
	DetailSubtitle string `yaml:"detail_subtitle"`
}

// GalleryRoute configures the gallery view.
type GalleryRoute struct {
	Slug     string `yaml:"slug"`
	Manifest string `yaml:"manifest"`
	Title    string `yaml:"title"`
	Eyebrow  string `yaml:"eyebrow"`
	Subtitle string `yaml:"subtitle"`
}

// CorpusConfig tunes the corpus builder.
type CorpusConfig struct {
	Concurrency     int           `yaml:"concurrency"`
	RefreshInterval time.Duration `yaml:"refresh_interval"` // Periodic invalidation, 0 disables
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig toggles the Prometheus recorder.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load loads configuration from the specified file. Environment variables from
// .env files are applied first and ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration usable without any file: the original site
// layout served from the current directory.
func Default() *Config {
	cfg := &Config{Store: StoreConfig{Dir: "."}}
	applyDefaults(cfg)
	return cfg
}
