// Package commands implements the docnav command line.
package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/metrics"
)

const defaultConfigPath = "docnav.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Store   string           `short:"s" help:"Store directory or http(s) base URL, overrides the configuration"`
	Format  string           `short:"f" help:"Output format (text or json)" default:"text" enum:"text,json"`
	Metrics bool             `help:"Print Prometheus metrics to stderr on exit"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve ResolveCmd `cmd:"" help:"Resolve a navigation token to its route"`
	Show    ShowCmd    `cmd:"" help:"Navigate to a token and print the page"`
	Search  SearchCmd  `cmd:"" help:"Search the document corpus"`
	Corpus  CorpusCmd  `cmd:"" help:"Build the corpus and print documents, series, tags and backlinks"`
	Watch   WatchCmd   `cmd:"" help:"Keep the corpus fresh and report changes until interrupted"`

	Out io.Writer `kong:"-"`

	cfg      *config.Config
	registry *prom.Registry
}

// AfterApply runs after flag parsing: loads configuration and sets up logging once.
func (c *CLI) AfterApply() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Store != "" {
		applyStore(cfg, c.Store)
	}
	c.cfg = cfg

	level := slogLevel(cfg.Logging.Level)
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if c.Metrics || cfg.Metrics.Enabled {
		c.registry = prom.NewRegistry()
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return nil
}

// loadConfig reads path. A missing default file yields the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func applyStore(cfg *config.Config, store string) {
	if strings.HasPrefix(store, "http://") || strings.HasPrefix(store, "https://") {
		cfg.Store.BaseURL, cfg.Store.Dir = store, ""
		return
	}
	cfg.Store.BaseURL, cfg.Store.Dir = "", store
}

func slogLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DumpMetrics writes collected metrics when metrics are enabled.
func (c *CLI) DumpMetrics(w io.Writer) error {
	if c.registry == nil {
		return nil
	}
	return metrics.WriteText(w, c.registry)
}

func (c *CLI) recorder() metrics.Recorder {
	if c.registry == nil {
		return metrics.NoopRecorder{}
	}
	return metrics.NewPrometheusRecorder(c.registry)
}

func (c *CLI) jsonOutput() bool {
	return c.Format == "json"
}
