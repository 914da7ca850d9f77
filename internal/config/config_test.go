package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DOCNAV_TEST_HOST", "docs.example.com")

	configContent := "site:\n" +
		"  name: Notes\n" +
		"store:\n" +
		"  base_url: https://${DOCNAV_TEST_HOST}/site\n" +
		"  timeout: 3s\n" +
		"content:\n" +
		"  locale: de\n" +
		"routes:\n" +
		"  unmatched: Home\n" +
		"  aliases:\n" +
		"    intro: getting-started\n" +
		"corpus:\n" +
		"  concurrency: 2\n" +
		"  refresh_interval: 5m\n" +
		"logging:\n" +
		"  level: DEBUG\n" +
		"  format: json\n"

	dir := t.TempDir()
	path := filepath.Join(dir, "docnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Notes", cfg.Site.Name)
	assert.Equal(t, "https://docs.example.com/site", cfg.Store.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "de", cfg.Content.Locale)
	assert.Equal(t, UnmatchedHome, cfg.Routes.Unmatched)
	assert.Equal(t, "getting-started", cfg.Routes.Aliases["intro"])
	assert.Equal(t, 2, cfg.Corpus.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Corpus.RefreshInterval)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)

	// Untouched sections fall back to the original site layout.
	assert.Equal(t, "docs/index.md", cfg.Content.IndexPath())
	require.Len(t, cfg.Routes.Static, 1)
	assert.Equal(t, "content/aboutme.md", cfg.Routes.Static[0].Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, ".", cfg.Store.Dir)
	assert.Equal(t, []string{"docs", "content", "images", "assets"}, cfg.Content.Roots)
	assert.Equal(t, "docs", cfg.Content.MirrorDir)
	assert.Equal(t, 180, cfg.Content.SummaryLength)
	assert.Equal(t, UnmatchedNotFound, cfg.Routes.Unmatched)
	assert.Equal(t, "Reading mode", cfg.Routes.Docs.DetailSubtitle)
	assert.Equal(t, "images", cfg.Routes.Gallery.Slug)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"no store", "site:\n  name: x\n", "one of base_url or dir"},
		{"both stores", "store:\n  base_url: https://a\n  dir: .\n", "mutually exclusive"},
		{"bad scheme", "store:\n  base_url: ftp://a\n", "http or https"},
		{"bad extension", "store:\n  dir: .\ncontent:\n  extension: md\n", "extension"},
		{"bad locale", "store:\n  dir: .\ncontent:\n  locale: \"!!\"\n", "invalid locale"},
		{"static collides", "store:\n  dir: .\nroutes:\n  static:\n    - slug: docs\n      path: docs/x.md\n", "collides"},
		{"static no path", "store:\n  dir: .\nroutes:\n  static:\n    - slug: cv\n", "relative path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, ferrors.CategoryConfig, ferrors.GetCategory(err))
		})
	}
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warn "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
	assert.Equal(t, UnmatchedNotFound, NormalizeUnmatchedPolicy("not-found"))
	assert.Equal(t, UnmatchedHome, NormalizeUnmatchedPolicy("HOME"))
}

func TestLoadEnvFilesReadsBoth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCNAV_ENV_BASE=base\nDOCNAV_ENV_SHARED=from-env\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("DOCNAV_ENV_LOCAL=local\nDOCNAV_ENV_SHARED=from-local\n"), 0o600))

	for _, key := range []string{"DOCNAV_ENV_BASE", "DOCNAV_ENV_LOCAL", "DOCNAV_ENV_SHARED"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	loadEnvFilesIn(dir)

	assert.Equal(t, "base", os.Getenv("DOCNAV_ENV_BASE"))
	assert.Equal(t, "local", os.Getenv("DOCNAV_ENV_LOCAL"))
	assert.Equal(t, "from-local", os.Getenv("DOCNAV_ENV_SHARED"))
}
