package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	if err := validator.validate(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").Build()
	}
	return nil
}

// configurationValidator coordinates validation across configuration sections.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateStore(); err != nil {
		return err
	}
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateRoutes(); err != nil {
		return err
	}
	return nil
}

// validateStore enforces exactly one store backend.
func (cv *configurationValidator) validateStore() error {
	s := cv.config.Store
	switch {
	case s.BaseURL == "" && s.Dir == "":
		return errors.New("store: one of base_url or dir must be configured")
	case s.BaseURL != "" && s.Dir != "":
		return errors.New("store: base_url and dir are mutually exclusive")
	}
	if s.BaseURL != "" {
		u, err := url.Parse(s.BaseURL)
		if err != nil {
			return fmt.Errorf("store: invalid base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("store: base_url must use http or https, got %q", u.Scheme)
		}
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	c := cv.config.Content
	if strings.Contains(c.DocsDir, "/") || strings.Contains(c.MirrorDir, "/") {
		return fmt.Errorf("content: docs_dir and mirror_dir must be single path segments")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("content: extension must start with '.', got %q", c.Extension)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("content: invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// validateRoutes rejects slugs that would shadow each other.
func (cv *configurationValidator) validateRoutes() error {
	r := cv.config.Routes
	seen := map[string]string{"home": "home"}
	seen[r.Docs.Slug] = "docs"
	seen[r.Gallery.Slug] = "gallery"
	if r.Docs.Slug == r.Gallery.Slug {
		return fmt.Errorf("routes: docs and gallery share slug %q", r.Docs.Slug)
	}
	for _, s := range r.Static {
		if s.Slug == "" || strings.Contains(s.Slug, "/") {
			return fmt.Errorf("routes: invalid static slug %q", s.Slug)
		}
		if owner, dup := seen[s.Slug]; dup {
			return fmt.Errorf("routes: static slug %q collides with %s route", s.Slug, owner)
		}
		seen[s.Slug] = "static"
		if s.Path == "" || path.IsAbs(s.Path) {
			return fmt.Errorf("routes: static route %q needs a relative path", s.Slug)
		}
	}
	for from, to := range r.Aliases {
		if from == "" || to == "" {
			return fmt.Errorf("routes: empty alias %q -> %q", from, to)
		}
	}
	return nil
}
