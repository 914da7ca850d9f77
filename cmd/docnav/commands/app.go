package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	"git.home.luguber.info/inful/docnav/internal/corpus"
	"git.home.luguber.info/inful/docnav/internal/docpath"
	"git.home.luguber.info/inful/docnav/internal/markdown"
	"git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/render"
	"git.home.luguber.info/inful/docnav/internal/route"
)

// app is the wired engine shared by the commands.
type app struct {
	cfg        *config.Config
	routes     *route.Resolver
	cache      *corpus.Cache
	controller *navigation.Controller
	renderer   *render.Renderer
}

func newApp(root *CLI) (*app, error) {
	cfg := root.cfg
	fetcher, err := newFetcher(cfg.Store)
	if err != nil {
		return nil, err
	}

	rec := root.recorder()
	paths := docpath.New(cfg.Content.Layout())
	loader := content.NewLoader(fetcher, paths, content.WithRecorder(rec))
	builder := corpus.NewBuilder(loader, paths, corpus.Options{
		IndexPath:     cfg.Content.IndexPath(),
		Concurrency:   cfg.Corpus.Concurrency,
		Locale:        cfg.Content.Locale,
		SummaryLength: cfg.Content.SummaryLength,
		Recorder:      rec,
	})
	cache := corpus.NewCache(builder.Build)
	routes := route.New(cfg)

	return &app{
		cfg:    cfg,
		routes: routes,
		cache:  cache,
		controller: navigation.NewController(routes, loader, markdown.NewNormalizer(paths), cache,
			navigation.WithRecorder(rec),
			navigation.WithSiteName(cfg.Site.Name)),
		renderer: render.New(cfg.Routes.Docs.Slug, cfg.Content.DocsDir, cfg.Content.Extension),
	}, nil
}

func newFetcher(store config.StoreConfig) (content.Fetcher, error) {
	if store.BaseURL != "" {
		f, err := content.NewHTTPFetcher(store.BaseURL, content.NewHTTPClient(store.Timeout), store.MaxBytes)
		if err != nil {
			return nil, fmt.Errorf("create http store: %w", err)
		}
		return f, nil
	}
	info, err := os.Stat(store.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store path %s is not a directory", store.Dir)
	}
	return content.NewFSFetcher(os.DirFS(store.Dir), store.MaxBytes), nil
}
