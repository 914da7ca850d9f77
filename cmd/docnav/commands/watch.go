package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/corpus"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/refresh"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Interval time.Duration `help:"Periodic refresh interval, overrides corpus.refresh_interval (0 keeps the configured value)"`
	Debounce time.Duration `help:"Quiet period after file changes before refreshing" default:"300ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	a, err := newApp(root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	initial, err := a.cache.Ensure(ctx)
	if err != nil {
		return err
	}
	r := &reporter{app: a, root: root, prev: initial}
	r.report(initial, nil)
	rebuild := func() { r.rebuild(ctx) }

	interval := a.cfg.Corpus.RefreshInterval
	if w.Interval > 0 {
		interval = w.Interval
	}
	if interval > 0 {
		s, err := refresh.NewScheduler(interval, a.cache, rebuild)
		if err != nil {
			return err
		}
		s.Start()
		defer func() {
			_ = s.Stop()
		}()
	}

	if a.cfg.Store.Dir != "" {
		watcher, err := refresh.NewWatcher(a.cfg.Store.Dir, a.cache, refresh.WithDebounce(w.Debounce), refresh.WithHook(rebuild))
		if err != nil {
			return err
		}
		return watcher.Run(ctx)
	}
	if interval <= 0 {
		return fmt.Errorf("remote store needs a refresh interval: set corpus.refresh_interval or --interval")
	}
	<-ctx.Done()
	return nil
}

// reporter rebuilds after an invalidation and prints what changed.
type reporter struct {
	app  *app
	root *CLI

	mu   sync.Mutex
	prev *corpus.Corpus
}

func (r *reporter) rebuild(ctx context.Context) {
	next, err := r.app.cache.Ensure(ctx)
	if err != nil {
		slog.Warn("Corpus rebuild failed", logfields.Error(err))
		return
	}
	r.mu.Lock()
	prev := r.prev
	r.prev = next
	r.mu.Unlock()
	if next == prev {
		return
	}
	r.report(next, next.Changed(prev))
}

func (r *reporter) report(c *corpus.Corpus, changed []string) {
	if r.root.jsonOutput() {
		_ = writeJSON(r.root.Out, struct {
			BuiltAt   time.Time `json:"built_at"`
			Documents int       `json:"documents"`
			Stubs     int       `json:"stubs"`
			Changed   []string  `json:"changed"`
		}{c.BuiltAt, len(c.Documents), c.Stubs(), changed})
		return
	}
	_, _ = fmt.Fprintf(r.root.Out, "%s corpus: %d documents, %d stubs, %d changed\n",
		c.BuiltAt.Format(time.TimeOnly), len(c.Documents), c.Stubs(), len(changed))
	for _, p := range changed {
		_, _ = fmt.Fprintf(r.root.Out, "  changed: %s\n", p)
	}
}
