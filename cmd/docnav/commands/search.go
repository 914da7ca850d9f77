package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query []string `arg:"" optional:"" help:"Search text; empty lists every document"`
}

func (s *SearchCmd) Run(_ *Global, root *CLI) error {
	a, err := newApp(root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hits, err := a.controller.Search(ctx, strings.Join(s.Query, " "))
	if err != nil {
		return err
	}
	if root.jsonOutput() {
		return writeJSON(root.Out, a.refs(hits))
	}
	for _, d := range hits {
		if _, err := fmt.Fprintf(root.Out, "%s\t%s\n", a.routes.DocumentToken(d.CanonicalPath), d.Title); err != nil {
			return err
		}
	}
	return nil
}
