package commands

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/docnav/internal/corpus"
)

// CorpusCmd implements the 'corpus' command.
type CorpusCmd struct {
	ByDate bool `help:"List dated documents only, newest first"`
}

func (c *CorpusCmd) Run(_ *Global, root *CLI) error {
	a, err := newApp(root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cur, err := a.controller.Corpus(ctx)
	if err != nil {
		return err
	}
	view := a.corpusView(cur)
	if c.ByDate {
		view.Documents = view.Documents[:0]
		for _, d := range cur.ByDate() {
			view.Documents = append(view.Documents, a.documentView(d))
		}
	}
	if root.jsonOutput() {
		return writeJSON(root.Out, view)
	}
	_, err = fmt.Fprint(root.Out, formatCorpus(view, cur))
	return err
}

func formatCorpus(v corpusView, c *corpus.Corpus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Documents (%d, %d stubs) from %s\n", len(v.Documents), c.Stubs(), v.IndexPath)
	for _, d := range v.Documents {
		marker := ""
		if d.Stub {
			marker = " [stub]"
		}
		fmt.Fprintf(&b, "  %s\t%s\t%d min%s\n", d.Token, d.Title, d.ReadingMinutes, marker)
	}

	writeGroups(&b, "Series", v.Series)
	writeGroups(&b, "Tags", v.Tags)
	writeGroups(&b, "Backlinks", v.Backlinks)
	return b.String()
}

func writeGroups(b *strings.Builder, heading string, groups map[string][]docRef) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", heading)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		titles := make([]string, 0, len(groups[k]))
		for _, r := range groups[k] {
			titles = append(titles, r.Title)
		}
		fmt.Fprintf(b, "  %s: %s\n", k, strings.Join(titles, ", "))
	}
}
