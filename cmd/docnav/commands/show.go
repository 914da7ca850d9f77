package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/navigation"
	"git.home.luguber.info/inful/docnav/internal/route"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Token string `arg:"" optional:"" help:"Navigation token"`
	HTML  bool   `help:"Render the body as HTML instead of printing the normalized markup"`
}

func (s *ShowCmd) Run(_ *Global, root *CLI) error {
	a, err := newApp(root)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := &writerPresenter{app: a, w: root.Out, json: root.jsonOutput(), html: s.HTML}
	outcome, err := a.controller.Navigate(ctx, s.Token, p)
	if err != nil {
		return err
	}
	if outcome == navigation.OutcomeNotFound {
		return ferrors.NewError(ferrors.CategoryNotFound, "no route for token").
			WithContext("path", s.Token).
			Build()
	}
	return nil
}

// writerPresenter prints navigation payloads to a writer.
type writerPresenter struct {
	app  *app
	w    io.Writer
	json bool
	html bool
}

func (p *writerPresenter) RenderHome(_ context.Context, r route.Descriptor) error {
	return p.renderRoute(r)
}

func (p *writerPresenter) RenderNotFound(_ context.Context, r route.Descriptor) error {
	return p.renderRoute(r)
}

func (p *writerPresenter) renderRoute(r route.Descriptor) error {
	if p.json {
		return writeJSON(p.w, newRouteView(r))
	}
	return p.header(r.Eyebrow, r.DisplayTitle, r.Subtitle)
}

func (p *writerPresenter) RenderGallery(_ context.Context, g navigation.Gallery) error {
	if p.json {
		return writeJSON(p.w, struct {
			Route    routeView `json:"route"`
			Manifest any       `json:"manifest"`
		}{newRouteView(g.Route), g.Manifest})
	}
	if err := p.header(g.Route.Eyebrow, g.Route.DisplayTitle, g.Route.Subtitle); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s\n", g.Manifest)
	return err
}

func (p *writerPresenter) RenderPage(_ context.Context, page navigation.Page) error {
	v := p.app.pageView(page)
	if p.html {
		html, err := p.app.renderer.HTML(page.Body)
		if err != nil {
			return err
		}
		v.HTML, v.Body = html, ""
	}
	if p.json {
		return writeJSON(p.w, v)
	}

	if err := p.header(v.Eyebrow, v.Title, v.Subtitle); err != nil {
		return err
	}
	var b strings.Builder
	if len(v.Tags) > 0 {
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(v.Tags, ", "))
	}
	if v.Series != nil {
		fmt.Fprintf(&b, "series: %s (%d of %d)\n", v.Series.Name, v.Series.Position+1, len(v.Series.Entries))
	}
	b.WriteString("\n")
	if v.HTML != "" {
		b.WriteString(v.HTML)
	} else {
		b.WriteString(v.Body)
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	if len(v.Backlinks) > 0 {
		b.WriteString("\nLinked from:\n")
		for _, r := range v.Backlinks {
			fmt.Fprintf(&b, "  - %s (%s)\n", r.Title, r.Token)
		}
	}
	if v.Prev != nil {
		fmt.Fprintf(&b, "\nprevious: %s (%s)\n", v.Prev.Title, v.Prev.Token)
	}
	if v.Next != nil {
		fmt.Fprintf(&b, "next: %s (%s)\n", v.Next.Title, v.Next.Token)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *writerPresenter) header(eyebrow, title, subtitle string) error {
	var b strings.Builder
	if eyebrow != "" {
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(eyebrow))
	}
	fmt.Fprintf(&b, "# %s\n", title)
	if subtitle != "" {
		fmt.Fprintf(&b, "%s\n", subtitle)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}
