package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/route"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Token string `arg:"" optional:"" help:"Navigation token, e.g. docs/getting-started or #/about"`
}

func (r *ResolveCmd) Run(_ *Global, root *CLI) error {
	d := route.New(root.cfg).Resolve(r.Token)
	if root.jsonOutput() {
		return writeJSON(root.Out, newRouteView(d))
	}
	_, err := fmt.Fprintf(root.Out, "kind:           %s\ncanonical path: %s\ntitle:          %s\neyebrow:        %s\nsubtitle:       %s\nkey:            %s\n",
		d.Kind, d.CanonicalPath, d.DisplayTitle, d.Eyebrow, d.Subtitle, d.Key)
	return err
}
