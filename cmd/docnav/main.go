package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
	ferrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/version"
)

func main() {
	cli := &commands.CLI{Out: os.Stdout}
	kctx := kong.Parse(cli,
		kong.Name("docnav"),
		kong.Description("Resolve navigation tokens and explore a Markdown document corpus."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := kctx.Run(&commands.Global{}, cli)
	if dumpErr := cli.DumpMetrics(os.Stderr); dumpErr != nil && err == nil {
		err = dumpErr
	}
	ferrors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
