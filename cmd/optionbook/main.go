package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/optionbook/cmd/optionbook/commands"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
	"git.home.luguber.info/inful/optionbook/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	global := &commands.Global{Ctx: ctx, Out: os.Stdout}
	parser := kong.Parse(cli,
		kong.Name("optionbook"),
		kong.Description("Generate an mdBook of module options from an HCL module catalog."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(global, cli)
	stop()
	if err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
