package commands

import (
	"fmt"

	"git.home.luguber.info/inful/optionbook/internal/config"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return foundationerrors.ConfigError("initialize configuration").
			WithCause(err).
			WithContext("path", root.Config).
			Build()
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %s\n", root.Config)
	return nil
}
