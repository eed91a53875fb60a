package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/optionbook/internal/generator"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Module []string `name:"module" help:"Module path relative to the catalog; repeatable, replaces discovery"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if len(d.Module) > 0 {
		cfg.Modules = d.Module
	}

	entries, err := generator.New(cfg).Discover(g.context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(g.out(), "No modules found")
		return nil
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ADDRESS\tOPTIONS\tREQUIRES\tMODULE")
	for _, e := range entries {
		requires := "-"
		if len(e.Module.Requires) > 0 {
			requires = strings.Join(e.Module.Requires, ",")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", strings.Join(e.Address, "/"), len(e.Module.Options), requires, e.Module.Path)
	}
	return tw.Flush()
}
