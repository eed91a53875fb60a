package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/optionbook/internal/config"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
	"git.home.luguber.info/inful/optionbook/internal/generator"
	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string   `short:"o" help:"Output directory for the book (overrides output.directory)"`
	Module      []string `name:"module" help:"Module path relative to the catalog; repeatable, replaces discovery"`
	SkipBuilder bool     `name:"skip-builder" help:"Stage the book source without running the external builder"`
	Jobs        int      `name:"jobs" short:"j" help:"Worker pool size (overrides build.jobs)"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics in text format to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}

	gen := generator.New(cfg)
	var recorder *metrics.PrometheusRecorder
	if b.MetricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		gen.WithRecorder(recorder)
	}

	report, err := gen.Generate(g.context())
	if recorder != nil {
		if werr := recorder.WriteTextfile(b.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(b.MetricsFile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	if report.SkipReason != "" {
		_, _ = fmt.Fprintf(g.out(), "Nothing to build (%s)\n", report.SkipReason)
		return nil
	}
	_, _ = fmt.Fprintf(g.out(), "Built %d modules (%d options) into %s\n", report.Modules, report.Options, cfg.Output.Directory)
	return nil
}

// apply layers command-line overrides onto the loaded configuration.
func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if len(b.Module) > 0 {
		cfg.Modules = b.Module
	}
	if b.Jobs > 0 {
		cfg.Build.Jobs = b.Jobs
	}
	if b.SkipBuilder {
		disabled := false
		cfg.Builder.Enabled = &disabled
	}
	if err := config.Validate(cfg); err != nil {
		return foundationerrors.ValidationError("invalid command-line override").
			WithCause(err).
			Build()
	}
	return nil
}
