package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/optionbook/internal/config"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Ctx context.Context
	// Out receives user-facing command output.
	Out io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"optionbook.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the options book"`
	Discover DiscoverCmd `cmd:"" help:"List modules, their tree addresses and option counts without writing"`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration file. A missing file at the default path
// falls back to built-in defaults; a missing explicitly named file is an error.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == config.DefaultPath {
		slog.Debug("No configuration file, using defaults", "path", path)
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, foundationerrors.ConfigError("load configuration").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return cfg, nil
}
