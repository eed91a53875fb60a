package book

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
)

// Builder turns a staged book source tree into the final site.
type Builder interface {
	Build(ctx context.Context, dir string) error
}

// CommandBuilder runs an external command, by default `mdbook build <dir>`.
type CommandBuilder struct {
	Command string
	Args    []string
}

// NewCommandBuilder returns a builder for command; empty values fall back to mdbook.
func NewCommandBuilder(command string, args []string) *CommandBuilder {
	if command == "" {
		command = "mdbook"
	}
	if len(args) == 0 {
		args = []string{"build"}
	}
	return &CommandBuilder{Command: command, Args: args}
}

func (b *CommandBuilder) Build(ctx context.Context, dir string) error {
	bin, err := exec.LookPath(b.Command)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBuilderNotFound, b.Command, err)
	}

	args := append(append([]string(nil), b.Args...), dir)
	cmd := exec.CommandContext(ctx, bin, args...) // #nosec G204 -- command comes from configuration
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Running book builder", "command", b.Command, "args", args, logfields.Path(dir))

	err = cmd.Run()
	if out := strings.TrimSpace(stdout.String()); out != "" {
		slog.Debug("book builder stdout", "output", out)
	}
	if err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		if output != "" {
			return fmt.Errorf("%w: %w: %s", ErrBuilderFailed, err, output)
		}
		return fmt.Errorf("%w: %w", ErrBuilderFailed, err)
	}
	return nil
}

// NoopBuilder leaves the staged source tree as the output.
type NoopBuilder struct{}

func (NoopBuilder) Build(_ context.Context, dir string) error {
	slog.Debug("NoopBuilder skipping book build", logfields.Path(dir))
	return nil
}
