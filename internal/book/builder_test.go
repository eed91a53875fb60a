package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandBuilder_Defaults(t *testing.T) {
	b := NewCommandBuilder("", nil)
	assert.Equal(t, "mdbook", b.Command)
	assert.Equal(t, []string{"build"}, b.Args)
}

func TestCommandBuilder_NotFound(t *testing.T) {
	b := NewCommandBuilder("optionbook-no-such-builder", nil)
	err := b.Build(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrBuilderNotFound)
}

func TestCommandBuilder_Success(t *testing.T) {
	b := NewCommandBuilder("true", []string{})
	require.NoError(t, b.Build(context.Background(), t.TempDir()))
}

func TestCommandBuilder_Failure(t *testing.T) {
	b := &CommandBuilder{Command: "false"}
	err := b.Build(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrBuilderFailed)
}
