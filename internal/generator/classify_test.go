package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/optionbook/internal/book"
	"git.home.luguber.info/inful/optionbook/internal/catalog"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
	"git.home.luguber.info/inful/optionbook/internal/git"
	"git.home.luguber.info/inful/optionbook/internal/module"
	"git.home.luguber.info/inful/optionbook/internal/render"
	"git.home.luguber.info/inful/optionbook/internal/tree"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		stage StageName
		err   error
		want  foundationerrors.ErrorCategory
	}{
		{"evaluation", StageEvaluate, &module.EvaluationError{Module: "m", Field: "config", Err: errors.New("x")}, foundationerrors.CategoryModule},
		{"missing doc", StageRender, &render.MissingDocFileError{Module: "m", Path: "p"}, foundationerrors.CategoryDocs},
		{"collision", StageBuildTree, &tree.CollisionError{Kind: tree.CollisionModule, Address: "a"}, foundationerrors.CategoryTree},
		{"short address", StageBuildTree, &tree.AddressError{Path: "catalog"}, foundationerrors.CategoryConfig},
		{"duplicate file", StageAssemble, &book.DuplicateFileError{Name: "src/x.md"}, foundationerrors.CategoryBook},
		{"broken link", StageAssemble, &book.BrokenLinkError{Target: "x.md"}, foundationerrors.CategoryBook},
		{"builder", StageRunBuilder, fmt.Errorf("%w: exit 1", book.ErrBuilderFailed), foundationerrors.CategoryBook},
		{"clone", StageResolve, fmt.Errorf("%w: boom", catalog.ErrClone), foundationerrors.CategoryGit},
		{"repository missing", StageResolve, fmt.Errorf("%w: %w", catalog.ErrClone, &git.NotFoundError{Op: "clone", URL: "u", Err: errors.New("x")}), foundationerrors.CategoryNotFound},
		{"catalog dir missing", StageResolve, fmt.Errorf("catalog directory: %w", &fs.PathError{Op: "stat", Path: "/nope", Err: fs.ErrNotExist}), foundationerrors.CategoryNotFound},
		{"auth", StageResolve, &git.AuthError{Op: "clone", URL: "u", Err: errors.New("x")}, foundationerrors.CategoryGit},
		{"resolve", StageResolve, errors.New("catalog directory: missing"), foundationerrors.CategoryConfig},
		{"filesystem", StageFinalize, &fs.PathError{Op: "rename", Path: "/x", Err: fs.ErrPermission}, foundationerrors.CategoryFileSystem},
		{"canceled", StageRender, context.Canceled, foundationerrors.CategoryRuntime},
		{"other", StageFinalize, errors.New("boom"), foundationerrors.CategoryInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(tc.stage, tc.err)
			ce, ok := foundationerrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, tc.want, ce.Category())
			assert.True(t, ce.IsFatal())
			stage, _ := ce.Context().GetString("stage")
			assert.Equal(t, string(tc.stage), stage)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClassify_KeepsClassified(t *testing.T) {
	orig := foundationerrors.ConfigError("bad").Build()
	err := classify(StageResolve, orig)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
	assert.Nil(t, classify(StageResolve, nil))
}

func TestClassify_EvaluationContext(t *testing.T) {
	err := classify(StageEvaluate, &module.EvaluationError{
		Module:   "catalog/modules/bad.hcl",
		Field:    "config",
		Requires: []string{"config", "lib"},
		Err:      errors.New("unsupported attribute"),
	})
	ce, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	requires, _ := ce.Context().GetString("requires")
	assert.Equal(t, "config,lib", requires)
	field, _ := ce.Context().GetString("field")
	assert.Equal(t, "config", field)
}
