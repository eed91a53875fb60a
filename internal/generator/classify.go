package generator

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"git.home.luguber.info/inful/optionbook/internal/book"
	"git.home.luguber.info/inful/optionbook/internal/catalog"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
	"git.home.luguber.info/inful/optionbook/internal/git"
	"git.home.luguber.info/inful/optionbook/internal/module"
	"git.home.luguber.info/inful/optionbook/internal/render"
	"git.home.luguber.info/inful/optionbook/internal/tree"
)

// classify wraps a stage failure into a ClassifiedError whose category drives the CLI exit code.
func classify(stage StageName, err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := foundationerrors.AsClassified(err); ok {
		return ce.WithContext("stage", string(stage))
	}

	var (
		evalErr   *module.EvaluationError
		missing   *render.MissingDocFileError
		collision *tree.CollisionError
		addrErr   *tree.AddressError
		dup       *book.DuplicateFileError
		broken    *book.BrokenLinkError
		authErr   *git.AuthError
		notFound  *git.NotFoundError
		protoErr  *git.UnsupportedProtocolError
		pathErr   *fs.PathError
	)

	var b *foundationerrors.ErrorBuilder
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		b = foundationerrors.RuntimeError("build canceled")
	case errors.As(err, &evalErr):
		b = foundationerrors.ModuleError("module evaluation failed").
			WithContext("module", evalErr.Module)
		if evalErr.Field != "" {
			b.WithContext("field", evalErr.Field)
		}
		if len(evalErr.Requires) > 0 {
			b.WithContext("requires", strings.Join(evalErr.Requires, ","))
		}
	case errors.As(err, &missing):
		b = foundationerrors.DocsError("documentation file missing").
			WithContext("module", missing.Module).
			WithContext("path", missing.Path)
	case errors.As(err, &collision):
		b = foundationerrors.TreeError("address collision").
			WithContext("address", collision.Address).
			WithContext("first", collision.Existing).
			WithContext("second", collision.Incoming)
	case errors.As(err, &addrErr):
		b = foundationerrors.ConfigError("module path outside the catalog root").
			WithContext("module", addrErr.Path)
	case errors.As(err, &dup):
		b = foundationerrors.BookError("book file written twice").
			WithContext("file", dup.Name)
	case errors.As(err, &broken):
		b = foundationerrors.BookError("broken navigation link").
			WithContext("target", broken.Target)
	case errors.Is(err, book.ErrBuilderNotFound), errors.Is(err, book.ErrBuilderFailed):
		b = foundationerrors.BookError("book builder failed")
	case errors.As(err, &notFound):
		b = foundationerrors.NotFoundError("catalog repository not found")
	case errors.Is(err, catalog.ErrClone), errors.As(err, &authErr), errors.As(err, &protoErr):
		b = foundationerrors.GitError("catalog clone failed")
	case stage == StageResolve && errors.Is(err, fs.ErrNotExist):
		b = foundationerrors.NotFoundError("catalog directory not found")
	case stage == StageResolve:
		b = foundationerrors.ConfigError("cannot resolve module catalog")
	case errors.As(err, &pathErr):
		b = foundationerrors.FileSystemError("filesystem operation failed").
			WithContext("path", pathErr.Path)
	default:
		b = foundationerrors.InternalError("build failed")
	}
	return b.WithCause(err).WithContext("stage", string(stage)).Build()
}
