package book

import (
	"context"

	"git.home.luguber.info/inful/optionbook/internal/render"
)

// Book is the complete source of one generated book.
type Book struct {
	Config    Config
	Summary   string
	Documents []render.Document
}

// Assemble stages b, builds it and promotes the result. On any failure the
// staging directory is removed and the output directory is left as it was.
func (a *Assembler) Assemble(ctx context.Context, b Book) (err error) {
	if err := a.Begin(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			a.Abort()
		}
	}()

	if err := a.WriteConfig(b.Config); err != nil {
		return err
	}
	if err := a.WriteSummary(b.Summary); err != nil {
		return err
	}
	for _, doc := range b.Documents {
		if err := a.WriteDocument(doc); err != nil {
			return err
		}
	}
	if err := a.VerifyLinks(); err != nil {
		return err
	}
	if err := a.Build(ctx); err != nil {
		return err
	}
	return a.Finalize()
}
