package module

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/options"
)

const optionsAttr = "options"

// moduleSchema also matches an options block so it can be rejected instead of skipped.
var moduleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: optionsAttr}},
	Blocks:     []hcl.BlockHeaderSchema{{Type: optionsAttr}},
}

// Evaluated is a module's identity plus its raw, unextracted option tree.
type Evaluated struct {
	Module *Module
	Tree   cty.Value
}

// Evaluator evaluates modules against one shared synthetic context. It is safe for
// concurrent use.
type Evaluator struct {
	ctx *hcl.EvalContext
}

// NewEvaluator creates an evaluator for the given context.
func NewEvaluator(c Context) *Evaluator {
	return &Evaluator{ctx: c.EvalContext()}
}

// Load evaluates a module and extracts its options.
func (e *Evaluator) Load(src Source) (*Module, error) {
	ev, err := e.Evaluate(src)
	if err != nil {
		return nil, err
	}
	m := ev.Module
	opts := options.Extract(ev.Tree)
	if err := options.CheckUnique(opts); err != nil {
		return nil, &EvaluationError{Module: m.Path, Requires: m.Requires, Err: err}
	}
	if len(opts) > 0 {
		m.Options = opts
		m.HasOptions = true
	}
	slog.Debug("Module loaded",
		logfields.Module(m.Path),
		logfields.Name(m.Name),
		logfields.Count(len(m.Options)),
		logfields.Requires(m.Requires))
	return m, nil
}

// Evaluate resolves, parses and evaluates the options attribute of a module.
func (e *Evaluator) Evaluate(src Source) (*Evaluated, error) {
	sourcePath := filepath.Join(src.Root, filepath.FromSlash(src.Path))
	file, isDir, err := resolve(sourcePath)
	if err != nil {
		return nil, &EvaluationError{Module: src.Path, Err: err}
	}
	m := &Module{
		Path:       src.Path,
		SourcePath: sourcePath,
		Name:       DeriveName(src.Path, isDir),
		DocFile:    file,
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, &EvaluationError{Module: src.Path, Err: err}
	}
	parsed, diags := hclsyntax.ParseConfig(data, file, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &EvaluationError{Module: src.Path, Err: diags}
	}
	content, _, diags := parsed.Body.PartialContent(moduleSchema)
	if diags.HasErrors() {
		return nil, &EvaluationError{Module: src.Path, Err: diags}
	}
	if blocks := content.Blocks.OfType(optionsAttr); len(blocks) > 0 {
		r := blocks[0].DefRange
		return nil, &EvaluationError{Module: src.Path, Err: fmt.Errorf("%s: options must be an attribute (options = { ... }), not a block", r.String())}
	}

	attr, ok := content.Attributes[optionsAttr]
	if !ok {
		return &Evaluated{Module: m, Tree: cty.NullVal(cty.DynamicPseudoType)}, nil
	}
	m.Requires = requiredFields(attr.Expr)

	val, diags := attr.Expr.Value(e.ctx)
	if diags.HasErrors() {
		return nil, &EvaluationError{Module: src.Path, Field: offendingField(attr.Expr, diags), Requires: m.Requires, Err: diags}
	}
	if !val.IsNull() {
		ty := val.Type()
		if !val.IsWhollyKnown() || !(ty.IsObjectType() || ty.IsMapType()) {
			return nil, &EvaluationError{Module: src.Path, Requires: m.Requires, Err: fmt.Errorf("options must be an object, got %s", ty.FriendlyName())}
		}
	}
	return &Evaluated{Module: m, Tree: val}, nil
}

// resolve maps a module location to the HCL file to read.
func resolve(sourcePath string) (string, bool, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", false, err
	}
	if !info.IsDir() {
		return sourcePath, false, nil
	}
	for _, name := range folderFiles {
		candidate := filepath.Join(sourcePath, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, true, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", true, err
		}
	}
	return "", true, fmt.Errorf("folder module %s has no %v", sourcePath, folderFiles)
}

// requiredFields lists the context variables an expression references.
func requiredFields(expr hcl.Expression) []string {
	seen := map[string]struct{}{}
	for _, tr := range expr.Variables() {
		seen[tr.RootName()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// offendingField picks the placeholder dereferenced by the failing traversal, if any.
func offendingField(expr hcl.Expression, diags hcl.Diagnostics) string {
	for _, d := range diags {
		if d.Severity != hcl.DiagError || d.Subject == nil {
			continue
		}
		for _, tr := range expr.Variables() {
			if len(tr) < 2 || !IsPlaceholder(tr.RootName()) {
				continue
			}
			if rangeContains(tr.SourceRange(), *d.Subject) {
				return tr.RootName()
			}
		}
	}
	for _, tr := range expr.Variables() {
		if len(tr) > 1 && IsPlaceholder(tr.RootName()) {
			return tr.RootName()
		}
	}
	return ""
}

func rangeContains(outer, inner hcl.Range) bool {
	return outer.Filename == inner.Filename &&
		outer.Start.Byte <= inner.Start.Byte &&
		inner.End.Byte <= outer.End.Byte
}
