package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/optionbook/internal/git"
	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/module"
	"git.home.luguber.info/inful/optionbook/internal/workspace"
)

// ErrClone marks failures to fetch a remote catalog.
var ErrClone = errors.New("catalog clone failed")

// Options selects where modules come from.
type Options struct {
	// Dir is the catalog root, relative to the repository checkout when Repository is set.
	Dir     string
	Include []string
	Exclude []string
	// Modules is an explicit list; discovery is skipped when non-empty.
	Modules []string
	// Repository, when set, is cloned before resolving Dir.
	Repository *git.Repository
	// WorkspaceBase is the parent of the clone workspace (system temp dir when empty).
	WorkspaceBase string
}

// Catalog is a resolved module list.
type Catalog struct {
	Root  string
	Paths []string

	ws *workspace.Manager
}

// Open resolves the module list. Close releases the clone workspace, if any.
func Open(ctx context.Context, opts Options) (*Catalog, error) {
	c := &Catalog{}
	root := opts.Dir
	if root == "" {
		root = "."
	}

	if opts.Repository != nil {
		c.ws = workspace.NewManager(opts.WorkspaceBase)
		if err := c.ws.Create(); err != nil {
			return nil, err
		}
		checkout, err := git.NewClient(c.ws.GetPath()).Clone(ctx, *opts.Repository)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("%w: %w", ErrClone, err)
		}
		root = filepath.Join(checkout, root)
	}
	c.Root = root

	if len(opts.Modules) > 0 {
		c.Paths = Normalize(opts.Modules)
		slog.Debug("Using explicit module list", logfields.Count(len(c.Paths)))
		return c, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("catalog directory: %w", err)
	}
	if !info.IsDir() {
		_ = c.Close()
		return nil, fmt.Errorf("catalog directory %s is not a directory", root)
	}
	paths, err := Discover(os.DirFS(root), opts.Include, opts.Exclude)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Paths = paths
	slog.Debug("Discovered modules", logfields.Path(root), logfields.Count(len(paths)))
	return c, nil
}

// Sources pairs every path with the catalog root for evaluation.
func (c *Catalog) Sources() []module.Source {
	out := make([]module.Source, len(c.Paths))
	for i, p := range c.Paths {
		out[i] = module.Source{Path: p, Root: c.Root}
	}
	return out
}

// Close removes the clone workspace.
func (c *Catalog) Close() error {
	if c.ws == nil {
		return nil
	}
	return c.ws.Cleanup()
}
