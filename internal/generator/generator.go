package generator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/optionbook/internal/book"
	"git.home.luguber.info/inful/optionbook/internal/catalog"
	"git.home.luguber.info/inful/optionbook/internal/config"
	foundationerrors "git.home.luguber.info/inful/optionbook/internal/foundation/errors"
	"git.home.luguber.info/inful/optionbook/internal/git"
	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/metrics"
	"git.home.luguber.info/inful/optionbook/internal/module"
	"git.home.luguber.info/inful/optionbook/internal/render"
	"git.home.luguber.info/inful/optionbook/internal/tree"
)

// Generator builds an options book from a configuration.
type Generator struct {
	cfg           *config.Config
	recorder      metrics.Recorder
	builder       book.Builder
	workspaceBase string
}

// New creates a generator. The external builder follows cfg.Builder.
func New(cfg *config.Config) *Generator {
	g := &Generator{cfg: cfg, recorder: metrics.NoopRecorder{}}
	if cfg.Builder.IsEnabled() {
		g.builder = book.NewCommandBuilder(cfg.Builder.Command, cfg.Builder.Args)
	} else {
		g.builder = book.NoopBuilder{}
	}
	return g
}

// WithRecorder injects a metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithBuilder replaces the external book builder.
func (g *Generator) WithBuilder(b book.Builder) *Generator {
	if b != nil {
		g.builder = b
	}
	return g
}

// WithWorkspaceBase sets where remote catalogs are cloned.
func (g *Generator) WithWorkspaceBase(dir string) *Generator {
	g.workspaceBase = dir
	return g
}

// buildState carries data between stages of one run.
type buildState struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	report   *Report

	catalog   *catalog.Catalog
	modules   []*module.Module
	tree      *tree.Tree
	assembler *book.Assembler
	skip      bool
}

// Generate runs the full pipeline and promotes the book to cfg.Output.Directory.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	bs := g.newState()
	bs.assembler = book.NewAssembler(g.cfg.Output.Directory, g.builder)
	bs.logger.Info("Build started", logfields.Path(g.cfg.Output.Directory))

	defer func() {
		if bs.catalog != nil {
			if err := bs.catalog.Close(); err != nil {
				bs.logger.Warn("Failed to clean up catalog workspace", logfields.Error(err))
			}
		}
	}()

	err := runStages(ctx, bs, []StageDef{
		{StageResolve, g.stageResolve},
		{StageEvaluate, stageEvaluate},
		{StageBuildTree, stageBuildTree},
		{StageRender, stageRender},
		{StageAssemble, stageAssemble},
		{StageRunBuilder, stageRunBuilder},
		{StageFinalize, stageFinalize},
	})
	if err != nil {
		bs.assembler.Abort()
	}
	g.finish(bs, err)
	return bs.report, err
}

// Discover resolves and evaluates every module and builds the tree without writing anything.
func (g *Generator) Discover(ctx context.Context) ([]Entry, error) {
	bs := g.newState()
	defer func() {
		if bs.catalog != nil {
			_ = bs.catalog.Close()
		}
	}()

	if err := runStages(ctx, bs, []StageDef{
		{StageResolve, g.stageResolve},
		{StageEvaluate, stageEvaluate},
		{StageBuildTree, stageBuildTree},
	}); err != nil {
		return nil, err
	}
	if bs.tree == nil {
		return nil, nil
	}

	var entries []Entry
	bs.tree.Walk(func(n *tree.Node, _ int) {
		if n.Kind == tree.KindLeaf {
			entries = append(entries, Entry{Address: n.Address, Module: n.Module})
		}
	})
	return entries, nil
}

// Entry is one module as placed in the navigation tree.
type Entry struct {
	Address []string
	Module  *module.Module
}

func (g *Generator) newState() *buildState {
	runID := uuid.NewString()
	return &buildState{
		cfg:      g.cfg,
		logger:   slog.Default().With(logfields.RunID(runID)),
		recorder: g.recorder,
		report:   newReport(runID),
	}
}

func (g *Generator) finish(bs *buildState, err error) {
	r := bs.report
	r.End = time.Now()
	switch {
	case err == nil:
		r.Outcome = metrics.BuildOutcomeSuccess
	case ctxErr(err):
		r.Outcome = metrics.BuildOutcomeCanceled
	default:
		r.Outcome = metrics.BuildOutcomeFailed
	}
	g.recorder.ObserveBuildDuration(r.Duration())
	g.recorder.IncBuildOutcome(r.Outcome)
	g.recorder.SetModules(r.Modules)
	g.recorder.SetOptions(r.Options)
	if err != nil {
		bs.logger.Error("Build failed",
			slog.String("category", string(foundationerrors.GetCategory(err))),
			logfields.Error(err),
			logfields.DurationMS(float64(r.Duration().Milliseconds())))
		return
	}
	bs.logger.Info("Build complete",
		logfields.Count(r.Documents),
		slog.Int("modules", r.Modules),
		slog.Int("options", r.Options),
		logfields.DurationMS(float64(r.Duration().Milliseconds())))
}

func (g *Generator) stageResolve(ctx context.Context, bs *buildState) error {
	opts := catalog.Options{
		Dir:           bs.cfg.Catalog.Dir,
		Include:       bs.cfg.Catalog.Include,
		Exclude:       bs.cfg.Catalog.Exclude,
		Modules:       bs.cfg.Modules,
		WorkspaceBase: g.workspaceBase,
	}
	if r := bs.cfg.Catalog.Repository; r != nil {
		opts.Repository = &git.Repository{URL: r.URL, Branch: r.Branch, Depth: r.Depth, Name: "catalog", Retry: r.RetryPolicy()}
	}
	c, err := catalog.Open(ctx, opts)
	if err != nil {
		return err
	}
	bs.catalog = c
	if len(c.Paths) == 0 {
		bs.logger.Warn("No modules found", logfields.Path(c.Root))
		bs.report.SkipReason = SkipNoModules
		bs.skip = true
	}
	return nil
}

func moduleContext(cfg *config.Config) module.Context {
	pkgs := make(map[string]module.Package, len(cfg.PackageSet))
	for name, p := range cfg.PackageSet {
		pkgs[name] = module.Package{Version: p.Version, Description: p.Description}
	}
	return module.Context{Packages: pkgs, LibVersion: cfg.Library.Version}
}

func stageEvaluate(ctx context.Context, bs *buildState) error {
	sources := bs.catalog.Sources()
	ev := module.NewEvaluator(moduleContext(bs.cfg))
	bs.modules = make([]*module.Module, len(sources))

	err := runPool(ctx, bs.cfg.Build.Jobs, len(sources), func(i int) error {
		m, err := ev.Load(sources[i])
		if err != nil {
			return err
		}
		bs.modules[i] = m
		return nil
	})
	if err != nil {
		return err
	}

	bs.report.Modules = len(bs.modules)
	for _, m := range bs.modules {
		bs.report.Options += len(m.Options)
	}
	bs.logger.Info("Evaluated modules", logfields.Count(bs.report.Modules), slog.Int("options", bs.report.Options))
	return nil
}

func stageBuildTree(_ context.Context, bs *buildState) error {
	opts := tree.DefaultAddressOptions()
	opts.RootSegments = bs.cfg.Tree.RootSegmentCount()
	t, err := tree.Build(bs.modules, opts)
	if err != nil {
		return err
	}
	bs.tree = t
	t.Walk(func(n *tree.Node, _ int) {
		if n.Kind == tree.KindLeaf {
			bs.logger.Debug("Module placed", logfields.Module(n.Module.Path), logfields.Address(strings.Join(n.Address, "/")))
		}
	})
	return nil
}

func stageRender(ctx context.Context, bs *buildState) error {
	if err := bs.assembler.Begin(); err != nil {
		return err
	}
	leaves := bs.tree.Leaves()
	opts := render.Options{ShowExamples: bs.cfg.Render.ShowExamples, HideInvisible: bs.cfg.Render.HideInvisible}

	err := runPool(ctx, bs.cfg.Build.Jobs, len(leaves), func(i int) error {
		doc, err := render.Render(leaves[i], opts)
		if err != nil {
			return err
		}
		return bs.assembler.WriteDocument(doc)
	})
	if err != nil {
		return err
	}
	bs.report.Documents = len(leaves)
	return nil
}

func stageAssemble(_ context.Context, bs *buildState) error {
	a := bs.assembler
	if err := a.WriteConfig(book.Config{Title: bs.cfg.Book.Title}); err != nil {
		return err
	}
	if err := a.WriteSummary(bs.tree.Summary()); err != nil {
		return err
	}
	for _, name := range bs.tree.Categories() {
		if err := a.WriteDocument(render.CategoryPage(name)); err != nil {
			return err
		}
	}
	return a.VerifyLinks()
}

func stageRunBuilder(ctx context.Context, bs *buildState) error {
	return bs.assembler.Build(ctx)
}

func stageFinalize(_ context.Context, bs *buildState) error {
	return bs.assembler.Finalize()
}
