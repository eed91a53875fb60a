package book

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/markdown"
	"git.home.luguber.info/inful/optionbook/internal/render"
)

// SummaryFile is the navigation document name below src/.
const SummaryFile = "SUMMARY.md"

// Assembler stages a book next to the output directory and promotes it atomically.
type Assembler struct {
	outputDir string
	stageDir  string
	builder   Builder

	mu      sync.Mutex
	written map[string]string
}

// NewAssembler creates an assembler for outputDir. A nil builder skips the build step.
func NewAssembler(outputDir string, builder Builder) *Assembler {
	if builder == nil {
		builder = NoopBuilder{}
	}
	return &Assembler{outputDir: filepath.Clean(outputDir), builder: builder}
}

// StageDir returns the staging directory, empty before Begin and after Finalize/Abort.
func (a *Assembler) StageDir() string { return a.stageDir }

// Begin creates a fresh sibling staging directory: <output>_stage.
func (a *Assembler) Begin() error {
	stage := a.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(stage, SourceDir), 0o750); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	a.stageDir = stage
	a.written = map[string]string{}
	slog.Debug("Initialized staging directory", "staging", stage, "final", a.outputDir)
	return nil
}

// WriteConfig stages book.toml.
func (a *Assembler) WriteConfig(cfg Config) error {
	data, err := EncodeConfig(cfg)
	if err != nil {
		return err
	}
	return a.write("book.toml", "book config", data)
}

// WriteSummary stages src/SUMMARY.md.
func (a *Assembler) WriteSummary(summary string) error {
	return a.write(path.Join(SourceDir, SummaryFile), "summary", []byte(summary))
}

// WriteDocument stages one document under src/. Safe for concurrent use; every
// file name may be written once.
func (a *Assembler) WriteDocument(doc render.Document) error {
	owner := doc.Module
	if owner == "" {
		owner = doc.Name
	}
	return a.write(path.Join(SourceDir, doc.Name), owner, doc.Content)
}

func (a *Assembler) write(name, owner string, data []byte) error {
	a.mu.Lock()
	if a.stageDir == "" {
		a.mu.Unlock()
		return ErrNotStaged
	}
	if first, ok := a.written[name]; ok {
		a.mu.Unlock()
		return &DuplicateFileError{Name: name, First: first, Second: owner}
	}
	a.written[name] = owner
	target := filepath.Join(a.stageDir, filepath.FromSlash(name))
	a.mu.Unlock()

	if err := os.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// VerifyLinks checks that every link in the staged SUMMARY.md resolves to a staged page.
func (a *Assembler) VerifyLinks() error {
	if a.stageDir == "" {
		return ErrNotStaged
	}
	src := filepath.Join(a.stageDir, SourceDir)
	data, err := os.ReadFile(filepath.Join(src, SummaryFile)) // #nosec G304 -- staged by this assembler
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}
	links, err := markdown.ExtractLinks(data, markdown.Options{})
	if err != nil {
		return fmt.Errorf("parse summary: %w", err)
	}
	for _, l := range links {
		if l.Kind != markdown.LinkKindInline {
			continue
		}
		target := strings.TrimPrefix(l.Destination, "./")
		if target == "" || strings.Contains(target, "://") || path.IsAbs(target) {
			return &BrokenLinkError{Text: l.Text, Target: l.Destination}
		}
		if _, err := os.Stat(filepath.Join(src, filepath.FromSlash(target))); err != nil {
			return &BrokenLinkError{Text: l.Text, Target: l.Destination}
		}
	}
	slog.Debug("Verified summary links", logfields.Count(len(links)))
	return nil
}

// Build runs the builder against the staging directory.
func (a *Assembler) Build(ctx context.Context) error {
	if a.stageDir == "" {
		return ErrNotStaged
	}
	return a.builder.Build(ctx, a.stageDir)
}

// Finalize promotes the staging directory to the output location:
//  1. Remove a leftover <output>.prev.
//  2. Move the existing output to <output>.prev.
//  3. Rename staging to output, then remove the backup.
func (a *Assembler) Finalize() error {
	if a.stageDir == "" {
		return ErrNotStaged
	}
	if _, err := os.Stat(a.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(a.outputDir), 0o750); err != nil {
		return fmt.Errorf("create output parent: %w", err)
	}

	prev := a.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	if _, err := os.Stat(a.outputDir); err == nil {
		if err := os.Rename(a.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(a.stageDir, a.outputDir); err != nil {
		return fmt.Errorf("promote staging: %w", err)
	}
	a.stageDir = ""
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	slog.Info("Promoted staging directory", logfields.Path(a.outputDir))
	return nil
}

// Abort removes the staging directory after a failed build. The output directory is untouched.
func (a *Assembler) Abort() {
	if a.stageDir == "" {
		return
	}
	dir := a.stageDir
	a.stageDir = ""
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", "staging", dir, logfields.Error(err))
	} else {
		slog.Debug("Removed staging directory after abort", "staging", dir)
	}
}
