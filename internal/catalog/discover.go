package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/optionbook/internal/logfields"
	"git.home.luguber.info/inful/optionbook/internal/module"
)

// Discover globs fsys for module files. A directory holding default.hcl or
// index.hcl is a folder-style module: it is listed once, by directory, and
// nothing below it is listed separately. Results are sorted slash paths.
func Discover(fsys fs.FS, include, exclude []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			excluded, err := matchesAny(exclude, m)
			if err != nil {
				return nil, err
			}
			if excluded {
				slog.Debug("Excluded module file", logfields.Path(m))
				continue
			}
			files = append(files, m)
		}
	}

	folders := map[string]struct{}{}
	for _, f := range files {
		if module.IsFolderFile(path.Base(f)) {
			folders[path.Dir(f)] = struct{}{}
		}
	}

	out := make([]string, 0, len(files))
	listed := map[string]struct{}{}
	for _, f := range files {
		entry := f
		if owner, ok := folderOwner(folders, f); ok {
			if path.Dir(f) != owner || !module.IsFolderFile(path.Base(f)) {
				continue
			}
			entry = owner
		}
		if _, dup := listed[entry]; dup {
			continue
		}
		listed[entry] = struct{}{}
		out = append(out, entry)
	}
	sort.Strings(out)
	return out, nil
}

// folderOwner returns the outermost folder module containing f.
func folderOwner(folders map[string]struct{}, f string) (string, bool) {
	dirs := strings.Split(path.Dir(f), "/")
	for i := 1; i <= len(dirs); i++ {
		dir := strings.Join(dirs[:i], "/")
		if _, ok := folders[dir]; ok {
			return dir, true
		}
	}
	return "", false
}

func matchesAny(patterns []string, p string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Normalize cleans an explicit module list into sorted, de-duplicated slash paths.
func Normalize(paths []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(path.Clean(p), "./")
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
