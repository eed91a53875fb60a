package module

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/optionbook/internal/options"
)

// DocSuffix is appended to a module name to form its rendered document file name.
const DocSuffix = "-docs.md"

// folderFiles are the file names that make a directory a folder-style module, in lookup order.
var folderFiles = []string{"default.hcl", "index.hcl"}

// Source locates one module: Path is the catalog-relative slash path as listed, Root the
// catalog directory on disk.
type Source struct {
	Path string
	Root string
}

// Module is the evaluated record of one module.
type Module struct {
	Path       string
	SourcePath string
	Name       string
	DocFile    string
	Requires   []string
	Options    []options.Option
	HasOptions bool
}

// DocumentName is the base name of the module's rendered document.
func (m *Module) DocumentName() string {
	return m.Name + DocSuffix
}

// DeriveName returns the module identifier for a catalog path. Folder-style modules, and
// default/index files, are named after their containing folder.
func DeriveName(p string, isDir bool) string {
	p = strings.TrimSuffix(path.Clean(p), "/")
	base := path.Base(p)
	if isDir {
		return base
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "default" || stem == "index" {
		if dir := path.Base(path.Dir(p)); dir != "." && dir != "/" {
			return dir
		}
	}
	return stem
}

// IsFolderFile reports whether a file base name marks its directory as a folder-style module.
func IsFolderFile(base string) bool {
	for _, f := range folderFiles {
		if f == base {
			return true
		}
	}
	return false
}
