// Package workspace manages the scratch directory a run clones remote catalogs into.
package workspace
