// Package catalog resolves the list of modules a run documents: either an
// explicit list or a doublestar discovery over the module catalog, optionally
// after cloning a remote catalog repository into a scratch workspace.
package catalog
