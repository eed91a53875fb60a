package tree

import (
	"fmt"
	"path"
	"strings"
)

// AddressOptions controls how a module path becomes a tree address.
type AddressOptions struct {
	// RootSegments is the number of leading path segments dropped (e.g. "catalog/modules").
	RootSegments int
	// Suffixes are the module file suffixes stripped from the last segment.
	Suffixes []string
	// Fillers are trailing file stems dropped so folder modules and single files share an address.
	Fillers []string
}

// DefaultAddressOptions matches the conventional catalog layout.
func DefaultAddressOptions() AddressOptions {
	return AddressOptions{
		RootSegments: 2,
		Suffixes:     []string{".hcl"},
		Fillers:      []string{"default", "index"},
	}
}

// AddressError reports a module path that leaves no segment once root segments are dropped.
type AddressError struct {
	Path string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("module path %q has no segment below the catalog root", e.Path)
}

// Address derives the tree address of a catalog-relative slash path.
func Address(p string, opts AddressOptions) ([]string, error) {
	clean := strings.Trim(path.Clean(p), "/")
	var segs []string
	for _, s := range strings.Split(clean, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	if len(segs) <= opts.RootSegments {
		return nil, &AddressError{Path: p}
	}
	segs = segs[opts.RootSegments:]

	last := len(segs) - 1
	for _, suffix := range opts.Suffixes {
		if trimmed := strings.TrimSuffix(segs[last], suffix); trimmed != segs[last] && trimmed != "" {
			segs[last] = trimmed
			break
		}
	}
	for _, filler := range opts.Fillers {
		if segs[last] == filler {
			segs = segs[:last]
			break
		}
	}
	if len(segs) == 0 {
		return nil, &AddressError{Path: p}
	}
	return segs, nil
}
