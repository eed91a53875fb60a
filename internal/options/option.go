package options

import (
	"fmt"
	"strings"
)

// None is the sentinel used when an option does not declare a type or description.
const None = "<none>"

// Option is the uniform record extracted for every option leaf.
type Option struct {
	Path        []string
	Name        string
	Type        string
	Description string
	Visible     bool
	Example     string
	HasExample  bool
}

// Node is either an *OptionNode or a *CategoryNode.
type Node interface {
	NodePath() []string
}

// OptionNode is a decoded option leaf.
type OptionNode struct {
	Option Option
}

// CategoryNode groups nested nodes under one path segment. Children are sorted by key.
type CategoryNode struct {
	Path     []string
	Children []Node
}

func (n *OptionNode) NodePath() []string   { return n.Option.Path }
func (n *CategoryNode) NodePath() []string { return n.Path }

// singleLine replaces every embedded line break with one space.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// DuplicateNameError reports two option leaves that flatten to the same dotted name,
// e.g. a quoted key containing a dot next to the equivalent nested path.
type DuplicateNameError struct {
	Name          string
	First, Second []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("option %q declared twice (paths %q and %q)", e.Name, e.First, e.Second)
}

// CheckUnique rejects option lists in which a name occurs more than once.
func CheckUnique(opts []Option) error {
	seen := make(map[string][]string, len(opts))
	for _, o := range opts {
		if first, dup := seen[o.Name]; dup {
			return &DuplicateNameError{Name: o.Name, First: first, Second: o.Path}
		}
		seen[o.Name] = o.Path
	}
	return nil
}
