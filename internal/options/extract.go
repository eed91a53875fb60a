package options

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

const (
	markerAttr   = "_type"
	markerOption = "option"
)

// Extract classifies the evaluated tree and returns its options in visitation order.
func Extract(tree cty.Value) []Option {
	return Flatten(Classify(tree))
}

// Classify builds the tagged node tree for an evaluated option value. Values that are not
// objects or maps yield an empty root category.
func Classify(tree cty.Value) *CategoryNode {
	root := &CategoryNode{}
	if !isCollection(tree) {
		return root
	}
	root.Children = classifyChildren(nil, tree)
	return root
}

func classifyChildren(prefix []string, v cty.Value) []Node {
	children := make([]Node, 0)
	for _, key := range sortedKeys(v) {
		child, ok := attr(v, key)
		if !ok {
			continue
		}
		path := append(append(make([]string, 0, len(prefix)+1), prefix...), key)
		switch {
		case isOption(child):
			children = append(children, &OptionNode{Option: decodeOption(path, child)})
		case isCollection(child):
			children = append(children, &CategoryNode{Path: path, Children: classifyChildren(path, child)})
		default:
			slog.Debug("Skipping non-option value in option tree", "path", strings.Join(path, "."), "type", child.Type().FriendlyName())
		}
	}
	return children
}

// Flatten returns the option records of a classified tree, depth-first.
func Flatten(root *CategoryNode) []Option {
	out := make([]Option, 0)
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch node := n.(type) {
			case *OptionNode:
				out = append(out, node.Option)
			case *CategoryNode:
				walk(node.Children)
			}
		}
	}
	if root != nil {
		walk(root.Children)
	}
	return out
}

func decodeOption(path []string, v cty.Value) Option {
	opt := Option{
		Path:        path,
		Name:        strings.Join(path, "."),
		Type:        typeDescription(v),
		Description: description(v),
		Visible:     true,
	}
	if vis, ok := attr(v, "visible"); ok && vis.Type() == cty.Bool {
		opt.Visible = vis.True()
	}
	if ex, ok := attr(v, "example"); ok {
		opt.Example, opt.HasExample = FormatExample(ex)
	}
	return opt
}

// typeDescription accepts either a plain string or a type object with a description.
func typeDescription(v cty.Value) string {
	t, ok := attr(v, "type")
	if !ok {
		return None
	}
	if isCollection(t) {
		t, ok = attr(t, "description")
		if !ok {
			return None
		}
	}
	if s, ok := asString(t); ok && s != "" {
		return singleLine(s)
	}
	return None
}

// description accepts a plain string or a markdown doc object carrying `text`.
func description(v cty.Value) string {
	d, ok := attr(v, "description")
	if !ok {
		return None
	}
	if isCollection(d) {
		d, ok = attr(d, "text")
		if !ok {
			return None
		}
	}
	if s, ok := asString(d); ok && s != "" {
		return singleLine(s)
	}
	return None
}

func isOption(v cty.Value) bool {
	if !isCollection(v) {
		return false
	}
	m, ok := attr(v, markerAttr)
	if !ok {
		return false
	}
	s, ok := asString(m)
	return ok && s == markerOption
}

func isCollection(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

func sortedKeys(v cty.Value) []string {
	var keys []string
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		for k := range ty.AttributeTypes() {
			keys = append(keys, k)
		}
	case ty.IsMapType():
		for k := range v.AsValueMap() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// attr returns a known, non-null attribute of an object or map value.
func attr(v cty.Value, name string) (cty.Value, bool) {
	if !isCollection(v) {
		return cty.NilVal, false
	}
	var out cty.Value
	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(name) {
			return cty.NilVal, false
		}
		out = v.GetAttr(name)
	default:
		key := cty.StringVal(name)
		if v.LengthInt() == 0 || !v.HasIndex(key).True() {
			return cty.NilVal, false
		}
		out = v.Index(key)
	}
	if out.IsNull() || !out.IsKnown() {
		return cty.NilVal, false
	}
	return out, true
}

func asString(v cty.Value) (string, bool) {
	if !v.Type().IsPrimitiveType() {
		return "", false
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || s.IsNull() || !s.IsKnown() {
		return "", false
	}
	return s.AsString(), true
}
