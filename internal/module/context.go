package module

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Placeholders are the context fields supplied as empty stand-ins. Reading any attribute of
// one fails at the point of use.
var Placeholders = []string{"config", "utils", "baseModules", "extraModules", "modules", "options", "services"}

// Package describes one entry of the package set exposed as `pkgs`.
type Package struct {
	Version     string
	Description string
}

// Context is the fixed synthetic context every module is evaluated against.
type Context struct {
	Packages   map[string]Package
	LibVersion string
}

// libTypes are the type descriptions exposed as `lib.types.<name>`.
var libTypes = map[string]string{
	"anything": "anything",
	"attrs":    "attribute set",
	"bool":     "boolean",
	"float":    "floating point number",
	"int":      "signed integer",
	"lines":    `strings concatenated with "\n"`,
	"number":   "number",
	"package":  "package",
	"path":     "path",
	"port":     "16 bit unsigned integer; between 0 and 65535 (both inclusive)",
	"str":      "string",
	"string":   "string",
}

// EvalContext builds the HCL evaluation context. The result is read-only and may be shared
// by concurrent evaluations.
func (c Context) EvalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{
		"pkgs": c.packageSet(),
		"lib":  c.library(),
	}
	for _, name := range Placeholders {
		vars[name] = cty.EmptyObjectVal
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"mkOption":       mkOptionFunc,
			"mkEnableOption": mkEnableOptionFunc,
			"mdDoc":          mdDocFunc,
			"listOf":         typeCombinator("list of %s"),
			"attrsOf":        typeCombinator("attribute set of %s"),
			"nullOr":         typeCombinator("null or %s"),
			"enum":           enumFunc,
		},
	}
}

// IsPlaceholder reports whether name is one of the empty stand-in fields.
func IsPlaceholder(name string) bool {
	for _, p := range Placeholders {
		if p == name {
			return true
		}
	}
	return false
}

func (c Context) packageSet() cty.Value {
	if len(c.Packages) == 0 {
		return cty.EmptyObjectVal
	}
	pkgs := make(map[string]cty.Value, len(c.Packages))
	for name, p := range c.Packages {
		pkgs[name] = cty.ObjectVal(map[string]cty.Value{
			"name":        cty.StringVal(name),
			"version":     cty.StringVal(p.Version),
			"description": cty.StringVal(p.Description),
		})
	}
	return cty.ObjectVal(pkgs)
}

func (c Context) library() cty.Value {
	types := make(map[string]cty.Value, len(libTypes))
	for k, v := range libTypes {
		types[k] = cty.StringVal(v)
	}
	version := c.LibVersion
	if version == "" {
		version = "unstable"
	}
	return cty.ObjectVal(map[string]cty.Value{
		"types":   cty.ObjectVal(types),
		"version": cty.StringVal(version),
	})
}

// mkOption tags an option specification with the option marker.
var mkOptionFunc = function.New(&function.Spec{
	Description: "Declares an option from a specification object.",
	Params: []function.Parameter{
		{Name: "spec", Type: cty.DynamicPseudoType},
	},
	Type: func(args []cty.Value) (cty.Type, error) {
		ty := args[0].Type()
		if ty == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, nil
		}
		if !ty.IsObjectType() {
			return cty.NilType, function.NewArgErrorf(0, "mkOption expects an object, got %s", ty.FriendlyName())
		}
		attrs := make(map[string]cty.Type, len(ty.AttributeTypes())+1)
		for k, t := range ty.AttributeTypes() {
			attrs[k] = t
		}
		attrs["_type"] = cty.String
		return cty.Object(attrs), nil
	},
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		spec := args[0]
		if !spec.IsWhollyKnown() {
			return cty.UnknownVal(retType), nil
		}
		attrs := map[string]cty.Value{}
		if !spec.IsNull() {
			for k, v := range spec.AsValueMap() {
				attrs[k] = v
			}
		}
		attrs["_type"] = cty.StringVal("option")
		return cty.ObjectVal(attrs), nil
	},
})

var enableOptionType = cty.Object(map[string]cty.Type{
	"_type":       cty.String,
	"type":        cty.String,
	"default":     cty.Bool,
	"example":     cty.Bool,
	"description": cty.String,
})

// mkEnableOption declares the conventional boolean "enable" option.
var mkEnableOptionFunc = function.New(&function.Spec{
	Description: "Declares a boolean option enabling a feature.",
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(enableOptionType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.ObjectVal(map[string]cty.Value{
			"_type":       cty.StringVal("option"),
			"type":        cty.StringVal(libTypes["bool"]),
			"default":     cty.False,
			"example":     cty.True,
			"description": cty.StringVal("Whether to enable " + args[0].AsString() + "."),
		}), nil
	},
})

var mdDocType = cty.Object(map[string]cty.Type{"_type": cty.String, "text": cty.String})

// mdDoc marks a description as markdown.
var mdDocFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "text", Type: cty.String},
	},
	Type: function.StaticReturnType(mdDocType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.ObjectVal(map[string]cty.Value{
			"_type": cty.StringVal("mdDoc"),
			"text":  args[0],
		}), nil
	},
})

func typeCombinator(format string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "elem", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(fmt.Sprintf(format, args[0].AsString())), nil
		},
	})
}

// enum describes a closed set of string values.
var enumFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "values", Type: cty.List(cty.String)},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		var quoted []string
		for it := args[0].ElementIterator(); it.Next(); {
			_, v := it.Element()
			quoted = append(quoted, fmt.Sprintf("%q", v.AsString()))
		}
		return cty.StringVal("one of " + strings.Join(quoted, ", ")), nil
	},
})
