package options

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// FormatExample renders an example value as an HCL literal. Only strings, numbers, booleans,
// and collections of those are supported; anything else reports false.
func FormatExample(v cty.Value) (string, bool) {
	if v.IsNull() || !literal(v) {
		return "", false
	}
	return strings.TrimSpace(string(hclwrite.TokensForValue(v).Bytes())), true
}

func literal(v cty.Value) bool {
	if !v.IsKnown() || v.IsMarked() {
		return false
	}
	if v.IsNull() {
		return true
	}
	ty := v.Type()
	switch {
	case ty == cty.String, ty == cty.Number, ty == cty.Bool:
		return true
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType(), ty.IsObjectType(), ty.IsMapType():
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if !literal(elem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
