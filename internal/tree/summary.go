package tree

import (
	"fmt"
	"strings"
)

// Summary renders the navigation document: a bullet list with two spaces of indent per depth.
// Leaves link to the module document by base name since the book builder only resolves
// same-directory links.
func (t *Tree) Summary() string {
	var sb strings.Builder
	sb.WriteString("# Summary\n\n")
	t.Walk(func(n *Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.Kind == KindLeaf {
			fmt.Fprintf(&sb, "%s- [%s](%s)\n", indent, n.Module.Name, n.Module.DocumentName())
			return
		}
		fmt.Fprintf(&sb, "%s- [%s](./%s)\n", indent, n.Name, CategoryPageName(n.Name))
	})
	return sb.String()
}
