package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"rlint/internal/source"
	"rlint/internal/syntax"
)

// FormatTree renders the syntax tree as an indented outline, one node per
// line with kind, span, and leaf text. Used by the parse debug command.
func FormatTree(w io.Writer, tree *syntax.Tree, fs *source.FileSet) error {
	var dump func(id syntax.NodeID, depth int)
	dump = func(id syntax.NodeID, depth int) {
		n := tree.Get(id)
		start, end := fs.Resolve(n.Span)

		fmt.Fprintf(w, "%s%s %d:%d-%d:%d",
			strings.Repeat("  ", depth), n.Kind.String(),
			start.Line, start.Col, end.Line, end.Col)

		switch n.Kind {
		case syntax.KindBinary, syntax.KindUnary:
			fmt.Fprintf(w, " %q", n.Tok.Kind.String())
		default:
			if len(n.Children) == 0 && n.Tok.Text != "" {
				fmt.Fprintf(w, " %q", n.Tok.Text)
			}
		}
		fmt.Fprintln(w)

		for _, child := range n.Children {
			dump(child, depth+1)
		}
	}
	dump(tree.Root, 0)

	if count := tree.ErrorCount(); count > 0 {
		fmt.Fprintf(w, "(%d error nodes)\n", count)
	}
	return nil
}
