// Package printer renders a tape or a single symbolic expression as
// human-readable, multi-line text, for the eval command's --explain
// flag and the parse command's output.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/apexgrad/autodiff/internal/autodiff"
)

// PrintTape writes every slot of tape, one line per slot, followed by
// one indented line per gradient contribution it records.
func PrintTape(w io.Writer, tape *autodiff.Tape) error {
	var sb strings.Builder
	for i, item := range tape.Items {
		if i < tape.NumVars {
			fmt.Fprintf(&sb, "%%%d = seed\n", i)
			continue
		}
		fmt.Fprintf(&sb, "%%%d = %s\n", i, exprString(item.Value))
		for _, g := range item.Grads {
			fmt.Fprintf(&sb, "  ; d%%%d/d%%%d = %s\n", i, g.Parent, exprString(g.Coef))
		}
	}
	fmt.Fprintf(&sb, "return %%%d\n", tape.Output)
	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintExpr writes a single symbolic expression's tree form, indented
// one level per nesting depth.
func PrintExpr(w io.Writer, expr autodiff.AdExpr) error {
	var sb strings.Builder
	printExprIndent(&sb, expr, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func exprString(e autodiff.AdExpr) string {
	if e == nil {
		return "<nil>"
	}
	return autodiff.String(e)
}

func printExprIndent(sb *strings.Builder, e autodiff.AdExpr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case autodiff.TapeRef:
		fmt.Fprintf(sb, "%s%%%d\n", indent, n.Index)
	case autodiff.Literal:
		fmt.Fprintf(sb, "%s%g\n", indent, n.Value)
	case autodiff.Unary:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Op)
		printExprIndent(sb, n.Child, depth+1)
	case autodiff.Binary:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Op)
		printExprIndent(sb, n.Left, depth+1)
		printExprIndent(sb, n.Right, depth+1)
	case autodiff.Func:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Name)
		for _, a := range n.Args {
			printExprIndent(sb, a, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s?\n", indent)
	}
}
