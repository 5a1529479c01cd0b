package parser

import (
	"testing"

	"github.com/apexgrad/autodiff/internal/ast"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	node, _, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return node
}

// TestParse_Precedence pins §8 scenario 1: parse_expression("1 + 2 * 3")
// is Binary(+, Number(1), Binary(*, Number(2), Number(3))) — the parser
// never folds literal operands, only the tape builder does.
func TestParse_Precedence(t *testing.T) {
	node := mustParse(t, "1 + 2 * 3")
	add, ok := node.(*ast.Binary)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("got %T, want top-level Binary(+)", node)
	}
	left, ok := add.Left.(*ast.Number)
	if !ok || left.IsFloat || left.Int != 1 {
		t.Fatalf("got left operand %+v, want Number(1)", add.Left)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("got right operand %T, want Binary(*)", add.Right)
	}
	lhs, ok := mul.Left.(*ast.Number)
	if !ok || lhs.IsFloat || lhs.Int != 2 {
		t.Fatalf("got Binary(*) left operand %+v, want Number(2)", mul.Left)
	}
	rhs, ok := mul.Right.(*ast.Number)
	if !ok || rhs.IsFloat || rhs.Int != 3 {
		t.Fatalf("got Binary(*) right operand %+v, want Number(3)", mul.Right)
	}
}

func TestParse_LeftAssociativeAdditive(t *testing.T) {
	// a - b - c must bind as (a - b) - c.
	node := mustParse(t, "a - b - c")
	outer, ok := node.(*ast.Binary)
	if !ok || outer.Op != ast.OpSub {
		t.Fatalf("got %T, want top-level Binary(-)", node)
	}
	if _, ok := outer.Left.(*ast.Binary); !ok {
		t.Fatalf("got left operand %T, want nested Binary(-)", outer.Left)
	}
	if _, ok := outer.Right.(*ast.Ident); !ok {
		t.Fatalf("got right operand %T, want Ident", outer.Right)
	}
}

// TestParse_ParenthesesOverridePrecedence pins §8 scenario 2:
// parse_expression("(1 + 2) * 3") is Binary(*, Binary(+, Number(1),
// Number(2)), Number(3)) — parentheses change the tree shape, but the
// literal operands are never folded away.
func TestParse_ParenthesesOverridePrecedence(t *testing.T) {
	node := mustParse(t, "(1 + 2) * 3")
	mul, ok := node.(*ast.Binary)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("got %T, want top-level Binary(*)", node)
	}
	add, ok := mul.Left.(*ast.Binary)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("got left operand %T, want Binary(+)", mul.Left)
	}
	lhs, ok := add.Left.(*ast.Number)
	if !ok || lhs.IsFloat || lhs.Int != 1 {
		t.Fatalf("got Binary(+) left operand %+v, want Number(1)", add.Left)
	}
	rhs, ok := add.Right.(*ast.Number)
	if !ok || rhs.IsFloat || rhs.Int != 2 {
		t.Fatalf("got Binary(+) right operand %+v, want Number(2)", add.Right)
	}
	three, ok := mul.Right.(*ast.Number)
	if !ok || three.IsFloat || three.Int != 3 {
		t.Fatalf("got top-level right operand %+v, want Number(3)", mul.Right)
	}
}

// TestParse_UnaryMinusOnLiteralStaysUnary pins the unary half of the same
// invariant: a prefix operator over a literal still produces Unary, not a
// folded Number — "-5" is Unary(-, Number(5)).
func TestParse_UnaryMinusOnLiteralStaysUnary(t *testing.T) {
	node := mustParse(t, "-5")
	unary, ok := node.(*ast.Unary)
	if !ok || unary.Op != ast.OpMinus {
		t.Fatalf("got %T, want Unary(-)", node)
	}
	num, ok := unary.Child.(*ast.Number)
	if !ok || num.IsFloat || num.Int != 5 {
		t.Fatalf("got child %+v, want Number(5)", unary.Child)
	}
}

func TestParse_UnaryMinus(t *testing.T) {
	node := mustParse(t, "-x * 2")
	mul, ok := node.(*ast.Binary)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("got %T, want top-level Binary(*)", node)
	}
	unary, ok := mul.Left.(*ast.Unary)
	if !ok || unary.Op != ast.OpMinus {
		t.Fatalf("got left operand %T, want Unary(-)", mul.Left)
	}
}

func TestParse_CallExpression(t *testing.T) {
	node := mustParse(t, "pow(x, 2)")
	call, ok := node.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want Call", node)
	}
	if callee, ok := call.Callee.(*ast.Ident); !ok || callee.Name != "pow" {
		t.Fatalf("got callee %+v, want Ident(pow)", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
}

func TestParse_MemberAndSubscript(t *testing.T) {
	node := mustParse(t, "v.y + arr[0]")
	add, ok := node.(*ast.Binary)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("got %T, want top-level Binary(+)", node)
	}
	member, ok := add.Left.(*ast.Member)
	if !ok || member.Name != "y" || member.Connector != ast.Dot {
		t.Fatalf("got left operand %+v, want Member(.y)", add.Left)
	}
	sub, ok := add.Right.(*ast.Subscript)
	if !ok {
		t.Fatalf("got right operand %T, want Subscript", add.Right)
	}
	idx, ok := sub.Args[0].(*ast.Number)
	if !ok || idx.Int != 0 {
		t.Fatalf("got subscript index %+v, want Number(0)", sub.Args[0])
	}
}

func TestParse_Ternary(t *testing.T) {
	node := mustParse(t, "x > 0 ? x : -x")
	ternary, ok := node.(*ast.Ternary)
	if !ok {
		t.Fatalf("got %T, want Ternary", node)
	}
	if _, ok := ternary.Cond.(*ast.Binary); !ok {
		t.Fatalf("got cond %T, want Binary", ternary.Cond)
	}
}

func TestParse_Assignment(t *testing.T) {
	node := mustParse(t, "x += 1")
	assign, ok := node.(*ast.Assign)
	if !ok || assign.Op != ast.OpAssignAdd {
		t.Fatalf("got %T, want Assign(+=)", node)
	}
}

func TestParse_Sequence(t *testing.T) {
	node := mustParse(t, "x, y")
	seq, ok := node.(*ast.Binary)
	if !ok || seq.Op != ast.OpSequence {
		t.Fatalf("got %T, want Binary(,)", node)
	}
}

func TestParse_BraceList(t *testing.T) {
	node := mustParse(t, "{1, 2, 3}")
	braced, ok := node.(*ast.Braced)
	if !ok {
		t.Fatalf("got %T, want Braced", node)
	}
	if len(braced.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(braced.Elements))
	}
}

func TestParse_TrailingTokenIsAnError(t *testing.T) {
	_, _, err := Parse("1 + 2 )")
	if err == nil {
		t.Fatal("expected a trailing-token error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("got error of type %T, want *ParseError", err)
	}
}

func TestParse_UnbalancedParen(t *testing.T) {
	_, _, err := Parse("(1 + 2")
	if err == nil {
		t.Fatal("expected an unbalanced-parenthesis error")
	}
}

func TestParse_UnexpectedToken(t *testing.T) {
	// `/` is not a prefix operator (unlike `*`, which parses as
	// indirection), so a leading `/` has no operand to its left.
	_, _, err := Parse("/ 2")
	if err == nil {
		t.Fatal("expected an unexpected-token error")
	}
}
