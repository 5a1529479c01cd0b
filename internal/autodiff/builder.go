package autodiff

import (
	"fmt"
	"math"

	"github.com/apexgrad/autodiff/internal/ast"
	"github.com/apexgrad/autodiff/internal/token"
)

// Build lowers root into a Tape whose first len(varNames) slots are
// seeded, in order, by the names in varNames. Every identifier,
// member-access, and subscript expression reachable from root must
// flatten to one of those names.
func Build(root ast.Node, varNames []string) (*Tape, error) {
	b := &Builder{
		varNames:      varNames,
		varIndex:      make(map[string]int, len(varNames)),
		cse:           make(map[cseKey]uint32),
		literalIndex:  make(map[uint64]uint32),
		literalValues: make(map[uint32]float64),
	}
	b.tape.NumVars = len(varNames)
	b.tape.Items = make([]Item, len(varNames))
	for i, name := range varNames {
		b.varIndex[name] = i
	}
	out, err := b.recurse(root)
	if err != nil {
		return nil, err
	}
	b.tape.Output = out
	return &b.tape, nil
}

// CollectVariables walks root and returns every identifier/member/
// subscript name it references as a leaf, in first-occurrence order
// with duplicates removed. Callers that don't already know a formula's
// variable names (the CLI's auto-detect mode) use this to build the
// varNames vector Build and MakeAutodiff require.
func CollectVariables(root ast.Node) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch node := n.(type) {
		case *ast.Ident:
			if !seen[node.Name] {
				seen[node.Name] = true
				names = append(names, node.Name)
			}
		case *ast.Member, *ast.Subscript:
			if name, ok := flatten(node); ok {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
				return
			}
		case *ast.Unary:
			walk(node.Child)
		case *ast.Binary:
			walk(node.Left)
			walk(node.Right)
		case *ast.Assign:
			walk(node.Left)
			walk(node.Right)
		case *ast.Ternary:
			walk(node.Cond)
			walk(node.Then)
			walk(node.Else)
		case *ast.Call:
			for _, a := range node.Args {
				walk(a)
			}
		case *ast.Braced:
			for _, e := range node.Elements {
				walk(e)
			}
		}
	}
	walk(root)
	return names
}

func (b *Builder) errf(loc token.SourceLoc, format string, args ...interface{}) error {
	return &BuildError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

func (b *Builder) pushLiteral(x float64) uint32 {
	bits := math.Float64bits(x)
	if idx, ok := b.literalIndex[bits]; ok {
		return idx
	}
	idx := b.pushItem(Literal{Value: x}, nil)
	b.literalIndex[bits] = idx
	b.literalValues[idx] = x
	return idx
}

func (b *Builder) lookupVar(n ast.Node, name string) (uint32, error) {
	if idx, ok := b.varIndex[name]; ok {
		return uint32(idx), nil
	}
	return 0, b.errf(n.Loc(), "unknown variable %q", name)
}

// flatten renders an identifier/member/subscript chain to the dotted,
// arrow, and bracket-indexed name it was declared under, e.g. "v.y" or
// "arr[0]". It fails on anything else, including a non-literal or
// floating subscript index.
func flatten(n ast.Node) (string, bool) {
	switch node := n.(type) {
	case *ast.Ident:
		return node.Name, true
	case *ast.Member:
		base, ok := flatten(node.Target)
		if !ok {
			return "", false
		}
		connector := "."
		if node.Connector == ast.Arrow {
			connector = "->"
		}
		return base + connector + node.Name, true
	case *ast.Subscript:
		base, ok := flatten(node.Target)
		if !ok || len(node.Args) != 1 {
			return "", false
		}
		idx, ok := node.Args[0].(*ast.Number)
		if !ok || idx.IsFloat {
			return "", false
		}
		return fmt.Sprintf("%s[%d]", base, idx.Int), true
	}
	return "", false
}

func (b *Builder) recurse(n ast.Node) (uint32, error) {
	switch node := n.(type) {
	case *ast.Number:
		if node.IsFloat {
			return b.pushLiteral(node.Float), nil
		}
		return b.pushLiteral(float64(node.Int)), nil
	case *ast.Bool:
		return 0, b.errf(node.Loc(), "boolean literals are not differentiable")
	case *ast.Char:
		return 0, b.errf(node.Loc(), "character literals are not differentiable")
	case *ast.String:
		return 0, b.errf(node.Loc(), "string literals are not differentiable")
	case *ast.Ident:
		return b.lookupVar(node, node.Name)
	case *ast.Member:
		name, ok := flatten(node)
		if !ok {
			return 0, b.errf(node.Loc(), "unsupported member expression")
		}
		return b.lookupVar(node, name)
	case *ast.Subscript:
		name, ok := flatten(node)
		if !ok {
			return 0, b.errf(node.Loc(), "unsupported subscript expression")
		}
		return b.lookupVar(node, name)
	case *ast.Unary:
		return b.recurseUnary(node)
	case *ast.Binary:
		return b.recurseBinary(node)
	case *ast.Call:
		return b.recurseCall(node)
	case *ast.Assign:
		return 0, b.errf(node.Loc(), "assignment has no derivative")
	case *ast.Ternary:
		return 0, b.errf(node.Loc(), "conditional expressions are not supported")
	case *ast.Braced:
		return 0, b.errf(node.Loc(), "brace-initializer lists are not supported")
	}
	return 0, b.errf(n.Loc(), "unsupported expression")
}

func (b *Builder) recurseUnary(n *ast.Unary) (uint32, error) {
	if n.Op != ast.OpMinus {
		return 0, b.errf(n.Loc(), "unsupported unary operator %q in a differentiable expression", n.Op)
	}
	a, err := b.recurse(n.Child)
	if err != nil {
		return 0, err
	}
	return b.cseUnary("neg", a, func() (AdExpr, []Grad) {
		return mul(Literal{Value: -1}, b.val(a)), []Grad{{Parent: a, Coef: Literal{Value: -1}}}
	}), nil
}

func (b *Builder) recurseBinary(n *ast.Binary) (uint32, error) {
	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
	default:
		return 0, b.errf(n.Loc(), "unsupported binary operator %q in a differentiable expression", n.Op)
	}
	a, err := b.recurse(n.Left)
	if err != nil {
		return 0, err
	}
	c, err := b.recurse(n.Right)
	if err != nil {
		return 0, err
	}
	return b.lowerArith(n.Op, a, c), nil
}

// lowerArith applies the two CSE safety rewrites — mul(a,a) to sq(a),
// sub(a,a) to the literal 0 — before falling through to the ordinary
// memoized build for each arithmetic operator.
func (b *Builder) lowerArith(op ast.ExprOp, a, c uint32) uint32 {
	switch op {
	case ast.OpSub:
		if a == c {
			return b.pushLiteral(0)
		}
		return b.cseBinary("sub", a, c, false, func() (AdExpr, []Grad) {
			return sub(b.val(a), b.val(c)), []Grad{
				{Parent: a, Coef: Literal{Value: 1}},
				{Parent: c, Coef: Literal{Value: -1}},
			}
		})
	case ast.OpMul:
		if a == c {
			return b.lowerSq(a)
		}
		return b.cseBinary("mul", a, c, true, func() (AdExpr, []Grad) {
			return mul(b.val(a), b.val(c)), []Grad{
				{Parent: a, Coef: b.val(c)},
				{Parent: c, Coef: b.val(a)},
			}
		})
	case ast.OpAdd:
		return b.cseBinary("add", a, c, true, func() (AdExpr, []Grad) {
			return add(b.val(a), b.val(c)), []Grad{
				{Parent: a, Coef: Literal{Value: 1}},
				{Parent: c, Coef: Literal{Value: 1}},
			}
		})
	case ast.OpDiv:
		return b.cseBinary("div", a, c, false, func() (AdExpr, []Grad) {
			return div(b.val(a), b.val(c)), []Grad{
				{Parent: a, Coef: rcp(b.val(c))},
				{Parent: c, Coef: negate(div(b.val(a), sq(b.val(c))))},
			}
		})
	}
	panic("unreachable: lowerArith called with a non-arithmetic op")
}

func (b *Builder) lowerSq(a uint32) uint32 {
	return b.cseUnary("sq", a, func() (AdExpr, []Grad) {
		return sq(b.val(a)), []Grad{{Parent: a, Coef: mul(Literal{Value: 2}, b.val(a))}}
	})
}

func calleeName(n *ast.Call) string {
	if name, ok := flatten(n.Callee); ok {
		return name
	}
	return "<call>"
}

func (b *Builder) arg1(n *ast.Call) (uint32, error) {
	if len(n.Args) != 1 {
		return 0, b.errf(n.Loc(), "%s() requires 1 argument, got %d", calleeName(n), len(n.Args))
	}
	return b.recurse(n.Args[0])
}

func (b *Builder) arg2(n *ast.Call) (uint32, uint32, error) {
	if len(n.Args) != 2 {
		return 0, 0, b.errf(n.Loc(), "%s() requires 2 arguments, got %d", calleeName(n), len(n.Args))
	}
	a, err := b.recurse(n.Args[0])
	if err != nil {
		return 0, 0, err
	}
	c, err := b.recurse(n.Args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, c, nil
}

// recurseCall dispatches an elementary-function call by its flattened
// callee name. Each case pushes exactly one memoized tape item whose
// Grads hold that function's analytic partials, expressed in terms of
// the already-built argument slots.
func (b *Builder) recurseCall(n *ast.Call) (uint32, error) {
	name, ok := flatten(n.Callee)
	if !ok {
		return 0, b.errf(n.Loc(), "unsupported call target")
	}
	switch name {
	case "sq":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.lowerSq(a), nil

	case "sqrt":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("sqrt", a, func() (AdExpr, []Grad) {
			v := fn1(fnSqrt, b.val(a))
			return v, []Grad{{Parent: a, Coef: div(Literal{Value: 0.5}, v)}}
		}), nil

	case "exp":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("exp", a, func() (AdExpr, []Grad) {
			v := fn1(fnExp, b.val(a))
			return v, []Grad{{Parent: a, Coef: v}}
		}), nil

	case "log", "ln":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("log", a, func() (AdExpr, []Grad) {
			return fn1(fnLog, b.val(a)), []Grad{{Parent: a, Coef: rcp(b.val(a))}}
		}), nil

	case "sin":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("sin", a, func() (AdExpr, []Grad) {
			return fn1(fnSin, b.val(a)), []Grad{{Parent: a, Coef: fn1(fnCos, b.val(a))}}
		}), nil

	case "cos":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("cos", a, func() (AdExpr, []Grad) {
			return fn1(fnCos, b.val(a)), []Grad{{Parent: a, Coef: negate(fn1(fnSin, b.val(a)))}}
		}), nil

	case "tan":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("tan", a, func() (AdExpr, []Grad) {
			v := fn1(fnTan, b.val(a))
			cosv := fn1(fnCos, b.val(a))
			return v, []Grad{{Parent: a, Coef: rcp(sq(cosv))}}
		}), nil

	case "sinh":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("sinh", a, func() (AdExpr, []Grad) {
			return fn1(fnSinh, b.val(a)), []Grad{{Parent: a, Coef: fn1(fnCosh, b.val(a))}}
		}), nil

	case "cosh":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("cosh", a, func() (AdExpr, []Grad) {
			return fn1(fnCosh, b.val(a)), []Grad{{Parent: a, Coef: fn1(fnSinh, b.val(a))}}
		}), nil

	case "tanh":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("tanh", a, func() (AdExpr, []Grad) {
			v := fn1(fnTanh, b.val(a))
			return v, []Grad{{Parent: a, Coef: sub(Literal{Value: 1}, sq(v))}}
		}), nil

	case "abs":
		a, err := b.arg1(n)
		if err != nil {
			return 0, err
		}
		return b.cseUnary("abs", a, func() (AdExpr, []Grad) {
			v := fn1(fnAbs, b.val(a))
			return v, []Grad{{Parent: a, Coef: div(b.val(a), v)}}
		}), nil

	case "pow":
		a, c, err := b.arg2(n)
		if err != nil {
			return 0, err
		}
		return b.cseBinary("pow", a, c, false, func() (AdExpr, []Grad) {
			v := fn2(fnPow, b.val(a), b.val(c))
			aPowCm1 := fn2(fnPow, b.val(a), sub(b.val(c), Literal{Value: 1}))
			return v, []Grad{
				{Parent: a, Coef: mul(b.val(c), aPowCm1)},
				{Parent: c, Coef: mul(v, fn1(fnLog, b.val(a)))},
			}
		}), nil

	case "norm":
		return b.lowerNorm(n)

	default:
		return 0, b.errf(n.Loc(), "unknown function %q", name)
	}
}

// lowerNorm builds the Euclidean norm of its arguments. The sqrt this
// produces is referenced by every argument's partial via a TapeRef to
// this item's own, not-yet-occupied slot — selfIdx is captured before
// pushItem runs, so it equals the index pushItem is about to return.
func (b *Builder) lowerNorm(n *ast.Call) (uint32, error) {
	if len(n.Args) < 1 {
		return 0, b.errf(n.Loc(), "norm() requires at least 1 argument")
	}
	argSlots := make([]uint32, len(n.Args))
	for i, arg := range n.Args {
		idx, err := b.recurse(arg)
		if err != nil {
			return 0, err
		}
		argSlots[i] = idx
	}

	var sumSq AdExpr = Literal{Value: 0}
	for _, idx := range argSlots {
		sumSq = add(sumSq, sq(b.val(idx)))
	}

	selfIdx := uint32(len(b.tape.Items))
	value := fn1(fnSqrt, sumSq)
	grads := make([]Grad, len(argSlots))
	for i, idx := range argSlots {
		grads[i] = Grad{Parent: idx, Coef: div(b.val(idx), TapeRef{Index: selfIdx})}
	}
	return b.pushItem(value, grads), nil
}
