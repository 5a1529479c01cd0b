package autodiff

import (
	"fmt"
	"math"
)

// EvalError reports a tape that could not be evaluated against a given
// binding vector — currently only a length mismatch, since a correctly
// built Tape can always be evaluated arithmetically.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string { return e.Message }

// Evaluate runs the tape forward to compute its final value, then
// backward to accumulate the gradient of that final value with respect
// to every seed variable. bindings must have exactly t.NumVars entries,
// supplied in the same order the Tape was built with.
func (t *Tape) Evaluate(bindings []float64) (value float64, grad []float64, err error) {
	if len(bindings) != t.NumVars {
		return 0, nil, &EvalError{Message: fmt.Sprintf("expected %d variable bindings, got %d", t.NumVars, len(bindings))}
	}

	values := make([]float64, len(t.Items))
	for i := 0; i < t.NumVars; i++ {
		values[i] = bindings[i]
	}
	for i := t.NumVars; i < len(t.Items); i++ {
		values[i] = evalExpr(t.Items[i].Value, values)
	}

	adjoint := make([]float64, len(t.Items))
	adjoint[t.Output] = 1
	for i := len(t.Items) - 1; i >= t.NumVars; i-- {
		a := adjoint[i]
		if a == 0 {
			continue
		}
		for _, g := range t.Items[i].Grads {
			adjoint[g.Parent] += a * evalExpr(g.Coef, values)
		}
	}

	grad = make([]float64, t.NumVars)
	copy(grad, adjoint[:t.NumVars])
	return values[t.Output], grad, nil
}

// evalExpr interprets an AdExpr directly against an already-computed
// values vector; it never mutates the tape and is safe to call during
// both the upsweep (on Items[i].Value) and the downsweep (on
// Grads[*].Coef, which may reference the not-yet-finished item's own
// slot via the norm self-reference).
func evalExpr(e AdExpr, values []float64) float64 {
	switch n := e.(type) {
	case nil:
		return 0
	case TapeRef:
		return values[n.Index]
	case Literal:
		return n.Value
	case Unary:
		v := evalExpr(n.Child, values)
		switch n.Op {
		case opNeg:
			return -v
		}
	case Binary:
		l := evalExpr(n.Left, values)
		r := evalExpr(n.Right, values)
		switch n.Op {
		case opAdd:
			return l + r
		case opSub:
			return l - r
		case opMul:
			return l * r
		case opDiv:
			return l / r
		}
	case Func:
		args := make([]float64, len(n.Args))
		for i, a := range n.Args {
			args[i] = evalExpr(a, values)
		}
		switch n.Name {
		case fnSqrt:
			return math.Sqrt(args[0])
		case fnExp:
			return math.Exp(args[0])
		case fnLog:
			return math.Log(args[0])
		case fnSin:
			return math.Sin(args[0])
		case fnCos:
			return math.Cos(args[0])
		case fnTan:
			return math.Tan(args[0])
		case fnSinh:
			return math.Sinh(args[0])
		case fnCosh:
			return math.Cosh(args[0])
		case fnTanh:
			return math.Tanh(args[0])
		case fnAbs:
			return math.Abs(args[0])
		case fnPow:
			return math.Pow(args[0], args[1])
		case fnSq:
			return args[0] * args[0]
		}
	}
	return 0
}
