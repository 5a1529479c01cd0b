package autodiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apexgrad/autodiff/internal/parser"
)

func evalSource(t *testing.T, src string, names []string, values []float64) (float64, []float64) {
	t.Helper()
	root, _, err := parser.Parse(src)
	require.NoError(t, err)
	tape, err := Build(root, names)
	require.NoError(t, err)
	value, grad, err := tape.Evaluate(values)
	require.NoError(t, err)
	return value, grad
}

func TestEvaluate_Addition(t *testing.T) {
	value, grad := evalSource(t, "x + y", []string{"x", "y"}, []float64{2, 3})
	require.Equal(t, 5.0, value)
	require.Equal(t, []float64{1, 1}, grad)
}

func TestEvaluate_Product(t *testing.T) {
	value, grad := evalSource(t, "x * y", []string{"x", "y"}, []float64{2, 5})
	require.Equal(t, 10.0, value)
	require.Equal(t, []float64{5, 2}, grad)
}

func TestEvaluate_Square(t *testing.T) {
	value, grad := evalSource(t, "x * x", []string{"x"}, []float64{3})
	require.Equal(t, 9.0, value)
	require.InEpsilon(t, 6.0, grad[0], 1e-12)
}

func TestEvaluate_Division(t *testing.T) {
	value, grad := evalSource(t, "x / y", []string{"x", "y"}, []float64{6, 2})
	require.Equal(t, 3.0, value)
	require.InEpsilon(t, 0.5, grad[0], 1e-12)
	require.InEpsilon(t, -1.5, grad[1], 1e-12)
}

func TestEvaluate_Sqrt(t *testing.T) {
	value, grad := evalSource(t, "sqrt(x)", []string{"x"}, []float64{16})
	require.Equal(t, 4.0, value)
	require.InEpsilon(t, 0.125, grad[0], 1e-12)
}

func TestEvaluate_ExpAndLog(t *testing.T) {
	value, grad := evalSource(t, "exp(x)", []string{"x"}, []float64{0})
	require.InEpsilon(t, 1.0, value, 1e-12)
	require.InEpsilon(t, 1.0, grad[0], 1e-12)

	value, grad = evalSource(t, "log(x)", []string{"x"}, []float64{math.E})
	require.InEpsilon(t, 1.0, value, 1e-9)
	require.InEpsilon(t, 1.0/math.E, grad[0], 1e-9)
}

func TestEvaluate_SinCos(t *testing.T) {
	value, grad := evalSource(t, "sin(x)", []string{"x"}, []float64{0})
	require.InDelta(t, 0.0, value, 1e-12)
	require.InDelta(t, 1.0, grad[0], 1e-12)

	value, grad = evalSource(t, "cos(x)", []string{"x"}, []float64{0})
	require.InDelta(t, 1.0, value, 1e-12)
	require.InDelta(t, 0.0, grad[0], 1e-12)
}

func TestEvaluate_Pow(t *testing.T) {
	value, grad := evalSource(t, "pow(x, y)", []string{"x", "y"}, []float64{2, 3})
	require.InEpsilon(t, 8.0, value, 1e-12)
	require.InEpsilon(t, 12.0, grad[0], 1e-12) // y * x^(y-1) = 3 * 4
	require.InEpsilon(t, 8.0*math.Log(2), grad[1], 1e-12)
}

func TestEvaluate_Norm(t *testing.T) {
	value, grad := evalSource(t, "norm(x, y)", []string{"x", "y"}, []float64{3, 4})
	require.InEpsilon(t, 5.0, value, 1e-12)
	require.InEpsilon(t, 0.6, grad[0], 1e-12)
	require.InEpsilon(t, 0.8, grad[1], 1e-12)
}

func TestEvaluate_ComplexExpressionAgreesWithFiniteDifference(t *testing.T) {
	src := "sin(x) * exp(y) + sqrt(x*x + 1)"
	value, grad := evalSource(t, src, []string{"x", "y"}, []float64{0.7, 0.3})
	require.InDelta(t, math.Sin(0.7)*math.Exp(0.3)+math.Sqrt(0.7*0.7+1), value, 1e-9)

	const h = 1e-6
	f := func(x, y float64) float64 {
		return math.Sin(x)*math.Exp(y) + math.Sqrt(x*x+1)
	}
	dfdx := (f(0.7+h, 0.3) - f(0.7-h, 0.3)) / (2 * h)
	dfdy := (f(0.7, 0.3+h) - f(0.7, 0.3-h)) / (2 * h)
	require.InDelta(t, dfdx, grad[0], 1e-5)
	require.InDelta(t, dfdy, grad[1], 1e-5)
}

func TestEvaluate_WrongBindingCount(t *testing.T) {
	root, _, err := parser.Parse("x + y")
	require.NoError(t, err)
	tape, err := Build(root, []string{"x", "y"})
	require.NoError(t, err)
	_, _, err = tape.Evaluate([]float64{1})
	require.Error(t, err)
}

func TestEvaluate_BareVariable(t *testing.T) {
	value, grad := evalSource(t, "x", []string{"x"}, []float64{42})
	require.Equal(t, 42.0, value)
	require.Equal(t, []float64{1}, grad)
}
