package autodiff

import (
	"fmt"

	"github.com/apexgrad/autodiff/internal/token"
)

// BuildError reports a failure to lower the AST into a tape: an unknown
// identifier, an operator or function with no differentiation rule, a
// call with the wrong number of arguments, or a literal kind that is
// parseable but never differentiable (char, string).
type BuildError struct {
	Loc     token.SourceLoc
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("token %d: %s", e.Loc.TokenIndex, e.Message)
}
