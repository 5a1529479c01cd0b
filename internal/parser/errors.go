package parser

import (
	"fmt"

	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/token"
)

// ParseError reports a syntax error: an unexpected token, an unbalanced
// grouping, or a required construct that never appeared. TokenIndex is
// the offending token's position in the token stream; Loc wraps it as
// the opaque source location the rest of the pipeline carries.
type ParseError struct {
	TokenIndex int
	Loc        token.SourceLoc
	Message    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token %d: %s", e.TokenIndex, e.Message)
}

// DetailedError renders a ParseError against the original source using
// the tokenizer's line/column resolution, for callers that want a
// human-facing diagnostic rather than the bare token index.
func DetailedError(tz *lexer.Tokenizer, err *ParseError) string {
	p := tz.TokenPosition(err.TokenIndex)
	return fmt.Sprintf("line %d col %d: %s", p.Line, p.Col, err.Message)
}
