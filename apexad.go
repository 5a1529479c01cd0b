// Package apexad is the public entry point to the symbolic
// differentiation engine: parse a formula, then lower it into a tape
// that can be evaluated and differentiated at any binding of its
// declared variables.
package apexad

import (
	"github.com/pkg/errors"

	"github.com/apexgrad/autodiff/internal/ast"
	"github.com/apexgrad/autodiff/internal/autodiff"
	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/parser"
)

// ParseResult bundles an AST with the tokenizer that produced it, since
// diagnostics and the tape builder both need to resolve token indices
// back into source positions.
type ParseResult struct {
	Tokenizer *lexer.Tokenizer
	Root      ast.Node
}

// Parse lexes and parses source into an expression AST. The returned
// error is a *lexer.LexError or a *parser.ParseError wrapped with the
// call site that produced it.
func Parse(source string) (*ParseResult, error) {
	root, tz, err := parser.Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	return &ParseResult{Tokenizer: tz, Root: root}, nil
}

// MakeAutodiff parses source and lowers it directly into a Tape seeded
// by varNames, in order. It is a convenience wrapper over Parse plus
// MakeAutodiffFromAST for callers with no use for the intermediate AST.
func MakeAutodiff(source string, varNames []string) (*autodiff.Tape, error) {
	result, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return MakeAutodiffFromAST(result, varNames)
}

// MakeAutodiffFromAST lowers an already-parsed formula into a Tape. The
// returned error is a *autodiff.BuildError wrapped with the call site.
func MakeAutodiffFromAST(result *ParseResult, varNames []string) (*autodiff.Tape, error) {
	tape, err := autodiff.Build(result.Root, varNames)
	if err != nil {
		return nil, errors.Wrap(err, "build tape")
	}
	return tape, nil
}
