// Package parser implements the recursive-descent, precedence-climbing
// expression parser: token stream in, one ast.Node out. Every operator
// production builds the Binary/Unary node its grammar rule names; there
// is no constant folding here — the tape builder's AdExpr constructors
// fold literal-only operands once the tree is lowered (see
// internal/autodiff/adexpr.go), which is the only folding the AST is
// specified to undergo.
package parser

import (
	"fmt"

	"github.com/apexgrad/autodiff/internal/ast"
	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/token"
)

// Parser consumes a *lexer.Tokenizer's token stream and produces one
// expression AST. It never mutates the tokenizer; p.pos is the parser's
// own cursor into Tokenizer.Tokens.
type Parser struct {
	tz  *lexer.Tokenizer
	pos int
}

// Parse tokenizes and parses source in one call, producing the AST root.
func Parse(source string) (ast.Node, *lexer.Tokenizer, error) {
	tz, err := lexer.Tokenize(source)
	if err != nil {
		return nil, nil, err
	}
	node, err := ParseTokens(tz)
	return node, tz, err
}

// ParseTokens parses an already-tokenized source, returning the AST root.
func ParseTokens(tz *lexer.Tokenizer) (ast.Node, error) {
	p := &Parser{tz: tz}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curKind() != token.EOF {
		return nil, p.errorf("unexpected trailing %s after expression", p.curText())
	}
	return node, nil
}

func (p *Parser) cur() token.Token { return p.tz.Tokens[p.pos] }
func (p *Parser) curKind() token.Kind {
	if p.pos >= len(p.tz.Tokens) {
		return token.EOF
	}
	return p.tz.Tokens[p.pos].Kind
}

func (p *Parser) loc() token.SourceLoc { return token.SourceLoc{TokenIndex: p.pos} }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{TokenIndex: p.pos, Loc: p.loc(), Message: fmt.Sprintf(format, args...)}
}

// curText renders the current token's surface text for error messages:
// the interned identifier/literal it carries when its Store indexes one,
// otherwise the token kind's fixed spelling.
func (p *Parser) curText() string {
	tok := p.cur()
	if !tok.HasStore() {
		return tok.Kind.String()
	}
	switch tok.Kind {
	case token.Ident, token.String, token.Char:
		return p.tz.Strings[tok.Store]
	case token.Int:
		return fmt.Sprintf("%d", p.tz.Ints[tok.Store])
	case token.Float:
		return fmt.Sprintf("%g", p.tz.Floats[tok.Store])
	}
	return tok.Kind.String()
}

// expect consumes the current token if it has kind k, erroring with
// context otherwise. This is the "expect: bool" convention collapsed
// into a single always-required helper: every call site that invokes
// expect has already committed to the construct being mandatory.
func (p *Parser) expect(k token.Kind, context string) (token.Token, error) {
	if p.curKind() != k {
		return token.Token{}, p.errorf("expected %s %s, found %s", k, context, p.curText())
	}
	return p.advance(), nil
}

// expression ::= assignment ( ',' assignment )*
func (p *Parser) parseExpression() (ast.Node, error) {
	left, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.Comma {
		loc := p.loc()
		p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(loc, ast.OpSequence, left, right)
	}
	return left, nil
}

// assignment ::= logical-or ( assign-op initializer-clause | '?' assignment ':' assignment )?
func (p *Parser) parseAssignment() (ast.Node, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if p.curKind() == token.Question {
		loc := p.loc()
		p.advance()
		then, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, "in ternary expression"); err != nil {
			return nil, err
		}
		els, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewTernary(loc, left, then, els), nil
	}

	if op, ok := assignOp(p.curKind()); ok {
		loc := p.loc()
		p.advance()
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(loc, op, left, right), nil
	}

	return left, nil
}

// logical-or ::= logical-and ( '||' logical-and )*
func (p *Parser) parseLogicalOr() (ast.Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.PipePipe {
		loc := p.loc()
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(loc, ast.OpLogOr, left, right)
	}
	return left, nil
}

// logical-and ::= binary ( '&&' binary )*
func (p *Parser) parseLogicalAnd() (ast.Node, error) {
	left, err := p.parseBinary()
	if err != nil {
		return nil, err
	}
	for p.curKind() == token.AmpAmp {
		loc := p.loc()
		p.advance()
		right, err := p.parseBinary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(loc, ast.OpLogAnd, left, right)
	}
	return left, nil
}

// binaryFrame is one entry of the fold-loop's frame stack: a reduced
// node, and (for every frame but the last) the operator pending between
// it and the next frame.
type binaryFrame struct {
	node  ast.Node
	op    ast.ExprOp
	prec  int
	loc   token.SourceLoc
	hasOp bool
}

// binary ::= unary ( binary-op unary )* — precedence-climbing over the
// bitwise-or..pointer-to-member levels, via a small stack of frames
// rather than recursion through the operator lattice (see design note:
// this bounds stack depth by lattice height, not input size).
func (p *Parser) parseBinary() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	frames := []binaryFrame{{node: left}}

	// fold collapses the top two frames into one Binary node — the
	// precedence-climbing fold from the design note, not constant folding.
	fold := func() {
		n := len(frames)
		hi := frames[n-1]
		lo := frames[n-2]
		combined := ast.NewBinary(lo.loc, lo.op, lo.node, hi.node)
		frames = frames[:n-2]
		frames = append(frames, binaryFrame{node: combined})
	}

	for {
		op, prec, ok := binaryOp(p.curKind())
		if !ok {
			break
		}
		loc := p.loc()
		p.advance()

		for len(frames) >= 2 && frames[len(frames)-2].hasOp && frames[len(frames)-2].prec >= prec {
			fold()
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		top := &frames[len(frames)-1]
		top.op, top.prec, top.loc, top.hasOp = op, prec, loc, true
		frames = append(frames, binaryFrame{node: right})
	}

	for len(frames) >= 2 {
		fold()
	}
	return frames[0].node, nil
}

// unary ::= (prefix-op)* postfix
func (p *Parser) parseUnary() (ast.Node, error) {
	if op, ok := prefixOp(p.curKind()); ok {
		loc := p.loc()
		p.advance()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(loc, op, child), nil
	}
	return p.parsePostfix()
}

// postfix ::= primary ( '++' | '--' | '[' expr-list ']' | '(' init-list ')' | '.' ident | '->' ident )*
func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.curKind() {
		case token.PlusPlus:
			loc := p.loc()
			p.advance()
			node = ast.NewUnary(loc, ast.OpIncPost, node)
		case token.MinusMinus:
			loc := p.loc()
			p.advance()
			node = ast.NewUnary(loc, ast.OpDecPost, node)
		case token.LBracket:
			loc := p.loc()
			p.advance()
			args, err := p.parseInitList(token.RBracket, "subscript")
			if err != nil {
				return nil, err
			}
			node = ast.NewSubscript(loc, node, args)
		case token.LParen:
			loc := p.loc()
			p.advance()
			args, err := p.parseInitList(token.RParen, "call")
			if err != nil {
				return nil, err
			}
			node = ast.NewCall(loc, node, args)
		case token.Dot:
			loc := p.loc()
			p.advance()
			name, err := p.expectIdentName("after '.'")
			if err != nil {
				return nil, err
			}
			node = ast.NewMember(loc, node, ast.Dot, name)
		case token.Arrow:
			loc := p.loc()
			p.advance()
			name, err := p.expectIdentName("after '->'")
			if err != nil {
				return nil, err
			}
			node = ast.NewMember(loc, node, ast.Arrow, name)
		default:
			return node, nil
		}
	}
}

func (p *Parser) expectIdentName(context string) (string, error) {
	if p.curKind() != token.Ident {
		return "", p.errorf("expected identifier %s, found %s", context, p.curText())
	}
	tok := p.advance()
	return p.tz.Strings[tok.Store], nil
}

// parseInitList parses a comma-separated list of assignment-expressions
// (an "initializer-clause" list) up to and consuming close, per the
// grouping-helper convention: call-arg and subscript-index lists are
// parsed within an already-delimited subrange, balanced externally by
// matching bracket/paren tokens rather than a separate pre-scan pass
// (the parser is never speculative, so a pre-scan skipper buys nothing
// here beyond what direct consumption already gives).
func (p *Parser) parseInitList(close token.Kind, context string) ([]ast.Node, error) {
	var args []ast.Node
	if p.curKind() == close {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curKind() == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(close, "to close "+context); err != nil {
		return nil, err
	}
	return args, nil
}

// primary ::= literal | identifier | '(' expression ')' | '{' init-list '}'
func (p *Parser) parsePrimary() (ast.Node, error) {
	loc := p.loc()
	switch p.curKind() {
	case token.Int:
		tok := p.advance()
		return ast.NewIntNumber(loc, p.tz.Ints[tok.Store]), nil
	case token.Float:
		tok := p.advance()
		return ast.NewFloatNumber(loc, p.tz.Floats[tok.Store]), nil
	case token.True:
		p.advance()
		return ast.NewBool(loc, true), nil
	case token.False:
		p.advance()
		return ast.NewBool(loc, false), nil
	case token.Char:
		tok := p.advance()
		raw := p.tz.Strings[tok.Store]
		return ast.NewChar(loc, raw, decodeCharLiteral(raw)), nil
	case token.String:
		tok := p.advance()
		return ast.NewString(loc, p.tz.Strings[tok.Store]), nil
	case token.Ident:
		tok := p.advance()
		return ast.NewIdent(loc, p.tz.Strings[tok.Store]), nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "to close parenthesized expression"); err != nil {
			return nil, err
		}
		// Parentheses only affect parse order; there is no Grouping node.
		return inner, nil
	case token.LBrace:
		p.advance()
		elements, err := p.parseInitList(token.RBrace, "brace-initializer list")
		if err != nil {
			return nil, err
		}
		return ast.NewBraced(loc, elements), nil
	}
	return nil, p.errorf("unexpected token %s", p.curText())
}

func decodeCharLiteral(raw string) rune {
	if raw == "" {
		return 0
	}
	if raw[0] == '\\' && len(raw) >= 2 {
		switch raw[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		}
	}
	for _, r := range raw {
		return r
	}
	return 0
}
