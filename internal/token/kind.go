// Package token defines the lexical token vocabulary shared by the
// tokenizer, operator matcher, number lexer, and parser.
package token

// Kind identifies the lexical class of a Token. The enumerants cover
// identifier, literal, boolean-keyword, and every C-family punctuator this
// engine's expression grammar recognizes. There are no statement or
// declaration keywords: this tokenizer only ever lexes one expression.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// Literals and identifiers.
	Ident
	Int
	Float
	Char
	String
	True
	False

	// Punctuation that also acts as grouping.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	// Postfix / prefix.
	PlusPlus
	MinusMinus
	Tilde
	Bang
	Amp
	Star

	// Pointer-to-member.
	Dot
	Arrow

	// Multiplicative / additive.
	Plus
	Minus
	Slash
	Percent

	// Shift.
	Shl
	Shr

	// Relational.
	Lt
	Gt
	Lte
	Gte
	EqEq
	NotEq

	// Bitwise.
	Pipe
	Caret

	// Logical.
	AmpAmp
	PipePipe

	// Assignment family.
	Assign
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	ShlEq
	ShrEq
	AmpEq
	PipeEq
	CaretEq

	// Ternary / sequencing.
	Question
	Colon
	Comma

	// Semicolon is lexed, but no grammar rule consumes it: the parser
	// reports one as an unexpected token.
	Semicolon
)

var kindNames = map[Kind]string{
	Illegal:    "illegal",
	EOF:        "eof",
	Ident:      "identifier",
	Int:        "int-literal",
	Float:      "float-literal",
	Char:       "char-literal",
	String:     "string-literal",
	True:       "true",
	False:      "false",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	PlusPlus:   "++",
	MinusMinus: "--",
	Tilde:      "~",
	Bang:       "!",
	Amp:        "&",
	Star:       "*",
	Dot:        ".",
	Arrow:      "->",
	Plus:       "+",
	Minus:      "-",
	Slash:      "/",
	Percent:    "%",
	Shl:        "<<",
	Shr:        ">>",
	Lt:         "<",
	Gt:         ">",
	Lte:        "<=",
	Gte:        ">=",
	EqEq:       "==",
	NotEq:      "!=",
	Pipe:       "|",
	Caret:      "^",
	AmpAmp:     "&&",
	PipePipe:   "||",
	Assign:     "=",
	PlusEq:     "+=",
	MinusEq:    "-=",
	StarEq:     "*=",
	SlashEq:    "/=",
	PercentEq:  "%=",
	ShlEq:      "<<=",
	ShrEq:      ">>=",
	AmpEq:      "&=",
	PipeEq:     "|=",
	CaretEq:    "^=",
	Question:   "?",
	Colon:      ":",
	Comma:      ",",
	Semicolon:  ";",
}

// String renders a Kind the way it would appear in source, or its symbolic
// name for kinds with no fixed spelling (identifiers, literals, EOF).
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
