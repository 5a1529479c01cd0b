// Package ast defines the expression AST produced by the parser: a
// tagged-variant value per node, matched by type switch rather than by
// a visitor interface or a shared kind-tagged base (see the design note
// on native sum types over C++-style downcasts).
package ast

import "github.com/apexgrad/autodiff/internal/token"

// ExprOp is the flat operator enum covering the complete C-family
// operator set this grammar recognizes: postfix/prefix unary operators,
// pointer-to-member, every left-associative binary operator, the full
// right-associative (plain and compound) assignment family, ternary, and
// comma/sequence.
type ExprOp int

const (
	OpNone ExprOp = iota

	OpIncPost
	OpDecPost

	OpIncPre
	OpDecPre
	OpComplement
	OpLogicalNot
	OpPlus
	OpMinus
	OpAddressOf
	OpIndirection

	OpPtrMemDot
	OpPtrMemArrow

	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpShl
	OpShr
	OpLt
	OpGt
	OpLte
	OpGte
	OpEq
	OpNe
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogAnd
	OpLogOr

	OpAssign
	OpAssignMul
	OpAssignDiv
	OpAssignMod
	OpAssignAdd
	OpAssignSub
	OpAssignShl
	OpAssignShr
	OpAssignAnd
	OpAssignOr
	OpAssignXor

	OpTernary
	OpSequence
)

var exprOpNames = map[ExprOp]string{
	OpIncPost: "++", OpDecPost: "--",
	OpIncPre: "++", OpDecPre: "--",
	OpComplement: "~", OpLogicalNot: "!", OpPlus: "+", OpMinus: "-",
	OpAddressOf: "&", OpIndirection: "*",
	OpPtrMemDot: ".", OpPtrMemArrow: "->",
	OpMul: "*", OpDiv: "/", OpMod: "%", OpAdd: "+", OpSub: "-",
	OpShl: "<<", OpShr: ">>",
	OpLt: "<", OpGt: ">", OpLte: "<=", OpGte: ">=", OpEq: "==", OpNe: "!=",
	OpBitAnd: "&", OpBitXor: "^", OpBitOr: "|", OpLogAnd: "&&", OpLogOr: "||",
	OpAssign: "=", OpAssignMul: "*=", OpAssignDiv: "/=", OpAssignMod: "%=",
	OpAssignAdd: "+=", OpAssignSub: "-=", OpAssignShl: "<<=", OpAssignShr: ">>=",
	OpAssignAnd: "&=", OpAssignOr: "|=", OpAssignXor: "^=",
	OpTernary: "?:", OpSequence: ",",
}

func (op ExprOp) String() string {
	if s, ok := exprOpNames[op]; ok {
		return s
	}
	return "op?"
}

// MemberConnector distinguishes `.` from `->` member access.
type MemberConnector int

const (
	Dot MemberConnector = iota
	Arrow
)

// Node is satisfied by every concrete AST node type.
type Node interface {
	Loc() token.SourceLoc
	exprNode()
}

type base struct {
	loc token.SourceLoc
}

func (b base) Loc() token.SourceLoc { return b.loc }
func (base) exprNode()              {}

// Ident is a bare identifier reference, e.g. `x`.
type Ident struct {
	base
	Name string
}

// Number is a numeric literal, tagged bool/int/float by the scanner's
// own classification of the literal. Int is unsigned because the grammar
// never lexes a sign into a numeric literal — a negative value is a
// Unary(-, Number) one level up — so Int covers the full u64 literal
// range without reserving a sign bit it would never use.
type Number struct {
	base
	IsFloat bool
	Int     uint64
	Float   float64
}

// Bool is a `true`/`false` literal.
type Bool struct {
	base
	Value bool
}

// Char is a character literal; Codepoint is its decoded rune (0 if the
// literal's escape could not be decoded to a single rune, which the
// tape builder rejects regardless since char literals are never
// differentiable).
type Char struct {
	base
	Codepoint rune
	Raw       string
}

// String is a string literal.
type String struct {
	base
	Value string
}

// Unary is a prefix or postfix unary expression.
type Unary struct {
	base
	Op    ExprOp
	Child Node
}

// Binary is a binary expression, including the comma/sequence and
// logical-and/or operators (there is no separate Logical node: a
// logical operator is simply a Binary with OpLogAnd/OpLogOr).
type Binary struct {
	base
	Op    ExprOp
	Left  Node
	Right Node
}

// Assign is an assignment expression (plain or compound); always
// right-associative.
type Assign struct {
	base
	Op    ExprOp
	Left  Node
	Right Node
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	base
	Cond Node
	Then Node
	Else Node
}

// Call is a function-call expression, `callee(args...)`.
type Call struct {
	base
	Callee Node
	Args   []Node
}

// Subscript is an index expression, `target[args...]`.
type Subscript struct {
	base
	Target Node
	Args   []Node
}

// Member is a member-access expression, `target.name` or `target->name`.
type Member struct {
	base
	Target    Node
	Connector MemberConnector
	Name      string
}

// Braced is a brace-delimited initializer list, `{ a, b, c }`.
type Braced struct {
	base
	Elements []Node
}

// Constructors below set the embedded, unexported location field; the
// parser (a different package) has no other way to populate it, since
// composite literals cannot name an unexported embedded field from
// outside the package.

func NewIdent(loc token.SourceLoc, name string) *Ident {
	return &Ident{base: base{loc: loc}, Name: name}
}

func NewIntNumber(loc token.SourceLoc, v uint64) *Number {
	return &Number{base: base{loc: loc}, Int: v}
}

func NewFloatNumber(loc token.SourceLoc, v float64) *Number {
	return &Number{base: base{loc: loc}, IsFloat: true, Float: v}
}

func NewBool(loc token.SourceLoc, v bool) *Bool {
	return &Bool{base: base{loc: loc}, Value: v}
}

func NewChar(loc token.SourceLoc, raw string, codepoint rune) *Char {
	return &Char{base: base{loc: loc}, Raw: raw, Codepoint: codepoint}
}

func NewString(loc token.SourceLoc, v string) *String {
	return &String{base: base{loc: loc}, Value: v}
}

func NewUnary(loc token.SourceLoc, op ExprOp, child Node) *Unary {
	return &Unary{base: base{loc: loc}, Op: op, Child: child}
}

func NewBinary(loc token.SourceLoc, op ExprOp, left, right Node) *Binary {
	return &Binary{base: base{loc: loc}, Op: op, Left: left, Right: right}
}

func NewAssign(loc token.SourceLoc, op ExprOp, left, right Node) *Assign {
	return &Assign{base: base{loc: loc}, Op: op, Left: left, Right: right}
}

func NewTernary(loc token.SourceLoc, cond, then, els Node) *Ternary {
	return &Ternary{base: base{loc: loc}, Cond: cond, Then: then, Else: els}
}

func NewCall(loc token.SourceLoc, callee Node, args []Node) *Call {
	return &Call{base: base{loc: loc}, Callee: callee, Args: args}
}

func NewSubscript(loc token.SourceLoc, target Node, args []Node) *Subscript {
	return &Subscript{base: base{loc: loc}, Target: target, Args: args}
}

func NewMember(loc token.SourceLoc, target Node, connector MemberConnector, name string) *Member {
	return &Member{base: base{loc: loc}, Target: target, Connector: connector, Name: name}
}

func NewBraced(loc token.SourceLoc, elements []Node) *Braced {
	return &Braced{base: base{loc: loc}, Elements: elements}
}
