package parser

import (
	"github.com/apexgrad/autodiff/internal/ast"
	"github.com/apexgrad/autodiff/internal/token"
)

// Precedence levels, lowest to highest, matching the fourteen-level
// C-family lattice: comma < assignment < logical-or < logical-and <
// bitwise-or < bitwise-xor < bitwise-and < equality < relational <
// shift < additive < multiplicative < pointer-to-member. Comma,
// assignment, and ternary are not folded by the generic binary loop
// (precBitOr and above only); they have their own grammar rules.
const (
	precNone = iota
	precComma
	precAssignment
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPtrMem
)

// binaryOp maps a token.Kind to its ExprOp and precedence, for every
// operator the generic binary fold loop handles (i.e. every binary
// operator except comma, assignment, and ternary, which have dedicated
// productions). Plain `.`/`->` member access is handled by the postfix
// production instead (see parsePostfix) — the pointer-to-member level
// (precPtrMem) is reserved for `.*`/`->*`, which this tokenizer does not
// lex, so no token currently maps to it; it stays in the lattice so the
// ordering of the other levels matches the full C-family precedence
// table unchanged.
func binaryOp(k token.Kind) (ast.ExprOp, int, bool) {
	switch k {
	case token.Star:
		return ast.OpMul, precMultiplicative, true
	case token.Slash:
		return ast.OpDiv, precMultiplicative, true
	case token.Percent:
		return ast.OpMod, precMultiplicative, true
	case token.Plus:
		return ast.OpAdd, precAdditive, true
	case token.Minus:
		return ast.OpSub, precAdditive, true
	case token.Shl:
		return ast.OpShl, precShift, true
	case token.Shr:
		return ast.OpShr, precShift, true
	case token.Lt:
		return ast.OpLt, precRelational, true
	case token.Gt:
		return ast.OpGt, precRelational, true
	case token.Lte:
		return ast.OpLte, precRelational, true
	case token.Gte:
		return ast.OpGte, precRelational, true
	case token.EqEq:
		return ast.OpEq, precEquality, true
	case token.NotEq:
		return ast.OpNe, precEquality, true
	case token.Amp:
		return ast.OpBitAnd, precBitAnd, true
	case token.Caret:
		return ast.OpBitXor, precBitXor, true
	case token.Pipe:
		return ast.OpBitOr, precBitOr, true
	}
	return ast.OpNone, precNone, false
}

// assignOp maps a compound/plain assignment token to its ExprOp.
func assignOp(k token.Kind) (ast.ExprOp, bool) {
	switch k {
	case token.Assign:
		return ast.OpAssign, true
	case token.PlusEq:
		return ast.OpAssignAdd, true
	case token.MinusEq:
		return ast.OpAssignSub, true
	case token.StarEq:
		return ast.OpAssignMul, true
	case token.SlashEq:
		return ast.OpAssignDiv, true
	case token.PercentEq:
		return ast.OpAssignMod, true
	case token.ShlEq:
		return ast.OpAssignShl, true
	case token.ShrEq:
		return ast.OpAssignShr, true
	case token.AmpEq:
		return ast.OpAssignAnd, true
	case token.PipeEq:
		return ast.OpAssignOr, true
	case token.CaretEq:
		return ast.OpAssignXor, true
	}
	return ast.OpNone, false
}

// prefixOp maps a prefix-operator token to its ExprOp, for the unary
// production's `(prefix-op)*` loop.
func prefixOp(k token.Kind) (ast.ExprOp, bool) {
	switch k {
	case token.PlusPlus:
		return ast.OpIncPre, true
	case token.MinusMinus:
		return ast.OpDecPre, true
	case token.Tilde:
		return ast.OpComplement, true
	case token.Bang:
		return ast.OpLogicalNot, true
	case token.Plus:
		return ast.OpPlus, true
	case token.Minus:
		return ast.OpMinus, true
	case token.Amp:
		return ast.OpAddressOf, true
	case token.Star:
		return ast.OpIndirection, true
	}
	return ast.OpNone, false
}
