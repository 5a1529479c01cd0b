package lexer

import (
	"sort"

	"github.com/apexgrad/autodiff/internal/token"
)

// opEntry is one row of the static punctuator table: a symbol and the
// Kind it lexes to.
type opEntry struct {
	symbol string
	kind   token.Kind
}

// operatorTable is the complete punctuator vocabulary, grounded in the
// reference tokenizer's sorted symbol table. It is not pre-sorted here;
// the package's init function sorts a copy once so the source order
// below can stay grouped by precedence family for readability.
var operatorTable = []opEntry{
	{"(", token.LParen}, {")", token.RParen},
	{"[", token.LBracket}, {"]", token.RBracket},
	{"{", token.LBrace}, {"}", token.RBrace},

	{"++", token.PlusPlus}, {"--", token.MinusMinus},
	{"~", token.Tilde}, {"!", token.Bang},

	{".", token.Dot}, {"->", token.Arrow},

	{"+", token.Plus}, {"-", token.Minus},
	{"*", token.Star}, {"/", token.Slash}, {"%", token.Percent},

	{"<<", token.Shl}, {">>", token.Shr},

	{"<", token.Lt}, {">", token.Gt},
	{"<=", token.Lte}, {">=", token.Gte},
	{"==", token.EqEq}, {"!=", token.NotEq},

	{"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret},
	{"&&", token.AmpAmp}, {"||", token.PipePipe},

	{"=", token.Assign},
	{"+=", token.PlusEq}, {"-=", token.MinusEq},
	{"*=", token.StarEq}, {"/=", token.SlashEq}, {"%=", token.PercentEq},
	{"<<=", token.ShlEq}, {">>=", token.ShrEq},
	{"&=", token.AmpEq}, {"|=", token.PipeEq}, {"^=", token.CaretEq},

	{"?", token.Question}, {":", token.Colon},
	{",", token.Comma}, {";", token.Semicolon},
}

// opRange is the [begin, end) slice of sortedOps whose symbols agree up
// to the current matching depth.
type opRange struct {
	begin, end int
}

var (
	sortedOps      []opEntry
	firstByteIndex [257]opRange
)

func init() {
	sortedOps = append([]opEntry(nil), operatorTable...)
	sort.Slice(sortedOps, func(i, j int) bool {
		return sortedOps[i].symbol < sortedOps[j].symbol
	})

	var b int
	for byteVal := 0; byteVal < 256; byteVal++ {
		for b < len(sortedOps) && sortedOps[b].symbol[0] < byte(byteVal) {
			b++
		}
		begin := b
		for b < len(sortedOps) && sortedOps[b].symbol[0] == byte(byteVal) {
			b++
		}
		firstByteIndex[byteVal] = opRange{begin, b}
	}
	firstByteIndex[256] = opRange{len(sortedOps), len(sortedOps)}
}

// matchOperator finds the longest punctuator symbol that is a prefix of
// text[pos:], per the first-byte-index-then-range-narrowing algorithm:
// the match starts from the [begin,end) range of entries sharing the
// first byte, then iteratively narrows to entries agreeing on each
// successive byte, remembering the deepest depth at which some entry in
// the range terminates exactly.
func matchOperator(text string, pos int) (token.Kind, int, bool) {
	if pos >= len(text) {
		return token.Illegal, 0, false
	}
	first := text[pos]
	r := firstByteIndex[first]
	if r.begin == r.end {
		return token.Illegal, 0, false
	}

	bestKind := token.Illegal
	bestLen := 0
	depth := 0
	for r.begin < r.end {
		// Does any entry in the current range terminate exactly at this depth?
		for i := r.begin; i < r.end; i++ {
			if len(sortedOps[i].symbol) == depth+1 {
				bestKind = sortedOps[i].kind
				bestLen = depth + 1
				break
			}
		}
		depth++
		if pos+depth >= len(text) {
			break
		}
		next := text[pos+depth]
		newBegin, newEnd := r.end, r.end
		for i := r.begin; i < r.end; i++ {
			if len(sortedOps[i].symbol) > depth && sortedOps[i].symbol[depth] == next {
				if newBegin == r.end {
					newBegin = i
				}
				newEnd = i + 1
			}
		}
		if newBegin == r.end {
			break
		}
		r = opRange{newBegin, newEnd}
	}

	if bestLen == 0 {
		return token.Illegal, 0, false
	}
	return bestKind, bestLen, true
}
