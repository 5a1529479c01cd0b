package lexer

import (
	"strconv"
	"strings"

	"github.com/apexgrad/autodiff/internal/token"
)

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentContinuation(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isDigit(b) || b >= 0x80
}

func isExponentIntroducer(b byte) bool {
	return b == 'e' || b == 'E' || b == 'p' || b == 'P'
}

// ppNumberSpan greedily consumes a pp-number starting at pos, per the
// C++-preprocessor grammar: an optional leading '.', a digit, then any
// run of digits, identifier-continuation characters, `'`-digit
// separators, and exponent-sign pairs (e/E/p/P followed by +/-).
func ppNumberSpan(text string, pos int) int {
	i := pos
	if i < len(text) && text[i] == '.' {
		i++
	}
	// Caller guarantees text[pos] (or text[pos+1] for the '.' case) is a digit.
	for i < len(text) {
		c := text[i]
		switch {
		case isExponentIntroducer(c) && i+1 < len(text) && (text[i+1] == '+' || text[i+1] == '-'):
			i += 2
		case c == '\'' && i+1 < len(text) && isIdentContinuation(text[i+1]):
			i += 2
		case c == '.':
			i++
		case isIdentContinuation(c):
			i++
		default:
			return i
		}
	}
	return i
}

func isFloatingSpan(span string) bool {
	for i := 0; i < len(span); i++ {
		c := span[i]
		if c == '.' {
			return true
		}
		if isExponentIntroducer(c) && i > 0 {
			return true
		}
	}
	return false
}

// scanNumber recognizes a pp-number at the current position, classifies
// it, and pushes an Int or Float token. It errors on integer overflow
// (handled by strconv.ParseUint's own range check), an exponent exceeding
// the representable range, or a span that float/int parsing cannot fully
// consume.
func (t *Tokenizer) scanNumber() error {
	begin := t.pos
	end := ppNumberSpan(t.Text, t.pos)
	span := t.Text[begin:end]
	clean := strings.ReplaceAll(span, "'", "")

	if isFloatingSpan(clean) {
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return t.errorAt(begin, "invalid floating-point literal %q: %v", span, err)
		}
		store := uint32(len(t.Floats))
		t.Floats = append(t.Floats, f)
		t.push(token.Token{Kind: token.Float, Store: store, Begin: begin, End: end})
		t.pos = end
		return nil
	}

	u, err := strconv.ParseUint(clean, 10, 64)
	if err != nil {
		return t.errorAt(begin, "invalid or overflowing integer literal %q: %v", span, err)
	}
	store := uint32(len(t.Ints))
	t.Ints = append(t.Ints, u)
	t.push(token.Token{Kind: token.Int, Store: store, Begin: begin, End: end})
	t.pos = end
	return nil
}
