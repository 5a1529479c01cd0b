package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/apexgrad/autodiff/internal/token"
)

// Tokenizer holds the complete output of tokenizing one source string:
// the token stream itself, the owned side tables literal tokens index
// into, and the line-offset table used to resolve diagnostics. Once
// Tokenize returns successfully, a Tokenizer is immutable.
type Tokenizer struct {
	Text    string
	Tokens  []token.Token
	Strings []string
	Ints    []uint64
	Floats  []float64

	lineOffsets []int
	stringIndex map[string]uint32
	pos         int
}

// Tokenize lexes source in full and returns the resulting Tokenizer, or a
// *LexError on the first lexical failure.
func Tokenize(source string) (*Tokenizer, error) {
	t := &Tokenizer{
		Text:        source,
		stringIndex: make(map[string]uint32),
	}
	t.buildLineOffsets()

	for {
		if err := t.skipTrivia(); err != nil {
			return nil, err
		}
		if t.atEnd() {
			t.push(token.Token{Kind: token.EOF, Store: token.NoStore, Begin: t.pos, End: t.pos})
			return t, nil
		}
		if err := t.scanOne(); err != nil {
			return nil, err
		}
	}
}

func (t *Tokenizer) push(tok token.Token) {
	t.Tokens = append(t.Tokens, tok)
}

func (t *Tokenizer) atEnd() bool { return t.pos >= len(t.Text) }

func (t *Tokenizer) errorAt(offset int, format string, args ...interface{}) error {
	p := t.PositionAt(offset)
	return &LexError{Offset: offset, Line: p.Line, Col: p.Col, Message: fmt.Sprintf(format, args...)}
}

// internString returns the Strings-table index for s, interning it if
// this is the first occurrence.
func (t *Tokenizer) internString(s string) uint32 {
	if idx, ok := t.stringIndex[s]; ok {
		return idx
	}
	idx := uint32(len(t.Strings))
	t.Strings = append(t.Strings, s)
	t.stringIndex[s] = idx
	return idx
}

func (t *Tokenizer) skipTrivia() error {
	for !t.atEnd() {
		c := t.Text[t.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			t.pos++
		case c == '/' && t.pos+1 < len(t.Text) && t.Text[t.pos+1] == '/':
			for !t.atEnd() && t.Text[t.pos] != '\n' {
				t.pos++
			}
		case c == '/' && t.pos+1 < len(t.Text) && t.Text[t.pos+1] == '*':
			begin := t.pos
			t.pos += 2
			closed := false
			for !t.atEnd() {
				if t.Text[t.pos] == '*' && t.pos+1 < len(t.Text) && t.Text[t.pos+1] == '/' {
					t.pos += 2
					closed = true
					break
				}
				t.pos++
			}
			if !closed {
				return t.errorAt(begin, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func isIdentStartByte(text string, pos int) (rune, int, bool) {
	c := text[pos]
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return rune(c), 1, true
	}
	if c >= 0x80 {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if r != utf8.RuneError && r >= 0x80 {
			return r, size, true
		}
	}
	return 0, 0, false
}

// scanOne lexes exactly one token at the current position, per the
// selection order number -> char -> string -> identifier -> operator.
func (t *Tokenizer) scanOne() error {
	c := t.Text[t.pos]

	if isDigit(c) || (c == '.' && t.pos+1 < len(t.Text) && isDigit(t.Text[t.pos+1])) {
		return t.scanNumber()
	}
	if c == '\'' {
		return t.scanChar()
	}
	if c == '"' {
		return t.scanString()
	}
	if _, _, ok := isIdentStartByte(t.Text, t.pos); ok {
		return t.scanIdentifier()
	}

	kind, n, ok := matchOperator(t.Text, t.pos)
	if !ok {
		return t.errorAt(t.pos, "unexpected byte %q", c)
	}
	begin := t.pos
	t.pos += n
	t.push(token.Token{Kind: kind, Store: token.NoStore, Begin: begin, End: t.pos})
	return nil
}

func (t *Tokenizer) scanIdentifier() error {
	begin := t.pos
	for !t.atEnd() {
		if r, size, ok := isIdentStartByte(t.Text, t.pos); ok {
			_ = r
			t.pos += size
			continue
		}
		if isDigit(t.Text[t.pos]) {
			t.pos++
			continue
		}
		break
	}
	text := t.Text[begin:t.pos]
	switch text {
	case "true":
		t.push(token.Token{Kind: token.True, Store: token.NoStore, Begin: begin, End: t.pos})
		return nil
	case "false":
		t.push(token.Token{Kind: token.False, Store: token.NoStore, Begin: begin, End: t.pos})
		return nil
	}
	store := t.internString(text)
	t.push(token.Token{Kind: token.Ident, Store: store, Begin: begin, End: t.pos})
	return nil
}

func (t *Tokenizer) scanChar() error {
	begin := t.pos
	t.pos++ // opening quote
	if t.atEnd() {
		return t.errorAt(begin, "unterminated character literal")
	}
	var raw []byte
	for !t.atEnd() && t.Text[t.pos] != '\'' {
		if t.Text[t.pos] == '\\' && t.pos+1 < len(t.Text) {
			raw = append(raw, t.Text[t.pos], t.Text[t.pos+1])
			t.pos += 2
			continue
		}
		raw = append(raw, t.Text[t.pos])
		t.pos++
	}
	if t.atEnd() {
		return t.errorAt(begin, "unterminated character literal")
	}
	t.pos++ // closing quote
	store := t.internString(string(raw))
	t.push(token.Token{Kind: token.Char, Store: store, Begin: begin, End: t.pos})
	return nil
}

func (t *Tokenizer) scanString() error {
	begin := t.pos
	t.pos++ // opening quote
	var raw []byte
	for !t.atEnd() && t.Text[t.pos] != '"' {
		if t.Text[t.pos] == '\\' && t.pos+1 < len(t.Text) {
			esc := t.Text[t.pos+1]
			switch esc {
			case 'n':
				esc = '\n'
			case 't':
				esc = '\t'
			case 'r':
				esc = '\r'
			case '0':
				esc = 0
			case '\\', '"', '\'':
			default:
				return t.errorAt(t.pos, "invalid escape sequence \\%c in string literal", esc)
			}
			raw = append(raw, esc)
			t.pos += 2
			continue
		}
		raw = append(raw, t.Text[t.pos])
		t.pos++
	}
	if t.atEnd() {
		return t.errorAt(begin, "unterminated string literal")
	}
	t.pos++ // closing quote
	store := t.internString(string(raw))
	t.push(token.Token{Kind: token.String, Store: store, Begin: begin, End: t.pos})
	return nil
}
