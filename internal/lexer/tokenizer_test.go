package lexer

import (
	"testing"

	"github.com/apexgrad/autodiff/internal/token"
)

func TestTokenize_Basic(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []token.Kind
	}{
		{
			name:  "identifier plus number",
			src:   "x + 1",
			kinds: []token.Kind{token.Ident, token.Plus, token.Int, token.EOF},
		},
		{
			name:  "float literal",
			src:   "3.14",
			kinds: []token.Kind{token.Float, token.EOF},
		},
		{
			name:  "call expression",
			src:   "sin(x)",
			kinds: []token.Kind{token.Ident, token.LParen, token.Ident, token.RParen, token.EOF},
		},
		{
			name:  "member access",
			src:   "v.y",
			kinds: []token.Kind{token.Ident, token.Dot, token.Ident, token.EOF},
		},
		{
			name:  "arrow member access",
			src:   "p->x",
			kinds: []token.Kind{token.Ident, token.Arrow, token.Ident, token.EOF},
		},
		{
			name:  "boolean keywords",
			src:   "true && false",
			kinds: []token.Kind{token.True, token.AmpAmp, token.False, token.EOF},
		},
		{
			name:  "compound assignment",
			src:   "x += 1",
			kinds: []token.Kind{token.Ident, token.PlusEq, token.Int, token.EOF},
		},
		{
			name:  "skips line comment",
			src:   "x // trailing\n+ 1",
			kinds: []token.Kind{token.Ident, token.Plus, token.Int, token.EOF},
		},
		{
			name:  "skips block comment",
			src:   "x /* mid */ + 1",
			kinds: []token.Kind{token.Ident, token.Plus, token.Int, token.EOF},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tz, err := Tokenize(tc.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tc.src, err)
			}
			if len(tz.Tokens) != len(tc.kinds) {
				t.Fatalf("Tokenize(%q): got %d tokens, want %d", tc.src, len(tz.Tokens), len(tc.kinds))
			}
			for i, k := range tc.kinds {
				if tz.Tokens[i].Kind != k {
					t.Errorf("token %d: got %s, want %s", i, tz.Tokens[i].Kind, k)
				}
			}
		})
	}
}

func TestTokenize_StringLiteral(t *testing.T) {
	tz, err := Tokenize(`"hello\nworld"`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if len(tz.Tokens) != 2 {
		t.Fatalf("got %d tokens, want 2 (string + EOF)", len(tz.Tokens))
	}
	tok := tz.Tokens[0]
	if tok.Kind != token.String {
		t.Fatalf("got kind %s, want String", tok.Kind)
	}
	got := tz.Strings[tok.Store]
	want := "hello\nworld"
	if got != want {
		t.Errorf("got string %q, want %q", got, want)
	}
}

func TestTokenize_CharLiteral(t *testing.T) {
	tz, err := Tokenize(`'a'`)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if tz.Tokens[0].Kind != token.Char {
		t.Fatalf("got kind %s, want Char", tz.Tokens[0].Kind)
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("got error of type %T, want *LexError", err)
	}
}

func TestTokenize_IllegalCharacter(t *testing.T) {
	_, err := Tokenize("x @ y")
	if err == nil {
		t.Fatal("expected an error for an illegal character")
	}
}

func TestPositionAt_MultiLine(t *testing.T) {
	tz, err := Tokenize("x\n+ y")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	// tokens: Ident(x) Plus Ident(y) EOF
	pos := tz.TokenPosition(2)
	if pos.Line != 2 || pos.Col != 3 {
		t.Errorf("got %+v, want line 2 col 3", pos)
	}
}
