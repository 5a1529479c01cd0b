package lexer

import (
	"testing"

	"github.com/apexgrad/autodiff/internal/token"
)

func TestMatchOperator_LongestMatch(t *testing.T) {
	tests := []struct {
		text    string
		pos     int
		kind    token.Kind
		length  int
	}{
		{"<<=", 0, token.ShlEq, 3},
		{"<<", 0, token.Shl, 2},
		{"<", 0, token.Lt, 1},
		{"<=x", 0, token.Lte, 2},
		{"->x", 0, token.Arrow, 2},
		{".x", 0, token.Dot, 1},
		{"+=", 0, token.PlusEq, 2},
		{"++", 0, token.PlusPlus, 2},
		{"+", 0, token.Plus, 1},
		{"&&", 0, token.AmpAmp, 2},
		{"&=", 0, token.AmpEq, 2},
		{"&", 0, token.Amp, 1},
		{"x + y", 2, token.Plus, 1},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			kind, length, ok := matchOperator(tc.text, tc.pos)
			if !ok {
				t.Fatalf("matchOperator(%q, %d): no match", tc.text, tc.pos)
			}
			if kind != tc.kind || length != tc.length {
				t.Errorf("matchOperator(%q, %d) = (%s, %d), want (%s, %d)",
					tc.text, tc.pos, kind, length, tc.kind, tc.length)
			}
		})
	}
}

func TestMatchOperator_NoMatch(t *testing.T) {
	if _, _, ok := matchOperator("@", 0); ok {
		t.Error("expected no match for '@'")
	}
	if _, _, ok := matchOperator("", 0); ok {
		t.Error("expected no match for empty text")
	}
}
