// Package diag renders the three pipeline error kinds (lexer, parser,
// tape builder) against the original source text, for the CLI's error
// reporting path.
package diag

import (
	"fmt"
	"strings"

	"github.com/apexgrad/autodiff/internal/autodiff"
	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/parser"
)

// Render formats err as "line L col C: message" followed by the
// offending source line and a caret span under the named column. The
// caret is as wide as the offending token when one is known, rather than
// a single character, so a multi-character token is unambiguous.
func Render(source string, tz *lexer.Tokenizer, err error) string {
	var pos lexer.Position
	var header string
	width := 1

	switch e := err.(type) {
	case *lexer.LexError:
		pos = lexer.Position{Line: e.Line, Col: e.Col}
		header = e.Error()
	case *parser.ParseError:
		pos = tz.TokenPosition(e.TokenIndex)
		header = parser.DetailedError(tz, e)
		width = tokenWidth(tz, e.TokenIndex)
	case *autodiff.BuildError:
		pos = tz.TokenPosition(e.Loc.TokenIndex)
		header = fmt.Sprintf("line %d col %d: %s", pos.Line, pos.Col, e.Message)
		width = tokenWidth(tz, e.Loc.TokenIndex)
	default:
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	if line := sourceLine(source, pos.Line); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
		if pos.Col >= 1 {
			sb.WriteString(strings.Repeat(" ", pos.Col-1))
		}
		sb.WriteString(strings.Repeat("^", width))
		sb.WriteString("\n")
	}
	return sb.String()
}

// tokenWidth reports the byte length of the token at idx, for sizing the
// caret span; it falls back to a single character past the end of the
// token stream (an EOF-related diagnostic) or for an empty token.
func tokenWidth(tz *lexer.Tokenizer, idx int) int {
	if idx < 0 || idx >= len(tz.Tokens) {
		return 1
	}
	if n := tz.Tokens[idx].Len(); n > 0 {
		return n
	}
	return 1
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}
