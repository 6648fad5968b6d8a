// Package lexer turns Vexel source text into a token stream.
//
// The scanner is rune-at-a-time, in the shape of the teacher's
// pkg/parsley/lexer: a small lookahead buffer (ch/peek), explicit
// line/column tracking, and a keyword table consulted once an
// identifier-shaped run has been collected.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stuncs69/vexel/internal/token"
)

// LexError reports a malformed token: unterminated string, invalid
// escape, or a stray character the grammar has no place for.
type LexError struct {
	Line, Column int
	Msg          string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LexError: line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Lexer scans a single source file's text into tokens on demand.
type Lexer struct {
	src    []rune
	pos    int
	line   int
	column int

	// lineOpen is true once a token has been emitted on the current line;
	// at EOF it makes NextToken emit one closing NEWLINE before EOF.
	lineOpen bool
}

// New constructs a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, column: 0}
}

func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekRuneAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.src)
}

// skipInlineWhitespace skips spaces/tabs and `#`-comments, but does not
// consume newlines: those are significant statement terminators.
func (l *Lexer) skipInlineWhitespace() {
	for !l.atEOF() {
		r := l.peekRune()
		if r == ' ' || r == '\t' || r == '\r' {
			l.advance()
			continue
		}
		if r == '#' {
			for !l.atEOF() && l.peekRune() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// NextToken returns the next token in the stream, or an *LexError.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipInlineWhitespace()

	line, col := l.line, l.column+1

	if l.atEOF() {
		if l.lineOpen {
			l.lineOpen = false
			return token.Token{Type: token.NEWLINE, Literal: "\n", Line: line, Column: col}, nil
		}
		return token.Token{Type: token.EOF, Line: line, Column: col}, nil
	}

	r := l.peekRune()

	if r == '\n' {
		l.advance()
		l.lineOpen = false
		return token.Token{Type: token.NEWLINE, Literal: "\n", Line: line, Column: col}, nil
	}
	l.lineOpen = true

	switch r {
	case '(':
		l.advance()
		return token.Token{Type: token.LPAREN, Literal: "(", Line: line, Column: col}, nil
	case ')':
		l.advance()
		return token.Token{Type: token.RPAREN, Literal: ")", Line: line, Column: col}, nil
	case '[':
		l.advance()
		return token.Token{Type: token.LBRACKET, Literal: "[", Line: line, Column: col}, nil
	case ']':
		l.advance()
		return token.Token{Type: token.RBRACKET, Literal: "]", Line: line, Column: col}, nil
	case '{':
		l.advance()
		return token.Token{Type: token.LBRACE, Literal: "{", Line: line, Column: col}, nil
	case '}':
		l.advance()
		return token.Token{Type: token.RBRACE, Literal: "}", Line: line, Column: col}, nil
	case ',':
		l.advance()
		return token.Token{Type: token.COMMA, Literal: ",", Line: line, Column: col}, nil
	case '.':
		l.advance()
		return token.Token{Type: token.DOT, Literal: ".", Line: line, Column: col}, nil
	case ':':
		l.advance()
		return token.Token{Type: token.COLON, Literal: ":", Line: line, Column: col}, nil
	case '+':
		l.advance()
		return token.Token{Type: token.PLUS, Literal: "+", Line: line, Column: col}, nil
	case '=':
		l.advance()
		if l.peekRune() == '=' {
			l.advance()
			return token.Token{Type: token.EQ, Literal: "==", Line: line, Column: col}, nil
		}
		return token.Token{Type: token.ASSIGN, Literal: "=", Line: line, Column: col}, nil
	case '!':
		l.advance()
		if l.peekRune() == '=' {
			l.advance()
			return token.Token{Type: token.NOT_EQ, Literal: "!=", Line: line, Column: col}, nil
		}
		return token.Token{}, &LexError{line, col, "stray '!' (only '!=' is valid)"}
	case '<':
		l.advance()
		if l.peekRune() == '=' {
			l.advance()
			return token.Token{Type: token.LTE, Literal: "<=", Line: line, Column: col}, nil
		}
		return token.Token{Type: token.LT, Literal: "<", Line: line, Column: col}, nil
	case '>':
		l.advance()
		if l.peekRune() == '=' {
			l.advance()
			return token.Token{Type: token.GTE, Literal: ">=", Line: line, Column: col}, nil
		}
		return token.Token{Type: token.GT, Literal: ">", Line: line, Column: col}, nil
	case '"':
		return l.lexString(line, col)
	}

	if r == '-' && isDigit(l.peekRuneAt(1)) {
		return l.lexNumber(line, col)
	}
	if isDigit(r) {
		return l.lexNumber(line, col)
	}
	if isIdentStart(r) {
		return l.lexIdent(line, col)
	}

	l.advance()
	return token.Token{}, &LexError{line, col, fmt.Sprintf("unexpected character %q", r)}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= utf8.RuneSelf
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (l *Lexer) lexNumber(line, col int) (token.Token, error) {
	var sb strings.Builder
	if l.peekRune() == '-' {
		sb.WriteRune(l.advance())
	}
	for isDigit(l.peekRune()) {
		sb.WriteRune(l.advance())
	}
	return token.Token{Type: token.INT, Literal: sb.String(), Line: line, Column: col}, nil
}

func (l *Lexer) lexIdent(line, col int) (token.Token, error) {
	var sb strings.Builder
	for isIdentCont(l.peekRune()) {
		sb.WriteRune(l.advance())
	}
	lit := sb.String()
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: line, Column: col}, nil
}

// lexString consumes a double-quoted string literal, returning a plain
// STRING token when there is no `${...}` interpolation, or an ISTR token
// carrying the literal/expression fragment sequence otherwise.
func (l *Lexer) lexString(line, col int) (token.Token, error) {
	l.advance() // opening quote

	var parts []token.InterpPart
	var lit strings.Builder
	interpolated := false

	flush := func() {
		if lit.Len() > 0 || len(parts) == 0 {
			parts = append(parts, token.InterpPart{Literal: lit.String()})
			lit.Reset()
		}
	}

	for {
		if l.atEOF() {
			return token.Token{}, &LexError{line, col, "unterminated string literal"}
		}
		r := l.peekRune()
		if r == '"' {
			l.advance()
			break
		}
		if r == '\n' {
			return token.Token{}, &LexError{line, col, "unterminated string literal"}
		}
		if r == '\\' {
			l.advance()
			esc := l.advance()
			switch esc {
			case '"':
				lit.WriteRune('"')
			case '\\':
				lit.WriteRune('\\')
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			default:
				return token.Token{}, &LexError{line, col, fmt.Sprintf("invalid escape '\\%c'", esc)}
			}
			continue
		}
		if r == '$' && l.peekRuneAt(1) == '{' {
			interpolated = true
			flush()
			l.advance()
			l.advance()
			depth := 1
			var expr strings.Builder
			for {
				if l.atEOF() {
					return token.Token{}, &LexError{line, col, "unterminated '${' interpolation"}
				}
				c := l.peekRune()
				if c == '{' {
					depth++
				} else if c == '}' {
					depth--
					if depth == 0 {
						l.advance()
						break
					}
				}
				expr.WriteRune(l.advance())
			}
			parts = append(parts, token.InterpPart{Expr: expr.String(), IsExpr: true})
			continue
		}
		lit.WriteRune(l.advance())
	}
	flush()

	if !interpolated {
		return token.Token{Type: token.STRING, Literal: parts[0].Literal, Line: line, Column: col}, nil
	}
	return token.Token{Type: token.ISTR, Parts: parts, Line: line, Column: col}, nil
}
