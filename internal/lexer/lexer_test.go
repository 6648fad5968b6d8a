package lexer

import (
	"testing"

	"github.com/stuncs69/vexel/internal/token"
)

func collectTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	l := New(src)
	var types []token.Type
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	return types
}

func TestLexKeywordsAndPunctuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Type
	}{
		{
			name:     "set statement",
			input:    "set x 2",
			expected: []token.Type{token.SET, token.IDENT, token.INT, token.NEWLINE, token.EOF},
		},
		{
			name:     "if start end",
			input:    "if true start\nend",
			expected: []token.Type{token.IF, token.TRUE, token.START, token.NEWLINE, token.END, token.NEWLINE, token.EOF},
		},
		{
			name:     "comparison operators",
			input:    "a == b != c < d > e <= f >= g",
			expected: []token.Type{
				token.IDENT, token.EQ, token.IDENT, token.NOT_EQ, token.IDENT, token.LT, token.IDENT,
				token.GT, token.IDENT, token.LTE, token.IDENT, token.GTE, token.IDENT, token.NEWLINE, token.EOF,
			},
		},
		{
			name:     "brackets and call syntax",
			input:    `f(a, b.c)[0]`,
			expected: []token.Type{
				token.IDENT, token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.DOT, token.IDENT,
				token.RPAREN, token.LBRACKET, token.INT, token.RBRACKET, token.NEWLINE, token.EOF,
			},
		},
		{
			name:     "object literal",
			input:    `{a: 1, b: 2}`,
			expected: []token.Type{
				token.LBRACE, token.IDENT, token.COLON, token.INT, token.COMMA, token.IDENT, token.COLON,
				token.INT, token.RBRACE, token.NEWLINE, token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectTypes(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("token count: got %d (%v), want %d (%v)", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexCommentIgnored(t *testing.T) {
	got := collectTypes(t, "set x 1 # trailing comment\n")
	want := []token.Type{token.SET, token.IDENT, token.INT, token.NEWLINE, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d\\e"`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	want := "a\nb\tc\"d\\e"
	if tok.Literal != want {
		t.Errorf("got %q, want %q", tok.Literal, want)
	}
}

func TestLexUnterminatedStringIsLexError(t *testing.T) {
	l := New(`"unterminated`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestLexNegativeNumberAtExpressionPosition(t *testing.T) {
	got := collectTypes(t, "set x -5")
	want := []token.Type{token.SET, token.IDENT, token.INT, token.NEWLINE, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexInterpolatedString(t *testing.T) {
	l := New(`"hi ${name}!"`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.ISTR {
		t.Fatalf("expected ISTR, got %v", tok.Type)
	}
	if len(tok.Parts) == 0 {
		t.Fatal("expected interpolation parts to be populated")
	}
}
