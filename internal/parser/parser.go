// Package parser implements Vexel's top-down recursive-descent parser.
//
// The Parser struct shape (curToken/peekToken two-token lookahead over a
// lexer.Lexer) follows sambeau-basil/pkg/parsley/parser/parser.go, but
// spec.md §4.2's grammar is not a general Pratt expression grammar —
// comparisons are explicitly non-associative and `+` is a separate,
// lower-precedence concat chain rather than one level among many — so
// the expression parser here is a small fixed four-level descent
// (plus-chain → comparison → call/property suffix → atom) instead of a
// prefix/infix function-map dispatch table.
package parser

import (
	"fmt"

	"github.com/stuncs69/vexel/internal/ast"
	"github.com/stuncs69/vexel/internal/lexer"
	"github.com/stuncs69/vexel/internal/token"
	"github.com/stuncs69/vexel/internal/verrors"
)

// Parser consumes a token stream and produces a *ast.Program, or
// returns the first *verrors.VexelError it encounters (ClassParse, or
// ClassLex when the lexer itself fails).
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
}

// New constructs a Parser over the tokens of l.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{l: l}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	p.curToken = p.peekToken
	tok, err := p.l.NextToken()
	if err != nil {
		if lexErr, ok := err.(*lexer.LexError); ok {
			return verrors.New("LEX-0003", map[string]any{"Char": lexErr.Msg}).WithPosition(lexErr.Line, lexErr.Column)
		}
		return err
	}
	p.peekToken = tok
	return nil
}

func (p *Parser) errorf(code string, data map[string]any) error {
	return verrors.New(code, data).WithPosition(p.curToken.Line, p.curToken.Column)
}

func (p *Parser) expectCur(t token.Type) error {
	if p.curToken.Type != t {
		return p.errorf("PARSE-0001", map[string]any{"Expected": t.String(), "Got": p.curToken.Type.String()})
	}
	return nil
}

// skipNewlines consumes any run of blank NEWLINE tokens.
func (p *Parser) skipNewlines() error {
	for p.curToken.Type == token.NEWLINE {
		if err := p.next(); err != nil {
			return err
		}
	}
	return nil
}

// ParseProgram parses the entire token stream into a Program.
func ParseProgram(src string) (*ast.Program, error) {
	p, err := New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	for p.curToken.Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// expectStatementEnd requires the current token to be a NEWLINE or EOF
// and consumes it if so (newlines are statement terminators, §4.1).
func (p *Parser) expectStatementEnd() error {
	if p.curToken.Type == token.EOF {
		return nil
	}
	if p.curToken.Type != token.NEWLINE {
		return p.errorf("PARSE-0001", map[string]any{"Expected": "end of line", "Got": p.curToken.Type.String()})
	}
	return p.next()
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case token.SET:
		return p.parseAssign()
	case token.PRINT:
		return p.parsePrint()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseForIn()
	case token.FUNCTION:
		return p.parseFunctionDef(false)
	case token.EXPORT:
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectCur(token.FUNCTION); err != nil {
			return nil, err
		}
		return p.parseFunctionDef(true)
	case token.RETURN:
		return p.parseReturn()
	case token.IMPORT:
		return p.parseImport()
	case token.TEST:
		return p.parseTest()
	case token.END:
		return nil, p.errorf("PARSE-0003", nil)
	default:
		tok := p.curToken
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Tok: tok, Expr: expr}, nil
	}
}

// parseBlock parses statements up to and including a line containing
// only `end`. curToken must be the NEWLINE immediately after `start`.
func (p *Parser) parseBlock(openLine int) ([]ast.Statement, error) {
	if err := p.expectCur(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.curToken.Type == token.EOF {
			return nil, p.errorf("PARSE-0002", map[string]any{"OpenLine": openLine})
		}
		if p.curToken.Type == token.END {
			if err := p.next(); err != nil {
				return nil, err
			}
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) expectStart() error {
	if err := p.expectCur(token.START); err != nil {
		return err
	}
	return p.next()
}

func (p *Parser) parseTargetPath() ([]string, error) {
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	path := []string{p.curToken.Literal}
	if err := p.next(); err != nil {
		return nil, err
	}
	for p.curToken.Type == token.DOT {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectCur(token.IDENT); err != nil {
			return nil, err
		}
		path = append(path, p.curToken.Literal)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return path, nil
}

func (p *Parser) parseAssign() (ast.Statement, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	target, err := p.parseTargetPath()
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStatement{Tok: tok, Target: target, Value: value}, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Tok: tok, Value: value}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.curToken
	openLine := tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStart(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(openLine)
	if err != nil {
		return nil, err
	}
	return &ast.IfStatement{Tok: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.curToken
	openLine := tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStart(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(openLine)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Tok: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseForIn() (ast.Statement, error) {
	tok := p.curToken
	openLine := tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	loopVar := p.curToken.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.IN); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectStart(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(openLine)
	if err != nil {
		return nil, err
	}
	return &ast.ForInStatement{Tok: tok, Var: loopVar, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseFunctionDef(exported bool) (ast.Statement, error) {
	tok := p.curToken
	openLine := tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	name := p.curToken.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.LPAREN); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	var params []string
	for p.curToken.Type != token.RPAREN {
		if err := p.expectCur(token.IDENT); err != nil {
			return nil, err
		}
		params = append(params, p.curToken.Literal)
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.curToken.Type == token.COMMA {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.next(); err != nil { // consume RPAREN
		return nil, err
	}
	if err := p.expectStart(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(openLine)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{Tok: tok, Name: name, Params: params, Body: body, Exported: exported}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.curToken.Type == token.NEWLINE || p.curToken.Type == token.EOF {
		return &ast.ReturnStatement{Tok: tok}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Tok: tok, Value: value}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.IDENT); err != nil {
		return nil, err
	}
	alias := p.curToken.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.FROM); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.STRING); err != nil {
		return nil, err
	}
	path := p.curToken.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.ImportStatement{Tok: tok, Alias: alias, Path: path}, nil
}

func (p *Parser) parseTest() (ast.Statement, error) {
	tok := p.curToken
	openLine := tok.Line
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectCur(token.STRING); err != nil {
		return nil, err
	}
	label := p.curToken.Literal
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectStart(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(openLine)
	if err != nil {
		return nil, err
	}
	return &ast.TestStatement{Tok: tok, Label: label, Body: body}, nil
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

var comparisonOps = map[token.Type]string{
	token.EQ:     "==",
	token.NOT_EQ: "!=",
	token.LT:     "<",
	token.GT:     ">",
	token.LTE:    "<=",
	token.GTE:    ">=",
}

// parseExpression is the entry point: the `+` chain is the outermost
// (lowest-precedence) level of spec.md §4.2's table.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parsePlusChain()
}

func (p *Parser) parsePlusChain() (ast.Expression, error) {
	tok := p.curToken
	first, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != token.PLUS {
		return first, nil
	}
	parts := []ast.Expression{first}
	for p.curToken.Type == token.PLUS {
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	return &ast.StringConcatChain{Tok: tok, Parts: parts}, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseCallOrSuffix()
	if err != nil {
		return nil, err
	}
	op, isComparison := comparisonOps[p.curToken.Type]
	if !isComparison {
		return left, nil
	}
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseCallOrSuffix()
	if err != nil {
		return nil, err
	}
	if _, again := comparisonOps[p.curToken.Type]; again {
		return nil, p.errorf("PARSE-0004", nil)
	}
	return &ast.ComparisonExpression{Tok: tok, Operator: op, Left: left, Right: right}, nil
}

func (p *Parser) parseCallOrSuffix() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == token.DOT {
		tok := p.curToken
		var keys []string
		for p.curToken.Type == token.DOT {
			if err := p.next(); err != nil {
				return nil, err
			}
			if err := p.expectCur(token.IDENT); err != nil {
				return nil, err
			}
			keys = append(keys, p.curToken.Literal)
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		expr = &ast.PropertyAccess{Tok: tok, Base: expr, Keys: keys}
	}
	if p.curToken.Type == token.LPAREN {
		tok := p.curToken
		if err := p.next(); err != nil {
			return nil, err
		}
		var args []ast.Expression
		for p.curToken.Type != token.RPAREN {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curToken.Type == token.COMMA {
				if err := p.next(); err != nil {
					return nil, err
				}
			}
		}
		if err := p.next(); err != nil { // consume RPAREN
			return nil, err
		}
		expr = &ast.CallExpression{Tok: tok, Callee: expr, Args: args}
	}
	return expr, nil
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.curToken
	switch tok.Type {
	case token.INT:
		if err := p.next(); err != nil {
			return nil, err
		}
		var n int64
		if _, err := fmt.Sscanf(tok.Literal, "%d", &n); err != nil {
			return nil, verrors.New("PARSE-0005", map[string]any{"Literal": tok.Literal}).WithPosition(tok.Line, tok.Column)
		}
		return &ast.NumberLiteral{Tok: tok, Value: int32(n)}, nil
	case token.TRUE, token.FALSE:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{Tok: tok, Value: tok.Type == token.TRUE}, nil
	case token.NULL:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.NullLiteral{Tok: tok}, nil
	case token.STRING:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Tok: tok, Value: tok.Literal}, nil
	case token.ISTR:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.buildInterpolated(tok)
	case token.IDENT:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.Identifier{Tok: tok, Name: tok.Literal}, nil
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectCur(token.RPAREN); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("PARSE-0001", map[string]any{"Expected": "an expression", "Got": tok.Type.String()})
	}
}

func (p *Parser) buildInterpolated(tok token.Token) (ast.Expression, error) {
	node := &ast.InterpolatedString{Tok: tok}
	for _, part := range tok.Parts {
		if !part.IsExpr {
			node.Parts = append(node.Parts, ast.InterpPart{Literal: part.Literal})
			continue
		}
		sub, err := New(lexer.New(part.Expr))
		if err != nil {
			return nil, err
		}
		expr, err := sub.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Parts = append(node.Parts, ast.InterpPart{Expr: expr, IsExpr: true})
	}
	return node, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for p.curToken.Type != token.RBRACKET {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.curToken.Type == token.COMMA {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Tok: tok, Elements: elems}, nil
}

func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	tok := p.curToken
	if err := p.next(); err != nil {
		return nil, err
	}
	obj := &ast.ObjectLiteral{Tok: tok}
	for p.curToken.Type != token.RBRACE {
		var key string
		switch p.curToken.Type {
		case token.IDENT, token.STRING:
			key = p.curToken.Literal
		default:
			return nil, p.errorf("PARSE-0001", map[string]any{"Expected": "an object key", "Got": p.curToken.Type.String()})
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectCur(token.COLON); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, val)
		if p.curToken.Type == token.COMMA {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return obj, nil
}
