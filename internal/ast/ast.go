// Package ast defines the Vexel abstract syntax tree.
//
// The Node/Statement/Expression marker-interface shape, and the
// bytes.Buffer-based String() implementations, follow
// sambeau-basil/pkg/parsley/ast/ast.go; Vexel's tree is far smaller,
// holding only the statement and expression variants spec.md §3 names.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stuncs69/vexel/internal/token"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is implemented by every statement-level node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression-level node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var sb bytes.Buffer
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// AssignStatement is `set <target> <expr>`. Target is a dotted path
// ("a", or "a.b.c") resolved by the evaluator per spec.md §4.3.
type AssignStatement struct {
	Tok    token.Token
	Target []string
	Value  Expression
}

func (s *AssignStatement) statementNode()       {}
func (s *AssignStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *AssignStatement) String() string {
	return fmt.Sprintf("set %s %s", strings.Join(s.Target, "."), s.Value.String())
}

// PrintStatement is `print <expr>`.
type PrintStatement struct {
	Tok   token.Token
	Value Expression
}

func (s *PrintStatement) statementNode()       {}
func (s *PrintStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *PrintStatement) String() string       { return fmt.Sprintf("print %s", s.Value.String()) }

// IfStatement is `if <expr> start ... end`. There is no else branch.
type IfStatement struct {
	Tok       token.Token
	Condition Expression
	Body      []Statement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *IfStatement) String() string {
	return fmt.Sprintf("if %s start\n%send", s.Condition.String(), blockString(s.Body))
}

// WhileStatement is `while <expr> start ... end`.
type WhileStatement struct {
	Tok       token.Token
	Condition Expression
	Body      []Statement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while %s start\n%send", s.Condition.String(), blockString(s.Body))
}

// ForInStatement is `for <id> in <expr> start ... end`.
type ForInStatement struct {
	Tok      token.Token
	Var      string
	Iterable Expression
	Body     []Statement
}

func (s *ForInStatement) statementNode()       {}
func (s *ForInStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *ForInStatement) String() string {
	return fmt.Sprintf("for %s in %s start\n%send", s.Var, s.Iterable.String(), blockString(s.Body))
}

// FunctionDef is `[export] function <id>(<params>) start ... end`.
type FunctionDef struct {
	Tok      token.Token
	Name     string
	Params   []string
	Body     []Statement
	Exported bool
}

func (s *FunctionDef) statementNode()       {}
func (s *FunctionDef) TokenLiteral() string { return s.Tok.Literal }
func (s *FunctionDef) String() string {
	prefix := ""
	if s.Exported {
		prefix = "export "
	}
	return fmt.Sprintf("%sfunction %s(%s) start\n%send", prefix, s.Name, strings.Join(s.Params, ", "), blockString(s.Body))
}

// ReturnStatement is `return [<expr>]`. Value is nil for a bare return.
type ReturnStatement struct {
	Tok   token.Token
	Value Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.Value.String())
}

// ImportStatement is `import <id> from "<path>"`.
type ImportStatement struct {
	Tok   token.Token
	Alias string
	Path  string
}

func (s *ImportStatement) statementNode()       {}
func (s *ImportStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *ImportStatement) String() string {
	return fmt.Sprintf("import %s from %q", s.Alias, s.Path)
}

// TestStatement is `test "<label>" start ... end`.
type TestStatement struct {
	Tok   token.Token
	Label string
	Body  []Statement
}

func (s *TestStatement) statementNode()       {}
func (s *TestStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *TestStatement) String() string {
	return fmt.Sprintf("test %q start\n%send", s.Label, blockString(s.Body))
}

// ExpressionStatement wraps a bare expression evaluated for its side
// effects (a function call whose result is discarded).
type ExpressionStatement struct {
	Tok  token.Token
	Expr Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Tok.Literal }
func (s *ExpressionStatement) String() string       { return s.Expr.String() }

func blockString(body []Statement) string {
	var sb bytes.Buffer
	for _, st := range body {
		sb.WriteString("  ")
		sb.WriteString(st.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// NumberLiteral is a 32-bit signed integer literal.
type NumberLiteral struct {
	Tok   token.Token
	Value int32
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *NumberLiteral) String() string       { return e.Tok.Literal }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Tok   token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *BooleanLiteral) String() string       { return e.Tok.Literal }

// StringLiteral is a plain (non-interpolated) double-quoted string.
type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *StringLiteral) String() string       { return fmt.Sprintf("%q", e.Value) }

// NullLiteral is the `null` singleton.
type NullLiteral struct {
	Tok token.Token
}

func (e *NullLiteral) expressionNode()      {}
func (e *NullLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *NullLiteral) String() string       { return "null" }

// Identifier is a bare variable reference.
type Identifier struct {
	Tok  token.Token
	Name string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Tok.Literal }
func (e *Identifier) String() string       { return e.Name }

// PropertyAccess is `base.key1.key2...`.
type PropertyAccess struct {
	Tok  token.Token
	Base Expression
	Keys []string
}

func (e *PropertyAccess) expressionNode()      {}
func (e *PropertyAccess) TokenLiteral() string { return e.Tok.Literal }
func (e *PropertyAccess) String() string {
	return fmt.Sprintf("%s.%s", e.Base.String(), strings.Join(e.Keys, "."))
}

// CallExpression is `callee(args...)`. Callee is either an Identifier
// (built-in or module-local function) or a PropertyAccess ending in a
// single key (an imported module's exported function).
type CallExpression struct {
	Tok    token.Token
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Tok.Literal }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(args, ", "))
}

// ComparisonExpression is one of `== != < > <= >=`, non-associative.
type ComparisonExpression struct {
	Tok      token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *ComparisonExpression) expressionNode()      {}
func (e *ComparisonExpression) TokenLiteral() string { return e.Tok.Literal }
func (e *ComparisonExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Tok      token.Token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// ObjectLiteral is `{k1: v1, k2: v2, ...}`. Keys and Values are parallel
// slices preserving source (insertion) order, matching the teacher's
// DictionaryLiteral.KeyOrder trick without a separate map lookup.
type ObjectLiteral struct {
	Tok    token.Token
	Keys   []string
	Values []Expression
}

func (e *ObjectLiteral) expressionNode()      {}
func (e *ObjectLiteral) TokenLiteral() string { return e.Tok.Literal }
func (e *ObjectLiteral) String() string {
	parts := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Values[i].String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// InterpPart is one fragment of an InterpolatedString: a literal chunk
// or a re-parsed embedded expression.
type InterpPart struct {
	Literal string
	Expr    Expression
	IsExpr  bool
}

// InterpolatedString is a string literal containing `${expr}` splices.
type InterpolatedString struct {
	Tok   token.Token
	Parts []InterpPart
}

func (e *InterpolatedString) expressionNode()      {}
func (e *InterpolatedString) TokenLiteral() string { return e.Tok.Literal }
func (e *InterpolatedString) String() string {
	var sb bytes.Buffer
	sb.WriteByte('"')
	for _, p := range e.Parts {
		if p.IsExpr {
			sb.WriteString("${")
			sb.WriteString(p.Expr.String())
			sb.WriteString("}")
		} else {
			sb.WriteString(p.Literal)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// StringConcatChain is the parsed form of `a + b + c`: `+` is never
// arithmetic, only string concatenation (spec.md §4.2, §8).
type StringConcatChain struct {
	Tok   token.Token
	Parts []Expression
}

func (e *StringConcatChain) expressionNode()      {}
func (e *StringConcatChain) TokenLiteral() string { return e.Tok.Literal }
func (e *StringConcatChain) String() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " + ")
}
