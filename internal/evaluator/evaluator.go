// Package evaluator is Vexel's tree-walking interpreter: it turns an
// *ast.Program into side effects (print/dump output, filesystem and
// network calls through internal/builtins) and, on failure, an error.
//
// The dispatch shape — one exec* method per ast.Statement variant, one
// eval* method per ast.Expression variant, errors propagated as plain
// Go `error` values rather than a sentinel/panic-recover pair — follows
// sambeau-basil/pkg/parsley/evaluator/evaluator.go. spec.md has no loop
// break/continue and no exceptions, so the only non-linear control flow
// is `return`, modeled here as a *returnSignal that satisfies `error`
// and is threaded up through execBlock exactly like any other error
// until it reaches the call site (invokeUserFunction) or the module's
// top level, where it is either consumed or rejected as RUNTIME-0010.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/stuncs69/vexel/internal/ast"
	"github.com/stuncs69/vexel/internal/builtins"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/token"
	"github.com/stuncs69/vexel/internal/verrors"
)

// Evaluator holds everything shared across one module's evaluation and
// every module it transitively imports: the output stream for print
// (dump writes to stderr itself), and the module cache (spec.md §5 — "not shared across
// threads, belongs to the evaluator instance").
type Evaluator struct {
	Out     io.Writer
	modules map[string]*moduleEntry
}

// New returns an Evaluator writing to stdout with an empty module
// cache, ready to evaluate one script (and whatever it imports).
func New() *Evaluator {
	return &Evaluator{Out: os.Stdout, modules: map[string]*moduleEntry{}}
}

// returnSignal unwinds execBlock back to the nearest function
// invocation, which consumes it; if it reaches a `test` block or the
// module top level instead, it is rejected as RUNTIME-0010.
type returnSignal struct {
	Value object.Value
}

func (r *returnSignal) Error() string { return "return outside of a function" }

// Eval runs every top-level statement of prog against env in order.
// file names the source for error reporting (empty for the REPL).
func (e *Evaluator) Eval(prog *ast.Program, env *Environment, file string) error {
	err := e.execBlock(prog.Statements, env)
	if err == nil {
		return nil
	}
	if _, ok := err.(*returnSignal); ok {
		return attachFile(verrors.New("RUNTIME-0010", nil), file)
	}
	return attachFile(err, file)
}

func attachFile(err error, file string) error {
	if file == "" {
		return err
	}
	if ve, ok := err.(*verrors.VexelError); ok && ve.File == "" {
		return ve.WithFile(file)
	}
	return err
}

// execBlock runs stmts in order, stopping at the first error (which
// includes a *returnSignal — it is an error from execBlock's point of
// view even though it is not a failure from the language's).
func (e *Evaluator) execBlock(stmts []ast.Statement, env *Environment) error {
	for _, stmt := range stmts {
		if err := e.execStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execStatement(stmt ast.Statement, env *Environment) error {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return e.execAssign(s, env)
	case *ast.PrintStatement:
		return e.execPrint(s, env)
	case *ast.IfStatement:
		return e.execIf(s, env)
	case *ast.WhileStatement:
		return e.execWhile(s, env)
	case *ast.ForInStatement:
		return e.execForIn(s, env)
	case *ast.FunctionDef:
		env.DefineFunction(s)
		return nil
	case *ast.ReturnStatement:
		if s.Value == nil {
			return &returnSignal{Value: &object.Null{}}
		}
		v, err := e.evalExpression(s.Value, env)
		if err != nil {
			return err
		}
		return &returnSignal{Value: v}
	case *ast.ImportStatement:
		return e.execImport(s, env)
	case *ast.TestStatement:
		return e.execTest(s, env)
	case *ast.ExpressionStatement:
		_, err := e.evalExpression(s.Expr, env)
		return err
	default:
		return fmt.Errorf("evaluator: unhandled statement %T", stmt)
	}
}

func (e *Evaluator) execAssign(s *ast.AssignStatement, env *Environment) error {
	val, err := e.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	if len(s.Target) == 1 {
		env.SetLocal(s.Target[0], val)
		return nil
	}
	root, ok := env.Get(s.Target[0])
	if !ok {
		return posErr(s.Tok, verrors.New("RUNTIME-0001", map[string]any{"Name": s.Target[0]}))
	}
	cur, ok := root.(*object.Object)
	if !ok {
		return posErr(s.Tok, verrors.New("RUNTIME-0004", map[string]any{"Path": s.Target[0]}))
	}
	for _, key := range s.Target[1 : len(s.Target)-1] {
		next, exists := cur.Get(key)
		if !exists {
			fresh := object.NewObject()
			cur.Set(key, fresh)
			cur = fresh
			continue
		}
		child, ok := next.(*object.Object)
		if !ok {
			return posErr(s.Tok, verrors.New("RUNTIME-0004", map[string]any{"Path": key}))
		}
		cur = child
	}
	cur.Set(s.Target[len(s.Target)-1], val)
	return nil
}

func (e *Evaluator) execPrint(s *ast.PrintStatement, env *Environment) error {
	v, err := e.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.Out, object.ToDisplayString(v))
	return nil
}

func (e *Evaluator) execIf(s *ast.IfStatement, env *Environment) error {
	cond, err := e.evalExpression(s.Condition, env)
	if err != nil {
		return err
	}
	b, ok := cond.(*object.Boolean)
	if !ok {
		return posErr(s.Tok, verrors.New("RUNTIME-0008", nil))
	}
	if !b.Value {
		return nil
	}
	env.PushFrame()
	defer env.PopFrame()
	return e.execBlock(s.Body, env)
}

func (e *Evaluator) execWhile(s *ast.WhileStatement, env *Environment) error {
	for {
		cond, err := e.evalExpression(s.Condition, env)
		if err != nil {
			return err
		}
		b, ok := cond.(*object.Boolean)
		if !ok {
			return posErr(s.Tok, verrors.New("RUNTIME-0008", nil))
		}
		if !b.Value {
			return nil
		}
		env.PushFrame()
		err = e.execBlock(s.Body, env)
		env.PopFrame()
		if err != nil {
			return err
		}
	}
}

func (e *Evaluator) execForIn(s *ast.ForInStatement, env *Environment) error {
	iterable, err := e.evalExpression(s.Iterable, env)
	if err != nil {
		return err
	}
	a, ok := iterable.(*object.Array)
	if !ok {
		return posErr(s.Tok, verrors.New("RUNTIME-0007", nil))
	}
	for _, el := range a.Elements {
		env.PushFrame()
		env.SetLocal(s.Var, el)
		err := e.execBlock(s.Body, env)
		env.PopFrame()
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execTest(s *ast.TestStatement, env *Environment) error {
	testEnv := newIsolatedTestEnvironment(env)
	err := e.execBlock(s.Body, testEnv)
	if err == nil {
		return nil
	}
	if _, ok := err.(*returnSignal); ok {
		return posErr(s.Tok, verrors.New("RUNTIME-0010", nil))
	}
	return err
}

// invokeUserFunction runs fd's body in a fresh call environment rooted
// at moduleEnv's globals, returning its produced value: the operand of
// its `return`, or Null for a function that falls off the end of its
// body without one.
func (e *Evaluator) invokeUserFunction(fd *ast.FunctionDef, moduleEnv *Environment, args []object.Value) (object.Value, error) {
	if len(args) != len(fd.Params) {
		return nil, posErr(fd.Tok, verrors.New("RUNTIME-0003", map[string]any{
			"Name": fd.Name, "Got": len(args), "Want": len(fd.Params),
		}))
	}
	callEnv := newCallEnvironment(moduleEnv, fd.Params, args)
	err := e.execBlock(fd.Body, callEnv)
	if err == nil {
		return &object.Null{}, nil
	}
	if rs, ok := err.(*returnSignal); ok {
		return rs.Value, nil
	}
	return nil, err
}

// CallFunction looks up name in env's function table and invokes it with
// args. It is the WebCore collaborator's only way to run a route's
// `request` function (spec.md §6: "invoke request(arg…) with captured
// route segments") without reaching into evaluator internals.
func (e *Evaluator) CallFunction(env *Environment, name string, args []object.Value) (object.Value, error) {
	fd, ok := env.LookupFunction(name)
	if !ok {
		return nil, verrors.New("RUNTIME-0002", map[string]any{"Name": name})
	}
	return e.invokeUserFunction(fd, env, args)
}

func posErr(tok token.Token, err *verrors.VexelError) error {
	return err.WithPosition(tok.Line, tok.Column)
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (e *Evaluator) evalExpression(expr ast.Expression, env *Environment) (object.Value, error) {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return &object.Number{Value: ex.Value}, nil
	case *ast.BooleanLiteral:
		return &object.Boolean{Value: ex.Value}, nil
	case *ast.StringLiteral:
		return &object.String{Value: ex.Value}, nil
	case *ast.NullLiteral:
		return &object.Null{}, nil
	case *ast.Identifier:
		return e.evalIdentifier(ex, env)
	case *ast.PropertyAccess:
		return e.evalPropertyAccess(ex, env)
	case *ast.CallExpression:
		return e.evalCall(ex, env)
	case *ast.ComparisonExpression:
		return e.evalComparison(ex, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(ex, env)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(ex, env)
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(ex, env)
	case *ast.StringConcatChain:
		return e.evalConcatChain(ex, env)
	default:
		return nil, fmt.Errorf("evaluator: unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(ex *ast.Identifier, env *Environment) (object.Value, error) {
	v, ok := env.Get(ex.Name)
	if !ok {
		hint := verrors.FindClosestMatch(ex.Name, env.SnapshotNames())
		data := map[string]any{"Name": ex.Name}
		err := verrors.New("RUNTIME-0001", data)
		if hint != "" {
			err.Hints = append(err.Hints, fmt.Sprintf("did you mean '%s'?", hint))
		}
		return nil, err.WithPosition(ex.Tok.Line, ex.Tok.Column)
	}
	return v, nil
}

func (e *Evaluator) evalPropertyAccess(ex *ast.PropertyAccess, env *Environment) (object.Value, error) {
	cur, err := e.evalExpression(ex.Base, env)
	if err != nil {
		return nil, err
	}
	for _, key := range ex.Keys {
		o, ok := cur.(*object.Object)
		if !ok {
			return nil, verrors.New("RUNTIME-0005", nil).WithPosition(ex.Tok.Line, ex.Tok.Column)
		}
		v, exists := o.Get(key)
		if !exists {
			return nil, verrors.New("RUNTIME-0006", map[string]any{"Key": key}).WithPosition(ex.Tok.Line, ex.Tok.Column)
		}
		cur = v
	}
	return cur, nil
}

func (e *Evaluator) evalArrayLiteral(ex *ast.ArrayLiteral, env *Environment) (object.Value, error) {
	elems := make([]object.Value, len(ex.Elements))
	for i, el := range ex.Elements {
		v, err := e.evalExpression(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return &object.Array{Elements: elems}, nil
}

func (e *Evaluator) evalObjectLiteral(ex *ast.ObjectLiteral, env *Environment) (object.Value, error) {
	o := object.NewObject()
	for i, k := range ex.Keys {
		v, err := e.evalExpression(ex.Values[i], env)
		if err != nil {
			return nil, err
		}
		o.Set(k, v)
	}
	return o, nil
}

func (e *Evaluator) evalInterpolatedString(ex *ast.InterpolatedString, env *Environment) (object.Value, error) {
	var sb []byte
	for _, part := range ex.Parts {
		if !part.IsExpr {
			sb = append(sb, part.Literal...)
			continue
		}
		v, err := e.evalExpression(part.Expr, env)
		if err != nil {
			return nil, err
		}
		sb = append(sb, object.ToDisplayString(v)...)
	}
	return &object.String{Value: string(sb)}, nil
}

func (e *Evaluator) evalConcatChain(ex *ast.StringConcatChain, env *Environment) (object.Value, error) {
	var sb []byte
	for _, part := range ex.Parts {
		v, err := e.evalExpression(part, env)
		if err != nil {
			return nil, err
		}
		sb = append(sb, object.ToDisplayString(v)...)
	}
	return &object.String{Value: string(sb)}, nil
}

func (e *Evaluator) evalComparison(ex *ast.ComparisonExpression, env *Environment) (object.Value, error) {
	left, err := e.evalExpression(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(ex.Right, env)
	if err != nil {
		return nil, err
	}
	if ex.Operator == "==" || ex.Operator == "!=" {
		eq := object.Equal(left, right)
		if ex.Operator == "!=" {
			eq = !eq
		}
		return &object.Boolean{Value: eq}, nil
	}
	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		return nil, verrors.New("RUNTIME-0009", map[string]any{
			"LeftType": object.TypeOf(left), "RightType": object.TypeOf(right), "Operator": ex.Operator,
		}).WithPosition(ex.Tok.Line, ex.Tok.Column)
	}
	var result bool
	switch ex.Operator {
	case "<":
		result = ln.Value < rn.Value
	case ">":
		result = ln.Value > rn.Value
	case "<=":
		result = ln.Value <= rn.Value
	case ">=":
		result = ln.Value >= rn.Value
	}
	return &object.Boolean{Value: result}, nil
}

// evalCall dispatches a call expression. An Identifier callee is
// resolved against the module's own function table first, then the
// builtin registry — spec.md §4.3's lookup order for a bare call name.
// Any other callee shape (chiefly a PropertyAccess reaching into an
// imported module's snapshot) is evaluated to a Value and dispatched
// on its dynamic type.
func (e *Evaluator) evalCall(ex *ast.CallExpression, env *Environment) (object.Value, error) {
	args := make([]object.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if ident, ok := ex.Callee.(*ast.Identifier); ok {
		if fd, ok := env.LookupFunction(ident.Name); ok {
			return e.invokeUserFunction(fd, env, args)
		}
		if fn, ok := builtins.Lookup(ident.Name); ok {
			return e.callBuiltin(ident.Name, fn, args, ex.Tok)
		}
		hint := verrors.FindClosestMatch(ident.Name, builtins.Names())
		verr := verrors.New("RUNTIME-0002", map[string]any{"Name": ident.Name})
		if hint != "" {
			verr.Hints = append(verr.Hints, fmt.Sprintf("did you mean '%s'?", hint))
		}
		return nil, verr.WithPosition(ex.Tok.Line, ex.Tok.Column)
	}

	callee, err := e.evalExpression(ex.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, verrors.New("RUNTIME-0002", map[string]any{"Name": ex.Callee.String()}).WithPosition(ex.Tok.Line, ex.Tok.Column)
	}
	moduleEnv, ok := fn.Module.(*Environment)
	if !ok {
		return nil, fmt.Errorf("evaluator: function %s carries a foreign module env", fn.Def.Name)
	}
	return e.invokeUserFunction(fn.Def, moduleEnv, args)
}

func (e *Evaluator) callBuiltin(name string, fn builtins.Func, args []object.Value, tok token.Token) (object.Value, error) {
	v, err := fn(args)
	if err != nil {
		if ve, ok := err.(*verrors.VexelError); ok {
			return nil, ve.WithPosition(tok.Line, tok.Column)
		}
		return nil, err
	}
	if v == nil {
		return nil, verrors.New("RUNTIME-0011", map[string]any{"Name": name}).WithPosition(tok.Line, tok.Column)
	}
	return v, nil
}
