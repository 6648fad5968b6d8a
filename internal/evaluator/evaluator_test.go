package evaluator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stuncs69/vexel/internal/parser"
	"github.com/stuncs69/vexel/internal/verrors"
)

// run parses and evaluates src against a fresh evaluator/environment and
// returns stdout output and any error.
func run(t *testing.T, dir, src string) (string, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out bytes.Buffer
	ev := New()
	ev.Out = &out
	env := NewEnvironment()
	env.SetSourceDir(dir)
	err = ev.Eval(prog, env, "")
	return out.String(), err
}

func mustRun(t *testing.T, dir, src string) string {
	t.Helper()
	out, err := run(t, dir, src)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
	return out
}

func vexelErr(t *testing.T, err error) *verrors.VexelError {
	t.Helper()
	ve, ok := err.(*verrors.VexelError)
	if !ok {
		t.Fatalf("expected *verrors.VexelError, got %T (%v)", err, err)
	}
	return ve
}

// --- spec.md §8 success scenarios ---

func TestScenarioAddTwoNumbers(t *testing.T) {
	out := mustRun(t, ".", "set x 2\nprint math_add(x,3)\n")
	if strings.TrimRight(out, "\n") != "5" {
		t.Errorf("got %q, want 5", out)
	}
}

func TestScenarioPlusIsConcat(t *testing.T) {
	out := mustRun(t, ".", `set a "foo"
print a + "bar"
`)
	if strings.TrimRight(out, "\n") != "foobar" {
		t.Errorf("got %q, want foobar", out)
	}
}

func TestScenarioDottedAssignBuildsIntermediateObjects(t *testing.T) {
	out := mustRun(t, ".", `set obj {}
set obj.a.b 7
print object_to_string(obj)
`)
	if strings.TrimRight(out, "\n") != `{"a":{"b":7}}` {
		t.Errorf("got %q, want {\"a\":{\"b\":7}}", out)
	}
}

func TestScenarioForInOverArrayRange(t *testing.T) {
	out := mustRun(t, ".", `set arr array_range(3)
for i in arr start
print i
end
`)
	want := "0\n1\n2\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestScenarioNonAssociativeComparisonIsTrue(t *testing.T) {
	out := mustRun(t, ".", `if false != true start
print "ok"
end
`)
	if strings.TrimRight(out, "\n") != "ok" {
		t.Errorf("got %q, want ok", out)
	}
}

func TestScenarioModuleImportAndExportedFunctionCall(t *testing.T) {
	dir := t.TempDir()
	mod := `export function inc(x) start
return math_add(x, 1)
end
`
	if err := os.WriteFile(filepath.Join(dir, "m.vx"), []byte(mod), 0o644); err != nil {
		t.Fatal(err)
	}
	main := `import m from "./m.vx"
print m.inc(4)
`
	out := mustRun(t, dir, main)
	if strings.TrimRight(out, "\n") != "5" {
		t.Errorf("got %q, want 5", out)
	}
}

// --- spec.md §8 failure scenarios ---

func TestScenarioDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, ".", "print math_divide(1, 0)\n")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
	ve := vexelErr(t, err)
	if ve.Code != "RUNTIME-0011" {
		t.Errorf("code = %q, want RUNTIME-0011", ve.Code)
	}
}

func TestScenarioArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, ".", `function f(a, b) start
return a
end
print f(1)
`)
	if err == nil {
		t.Fatal("expected a runtime error for wrong argument count")
	}
	ve := vexelErr(t, err)
	if ve.Code != "RUNTIME-0003" {
		t.Errorf("code = %q, want RUNTIME-0003", ve.Code)
	}
}

func TestScenarioImportCycleIsImportError(t *testing.T) {
	dir := t.TempDir()
	a := `import b from "./b.vx"
`
	b := `import a from "./a.vx"
`
	if err := os.WriteFile(filepath.Join(dir, "a.vx"), []byte(a), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.vx"), []byte(b), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, dir, `import a from "./a.vx"
`)
	if err == nil {
		t.Fatal("expected an import-cycle error")
	}
	ve := vexelErr(t, err)
	if ve.Code != "IMPORT-0003" && ve.Code != "IMPORT-0002" {
		t.Errorf("code = %q, want IMPORT-0002 or IMPORT-0003 (wrapping it)", ve.Code)
	}
}

func TestScenarioUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, ".", "print nope\n")
	if err == nil {
		t.Fatal("expected a runtime error for an undefined variable")
	}
	ve := vexelErr(t, err)
	if ve.Code != "RUNTIME-0001" {
		t.Errorf("code = %q, want RUNTIME-0001", ve.Code)
	}
}

// --- additional invariants ---

func TestModuleIsEvaluatedExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	mod := `print "loaded"
export function noop() start
return null
end
`
	if err := os.WriteFile(filepath.Join(dir, "m.vx"), []byte(mod), 0o644); err != nil {
		t.Fatal(err)
	}
	main := `import m from "./m.vx"
import m2 from "./m.vx"
`
	out := mustRun(t, dir, main)
	if strings.Count(out, "loaded") != 1 {
		t.Errorf("module printed %d times, want exactly 1: %q", strings.Count(out, "loaded"), out)
	}
}

func TestTestBlockHasIsolatedVariableScopeButSharedFunctions(t *testing.T) {
	out := mustRun(t, ".", `function double(x) start
return math_add(x, x)
end
set x 100
test "scoped" start
set x 1
print double(x)
end
print x
`)
	want := "2\n100\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestIfWithLiteralTrueConditionRunsBody(t *testing.T) {
	// Vexel has no `&&`/`||` operators, so an `if` condition is a single
	// expression that must evaluate to a Boolean; a literal `true` runs
	// the body.
	out := mustRun(t, ".", `if true start
print "reached"
end
`)
	if strings.TrimRight(out, "\n") != "reached" {
		t.Errorf("got %q, want reached", out)
	}
}
