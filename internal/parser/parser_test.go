package parser

import (
	"testing"

	"github.com/stuncs69/vexel/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func TestParseAssignStatement(t *testing.T) {
	prog := mustParse(t, "set x 2\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	s, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected *ast.AssignStatement, got %T", prog.Statements[0])
	}
	if len(s.Target) != 1 || s.Target[0] != "x" {
		t.Errorf("target = %v, want [x]", s.Target)
	}
	if _, ok := s.Value.(*ast.NumberLiteral); !ok {
		t.Errorf("value = %T, want *ast.NumberLiteral", s.Value)
	}
}

func TestParseDottedAssignTarget(t *testing.T) {
	prog := mustParse(t, "set obj.a.b 7\n")
	s := prog.Statements[0].(*ast.AssignStatement)
	want := []string{"obj", "a", "b"}
	if len(s.Target) != len(want) {
		t.Fatalf("target = %v, want %v", s.Target, want)
	}
	for i := range want {
		if s.Target[i] != want[i] {
			t.Errorf("target[%d] = %q, want %q", i, s.Target[i], want[i])
		}
	}
}

func TestParseIfWhileForInBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"if block", "if true start\nprint 1\nend\n"},
		{"while block", "while true start\nprint 1\nend\n"},
		{"for in block", "for i in arr start\nprint i\nend\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.input)
			if len(prog.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
			}
		})
	}
}

func TestParseMissingEndIsParseError(t *testing.T) {
	_, err := ParseProgram("if true start\nprint 1\n")
	if err == nil {
		t.Fatal("expected a ParseError for a missing 'end'")
	}
}

func TestParseUnexpectedEndIsParseError(t *testing.T) {
	_, err := ParseProgram("end\n")
	if err == nil {
		t.Fatal("expected a ParseError for a stray 'end'")
	}
}

func TestParseFunctionDefExportedAndUnexported(t *testing.T) {
	prog := mustParse(t, "export function inc(x) start\nreturn math_add(x,1)\nend\n")
	fd, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", prog.Statements[0])
	}
	if !fd.Exported {
		t.Error("expected Exported = true")
	}
	if fd.Name != "inc" {
		t.Errorf("name = %q, want inc", fd.Name)
	}
	if len(fd.Params) != 1 || fd.Params[0] != "x" {
		t.Errorf("params = %v, want [x]", fd.Params)
	}

	prog2 := mustParse(t, "function f() start\nreturn\nend\n")
	fd2 := prog2.Statements[0].(*ast.FunctionDef)
	if fd2.Exported {
		t.Error("expected Exported = false")
	}
}

func TestParseImportStatement(t *testing.T) {
	prog := mustParse(t, `import m from "./m.vx"` + "\n")
	s, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("expected *ast.ImportStatement, got %T", prog.Statements[0])
	}
	if s.Alias != "m" || s.Path != "./m.vx" {
		t.Errorf("got alias=%q path=%q", s.Alias, s.Path)
	}
}

func TestParseTestStatement(t *testing.T) {
	prog := mustParse(t, `test "addition works" start` + "\nprint 1\nend\n")
	s, ok := prog.Statements[0].(*ast.TestStatement)
	if !ok {
		t.Fatalf("expected *ast.TestStatement, got %T", prog.Statements[0])
	}
	if s.Label != "addition works" {
		t.Errorf("label = %q", s.Label)
	}
}

func TestParsePlusIsStringConcatChain(t *testing.T) {
	prog := mustParse(t, `print a + "bar" + c` + "\n")
	ps := prog.Statements[0].(*ast.PrintStatement)
	chain, ok := ps.Value.(*ast.StringConcatChain)
	if !ok {
		t.Fatalf("expected *ast.StringConcatChain, got %T", ps.Value)
	}
	if len(chain.Parts) != 3 {
		t.Errorf("parts = %d, want 3", len(chain.Parts))
	}
}

func TestParseDoubleComparisonIsParseError(t *testing.T) {
	_, err := ParseProgram("print a == b == c\n")
	if err == nil {
		t.Fatal("expected a ParseError: two comparisons in a row are non-associative")
	}
}

func TestParseCallAndPropertyAccess(t *testing.T) {
	prog := mustParse(t, "print m.inc(4)\n")
	ps := prog.Statements[0].(*ast.PrintStatement)
	call, ok := ps.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", ps.Value)
	}
	prop, ok := call.Callee.(*ast.PropertyAccess)
	if !ok {
		t.Fatalf("expected callee *ast.PropertyAccess, got %T", call.Callee)
	}
	if len(prop.Keys) != 1 || prop.Keys[0] != "inc" {
		t.Errorf("keys = %v, want [inc]", prop.Keys)
	}
	if len(call.Args) != 1 {
		t.Errorf("args = %d, want 1", len(call.Args))
	}
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	prog := mustParse(t, "set a [1, 2, 3]\n")
	s := prog.Statements[0].(*ast.AssignStatement)
	arr, ok := s.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral, got %T", s.Value)
	}
	if len(arr.Elements) != 3 {
		t.Errorf("elements = %d, want 3", len(arr.Elements))
	}

	prog2 := mustParse(t, "set o {a: 1, b: 2}\n")
	s2 := prog2.Statements[0].(*ast.AssignStatement)
	obj, ok := s2.Value.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ast.ObjectLiteral, got %T", s2.Value)
	}
	if len(obj.Keys) != 2 || obj.Keys[0] != "a" || obj.Keys[1] != "b" {
		t.Errorf("keys = %v", obj.Keys)
	}
}

func TestParseDeterminism(t *testing.T) {
	src := `set x 2
print math_add(x, 3)
`
	p1 := mustParse(t, src)
	p2 := mustParse(t, src)
	if p1.String() != p2.String() {
		t.Errorf("parsing the same source twice produced different ASTs:\n%s\nvs\n%s", p1.String(), p2.String())
	}
}
