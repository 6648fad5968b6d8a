package builtins_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stuncs69/vexel/internal/builtins"
	"github.com/stuncs69/vexel/internal/config"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/verrors"
)

type Value = object.Value

func callOK(t *testing.T, name string, args ...Value) Value {
	t.Helper()
	fn, ok := builtins.Lookup(name)
	if !ok {
		t.Fatalf("no builtin registered under %q", name)
	}
	v, err := fn(args)
	if err != nil {
		t.Fatalf("%s%v returned unexpected error: %v", name, args, err)
	}
	if v == nil {
		t.Fatalf("%s%v returned an absent value", name, args)
	}
	return v
}

func call(t *testing.T, name string, args ...Value) (Value, error) {
	t.Helper()
	fn, ok := builtins.Lookup(name)
	if !ok {
		t.Fatalf("no builtin registered under %q", name)
	}
	return fn(args)
}

func num(n int32) Value    { return &object.Number{Value: n} }
func str(s string) Value   { return &object.String{Value: s} }
func arr(e ...Value) Value { return &object.Array{Elements: e} }

func TestMathAdd(t *testing.T) {
	v := callOK(t, "math_add", num(2), num(3))
	if n := v.(*object.Number).Value; n != 5 {
		t.Errorf("math_add(2,3) = %d, want 5", n)
	}
}

func TestMathDivideByZeroIsAbsent(t *testing.T) {
	v, err := call(t, "math_divide", num(1), num(0))
	if v != nil || err != nil {
		t.Errorf("math_divide(1,0) = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestMathAddOverflowIsAbsent(t *testing.T) {
	v, err := call(t, "math_add", num(math.MaxInt32), num(1))
	if v != nil || err != nil {
		t.Errorf("math_add at overflow = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestMathAbsOfMinInt32IsAbsent(t *testing.T) {
	v, err := call(t, "math_abs", num(math.MinInt32))
	if v != nil || err != nil {
		t.Errorf("math_abs(MinInt32) = (%v, %v), want (nil, nil) since -MinInt32 overflows int32", v, err)
	}
}

func TestMathWrongArgTypeIsRuntimeError(t *testing.T) {
	_, err := call(t, "math_add", str("x"), num(1))
	if err == nil {
		t.Fatal("expected an error for a non-number argument")
	}
	ve, ok := err.(*verrors.VexelError)
	if !ok || ve.Code != "RUNTIME-0011" {
		t.Errorf("got %v, want a RUNTIME-0011 VexelError", err)
	}
}

func TestArrayGetOutOfBoundsIsAbsent(t *testing.T) {
	a := arr(num(1), num(2))
	v, err := call(t, "array_get", a, num(5))
	if v != nil || err != nil {
		t.Errorf("array_get out of bounds = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestArrayGetNegativeIndexIsAbsent(t *testing.T) {
	a := arr(num(1), num(2))
	v, err := call(t, "array_get", a, num(-1))
	if v != nil || err != nil {
		t.Errorf("array_get(-1) = (%v, %v), want (nil, nil)", v, err)
	}
}

func TestArrayPushDoesNotMutateOriginal(t *testing.T) {
	original := &object.Array{Elements: []Value{num(1)}}
	v := callOK(t, "array_push", original, num(2))
	pushed := v.(*object.Array)
	if len(pushed.Elements) != 2 {
		t.Fatalf("pushed length = %d, want 2", len(pushed.Elements))
	}
	if len(original.Elements) != 1 {
		t.Errorf("original array was mutated: length = %d, want 1", len(original.Elements))
	}
}

func TestArrayToStringMatchesJSONLikeFormat(t *testing.T) {
	v := callOK(t, "array_to_string", arr(num(1), str("x"), num(2)))
	want := `[1,"x",2]`
	if got := v.(*object.String).Value; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestObjectToStringInsertionOrderPreserved(t *testing.T) {
	o := object.NewObject()
	o.Set("b", num(2))
	o.Set("a", num(1))
	v := callOK(t, "object_to_string", o)
	want := `{"b":2,"a":1}`
	if got := v.(*object.String).Value; got != want {
		t.Errorf("got %q, want %q (insertion order preserved)", got, want)
	}
}

func TestJSONStringifyAndArrayToStringAgree(t *testing.T) {
	a := arr(num(1), num(2))
	js := callOK(t, "json_stringify", a)
	as := callOK(t, "array_to_string", a)
	if js.(*object.String).Value != as.(*object.String).Value {
		t.Errorf("json_stringify and array_to_string disagree: %q vs %q", js.(*object.String).Value, as.(*object.String).Value)
	}
}

func TestReadFileDeniedWithoutAllowRead(t *testing.T) {
	prev := config.Current
	defer config.Set(prev)
	config.Set(&config.Config{})

	_, err := call(t, "read_file", str("/etc/hostname"))
	ve, ok := err.(*verrors.VexelError)
	if !ok || ve.Code != "SEC-0002" {
		t.Fatalf("got %v, want a SEC-0002 SecurityError", err)
	}
}

func TestReadFileSucceedsWithAllowRead(t *testing.T) {
	prev := config.Current
	defer config.Set(prev)
	config.Set(&config.Config{AllowRead: true})

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	v := callOK(t, "read_file", str(path))
	if got := v.(*object.String).Value; got != "hi" {
		t.Errorf("got %q, want hi", got)
	}
}

func TestWriteFileDeniedWithoutAllowWrite(t *testing.T) {
	prev := config.Current
	defer config.Set(prev)
	config.Set(&config.Config{})

	_, err := call(t, "write_file", str("/tmp/should-not-be-created.txt"), str("x"))
	ve, ok := err.(*verrors.VexelError)
	if !ok || ve.Code != "SEC-0003" {
		t.Fatalf("got %v, want a SEC-0003 SecurityError", err)
	}
}

func TestTypeOfBuiltinMatchesObjectPackage(t *testing.T) {
	fn, ok := builtins.Lookup("type_of")
	if !ok {
		t.Skip("type_of not registered under that name")
	}
	v, err := fn([]Value{num(1)})
	if err != nil || v.(*object.String).Value != "number" {
		t.Errorf("type_of(1) = (%v, %v), want (\"number\", nil)", v, err)
	}
}
