// Package object is the Vexel value model: the tagged runtime Value
// shared by the evaluator and the built-in registry.
//
// The Object interface (Type/Inspect) and the split between primitive
// and compound concrete types follows sambeau-basil/pkg/parsley's
// evaluator.Object family, trimmed to spec.md §3's six cases: Number,
// Boolean, String, Array, Object, Null, plus a Function value that only
// appears inside an imported module's snapshot. There is no Float (Vexel has no
// floating point) and no separate ReturnValue wrapper value (the
// evaluator signals return with an internal control-flow struct instead
// of a wrapped Value, since spec.md never lets a return value leak into
// ordinary expression position).
package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/stuncs69/vexel/internal/ast"
)

// Type names a value kind: the six language kinds, plus "function" for
// the Function values an imported module's snapshot carries.
type Type string

const (
	NUMBER_OBJ  Type = "number"
	BOOLEAN_OBJ Type = "boolean"
	STRING_OBJ  Type = "string"
	ARRAY_OBJ   Type = "array"
	OBJECT_OBJ  Type = "object"
	NULL_OBJ     Type = "null"
	FUNCTION_OBJ Type = "function"
)

// Value is implemented by every Vexel runtime value.
type Value interface {
	Type() Type
	Inspect() string
}

// Number is a 32-bit signed integer.
type Number struct {
	Value int32
}

func (n *Number) Type() Type      { return NUMBER_OBJ }
func (n *Number) Inspect() string { return strconv.FormatInt(int64(n.Value), 10) }

// Boolean is true/false.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// String is immutable UTF-8 text.
type String struct {
	Value string
}

func (s *String) Type() Type      { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

// Null is the singleton absence-of-value.
type Null struct{}

func (n *Null) Type() Type      { return NULL_OBJ }
func (n *Null) Inspect() string { return "null" }

// Array is an ordered, mutable sequence of Values.
type Array struct {
	Elements []Value
}

func (a *Array) Type() Type { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Object is an insertion-ordered string-keyed map of Values. Keys is the
// order vector (mirrors ast.ObjectLiteral's parallel Keys/Values shape
// and the teacher's DictionaryLiteral.KeyOrder pattern); Pairs is the
// lookup table.
type Object struct {
	Keys  []string
	Pairs map[string]Value
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{Pairs: make(map[string]Value)}
}

func (o *Object) Type() Type { return OBJECT_OBJ }

// Get returns the value at key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.Pairs[key]
	return v, ok
}

// Set inserts or overwrites key, appending to Keys only on first insert
// so iteration keeps stable insertion order.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.Pairs[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Pairs[key] = v
}

func (o *Object) Inspect() string {
	var sb bytes.Buffer
	sb.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", k, o.Pairs[k].Inspect()))
	}
	sb.WriteByte('}')
	return sb.String()
}

// ModuleEnv is implemented by *evaluator.Environment; declared here
// (rather than imported) to avoid an import cycle between object and
// evaluator, since a Function value must carry a reference to its
// owning module's environment and function table (spec.md §3: "Module
// record") without object importing evaluator.
type ModuleEnv interface {
	LookupGlobal(name string) (Value, bool)
	LookupFunction(name string) (*ast.FunctionDef, bool)
}

// Function is a first-class callable value exposed through an imported
// module's snapshot object (spec.md §9: "Module snapshot as object
// value"). It captures only its owning module's global environment and
// function table — never an enclosing *local* scope — per spec.md §1's
// explicit non-goal ("no true closures"). Functions called directly by
// name within their own defining module never need this wrapper: the
// evaluator dispatches those straight from the module's function table.
type Function struct {
	Def    *ast.FunctionDef
	Module ModuleEnv
}

func (f *Function) Type() Type { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return fmt.Sprintf("function %s(%s)", f.Def.Name, strings.Join(f.Def.Params, ", "))
}

// TypeOf renders the spec.md §6 type_of() tag for a Value.
func TypeOf(v Value) string {
	switch v.(type) {
	case *Number:
		return "number"
	case *Boolean:
		return "boolean"
	case *String:
		return "string"
	case *Array:
		return "array"
	case *Object:
		return "object"
	case *Null:
		return "null"
	default:
		return "null"
	}
}

// Equal implements spec.md §3's structural equality: primitives compare
// by value, arrays and objects compare by deep structural equality.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv, ok := b.(*Object)
		if !ok || len(av.Keys) != len(bv.Keys) {
			return false
		}
		for _, k := range av.Keys {
			bval, ok := bv.Get(k)
			if !ok || !Equal(av.Pairs[k], bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ToDisplayString renders v the way `print` and string interpolation
// do: primitives render natively, compounds via their Inspect form
// (spec.md §4.3's Print rule referencing object_to_string/array_to_string).
func ToDisplayString(v Value) string {
	if s, ok := v.(*String); ok {
		return s.Value
	}
	return v.Inspect()
}
