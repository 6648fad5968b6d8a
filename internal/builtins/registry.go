// Package builtins is spec.md §6's fixed native-function registry: the
// only callables an identifier can resolve to besides a module's own
// function table. Every category (math, arrays, strings, objects,
// json, filesystem, core, http, threads, debug) plus the domain-stack
// supplements registers itself into the shared table via an init()
// in its own file — the same "each file owns a slice of one shared
// map" layout the teacher uses for its route/middleware registries.
package builtins

import (
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/verrors"
)

// Value is a shorthand for object.Value used throughout the category
// files to keep native function signatures terse.
type Value = object.Value

// Func is a native function. A (nil, nil) result is spec.md §6's
// "universal absent-value failure signal" — the caller turns it into
// a RUNTIME-0011 error. A non-nil error (always a *verrors.VexelError)
// propagates verbatim, used by the security-gated builtins to report
// a specific denied-permission error instead of the generic one.
type Func func(args []Value) (Value, error)

var registry = map[string]Func{}

// register adds fn under name. Called only from package init()s;
// panics on a duplicate name since that indicates two categories
// collided on a builtin name, a programming error not a runtime one.
func register(name string, fn Func) {
	if _, exists := registry[name]; exists {
		panic("builtins: duplicate registration for " + name)
	}
	registry[name] = fn
}

// Lookup returns the native function bound to name, if any.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names lists every registered builtin, used for FindClosestMatch
// "did you mean" hints on an unknown-function RuntimeError.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// argError builds a RUNTIME-0011 for a builtin that received
// arguments it cannot act on — used by category files wherever a type
// assertion on args[i] fails up front rather than naturally falling
// through to a (nil, nil) return.
func argError(name string) (object.Value, error) {
	return nil, verrors.New("RUNTIME-0011", map[string]any{"Name": name})
}

func securityDenied(code string) (object.Value, error) {
	return nil, verrors.New(code, nil)
}

func num(v object.Value) (int32, bool) {
	n, ok := v.(*object.Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func str(v object.Value) (string, bool) {
	s, ok := v.(*object.String)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func boolean(v object.Value) (bool, bool) {
	b, ok := v.(*object.Boolean)
	if !ok {
		return false, false
	}
	return b.Value, true
}

func arr(v object.Value) (*object.Array, bool) {
	a, ok := v.(*object.Array)
	return a, ok
}

func obj(v object.Value) (*object.Object, bool) {
	o, ok := v.(*object.Object)
	return o, ok
}

func displayString(v Value) string { return object.ToDisplayString(v) }

func numberResult(n int32) Value    { return &object.Number{Value: n} }
func stringResult(s string) Value   { return &object.String{Value: s} }
func boolResult(b bool) Value       { return &object.Boolean{Value: b} }
func nullResult() Value             { return &object.Null{} }
func arrayResult(e []Value) Value   { return &object.Array{Elements: e} }
