package evaluator

import (
	"github.com/stuncs69/vexel/internal/ast"
	"github.com/stuncs69/vexel/internal/object"
)

// Environment is spec.md §3's "stack of scope frames plus a module-
// global function table". frames[0] is always the module's top-level
// (global) frame; every other frame is a child scope discarded when its
// owning if/while/for body or function call returns.
//
// functions is shared by reference across every Environment spawned for
// a given module (child frames, function-call frames, test frames) so
// that a FunctionDef executed anywhere in the module registers visibly
// for the whole module, matching spec.md §4.3's "FunctionDef... register
// into the module function table".
type Environment struct {
	frames      []map[string]object.Value
	functions   map[string]*ast.FunctionDef
	globalOrder []string
	sourceDir   string
}

// NewEnvironment creates a fresh top-level environment: a single empty
// frame and an empty function table. Used once per module evaluation
// (script mode, each imported module, and the REPL's persistent env).
func NewEnvironment() *Environment {
	return &Environment{
		frames:    []map[string]object.Value{make(map[string]object.Value)},
		functions: make(map[string]*ast.FunctionDef),
	}
}

// PushFrame opens a new child scope (if/while/for body, one per
// iteration).
func (e *Environment) PushFrame() {
	e.frames = append(e.frames, make(map[string]object.Value))
}

// PopFrame discards the innermost scope.
func (e *Environment) PopFrame() {
	e.frames = e.frames[:len(e.frames)-1]
}

// Get walks frames innermost-to-outermost for name (VarRef lookup,
// spec.md §4.3).
func (e *Environment) Get(name string) (object.Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// SetLocal defines or overwrites name in the current (innermost) frame —
// spec.md §4.3's Assign rule for a bare identifier target.
func (e *Environment) SetLocal(name string, v object.Value) {
	idx := len(e.frames) - 1
	if idx == 0 {
		if _, exists := e.frames[0][name]; !exists {
			e.globalOrder = append(e.globalOrder, name)
		}
	}
	e.frames[idx][name] = v
}

// GlobalOrder returns top-level variable names in first-assignment
// order, used when building an import's module snapshot so its key
// order matches the source file's declaration order.
func (e *Environment) GlobalOrder() []string {
	return e.globalOrder
}

// SourceDir is the directory an `import ... from "path"` is resolved
// relative to: the directory containing this module's own source file
// (or the process's working directory for the top-level script/REPL).
func (e *Environment) SourceDir() string {
	return e.sourceDir
}

// SetSourceDir sets the directory import paths resolve against.
func (e *Environment) SetSourceDir(dir string) {
	e.sourceDir = dir
}

// LookupGlobal reads only the module's top-level frame, satisfying
// object.ModuleEnv for Function values exposed across an import boundary.
func (e *Environment) LookupGlobal(name string) (object.Value, bool) {
	v, ok := e.frames[0][name]
	return v, ok
}

// LookupFunction looks up name in the module's function table.
func (e *Environment) LookupFunction(name string) (*ast.FunctionDef, bool) {
	fd, ok := e.functions[name]
	return fd, ok
}

// DefineFunction registers fd into the module function table
// (re-definition overwrites, per spec.md §4.3).
func (e *Environment) DefineFunction(fd *ast.FunctionDef) {
	e.functions[fd.Name] = fd
}

// GlobalFrame returns the module's top-level variable frame, used when
// constructing a function-call environment (spec.md §4.3: the callee's
// frame stack is "a single fresh frame for parameters" sitting atop the
// owning module's globals).
func (e *Environment) GlobalFrame() map[string]object.Value {
	return e.frames[0]
}

// Functions returns the shared function-table map.
func (e *Environment) Functions() map[string]*ast.FunctionDef {
	return e.functions
}

// SnapshotNames returns a copy of the top-level variable names (in no
// particular order), used as the candidate list for "did you mean" hints
// on an undefined variable.
func (e *Environment) SnapshotNames() []string {
	names := make([]string, 0, len(e.frames[0]))
	for k := range e.frames[0] {
		names = append(names, k)
	}
	return names
}

// newCallEnvironment builds the environment a function body executes in:
// the owning module's global frame at the bottom, and one fresh frame
// holding the bound parameters on top. The function's own module table
// is reused unmodified so nested calls resolve siblings correctly.
func newCallEnvironment(module *Environment, params []string, args []object.Value) *Environment {
	frame := make(map[string]object.Value, len(params))
	for i, p := range params {
		frame[p] = args[i]
	}
	return &Environment{
		frames:    []map[string]object.Value{module.GlobalFrame(), frame},
		functions: module.functions,
		sourceDir: module.sourceDir,
	}
}

// newIsolatedTestEnvironment builds the environment a `test` block runs
// in: it shares the function table but has no lineage to the enclosing
// variable frames (spec.md §4.3, the "Scope isolation" invariant of
// spec.md §8).
func newIsolatedTestEnvironment(module *Environment) *Environment {
	return &Environment{
		frames:    []map[string]object.Value{make(map[string]object.Value)},
		functions: module.functions,
		sourceDir: module.sourceDir,
	}
}
