package evaluator

import (
	"os"
	"path/filepath"

	"github.com/stuncs69/vexel/internal/ast"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/parser"
	"github.com/stuncs69/vexel/internal/verrors"
)

// moduleEntry is one slot of the evaluator's module cache (spec.md §5).
// inFlight is set the instant a path begins loading and cleared only
// on success; a second LoadModule call observing inFlight==true for
// the same canonical path is the import-cycle case (IMPORT-0002).
type moduleEntry struct {
	inFlight bool
	snapshot *object.Object
}

// LoadModule resolves path relative to fromDir, evaluates it exactly
// once (caching by canonical filesystem path), and returns its module
// snapshot: an Object binding every top-level variable plus every
// `export`ed function, wrapped as an *object.Function closing over the
// module's own environment (spec.md §4.5, §9 "Module snapshot as
// object value").
func (e *Evaluator) LoadModule(path, fromDir string) (*object.Object, error) {
	canonical, err := filepath.Abs(filepath.Join(fromDir, path))
	if err != nil {
		return nil, verrors.New("IMPORT-0001", map[string]any{"Path": path})
	}

	if entry, ok := e.modules[canonical]; ok {
		if entry.inFlight {
			return nil, verrors.New("IMPORT-0002", map[string]any{"Chain": canonical})
		}
		return entry.snapshot, nil
	}

	e.modules[canonical] = &moduleEntry{inFlight: true}

	data, err := os.ReadFile(canonical)
	if err != nil {
		delete(e.modules, canonical)
		return nil, verrors.New("IMPORT-0001", map[string]any{"Path": path})
	}

	prog, err := parser.ParseProgram(string(data))
	if err != nil {
		delete(e.modules, canonical)
		return nil, verrors.New("IMPORT-0003", map[string]any{"Path": path, "Inner": err.Error()})
	}

	moduleEnv := NewEnvironment()
	moduleEnv.SetSourceDir(filepath.Dir(canonical))
	if err := e.Eval(prog, moduleEnv, canonical); err != nil {
		delete(e.modules, canonical)
		return nil, verrors.New("IMPORT-0003", map[string]any{"Path": path, "Inner": err.Error()})
	}

	snapshot := buildSnapshot(moduleEnv)
	e.modules[canonical] = &moduleEntry{snapshot: snapshot}
	return snapshot, nil
}

// buildSnapshot collects a fully evaluated module's top-level
// variables and exported functions into the single Object bound under
// its import alias.
func buildSnapshot(env *Environment) *object.Object {
	snap := object.NewObject()
	for _, name := range env.GlobalOrder() {
		v, _ := env.LookupGlobal(name)
		snap.Set(name, v)
	}
	for _, fd := range env.Functions() {
		if fd.Exported {
			snap.Set(fd.Name, &object.Function{Def: fd, Module: env})
		}
	}
	return snap
}

// execImport evaluates an `import alias from "path"` statement: the
// path is resolved relative to the importing module's own source
// directory (carried on Environment since modules.go has no access to
// the original parse-time working directory otherwise).
func (e *Evaluator) execImport(s *ast.ImportStatement, env *Environment) error {
	snapshot, err := e.LoadModule(s.Path, env.SourceDir())
	if err != nil {
		if ve, ok := err.(*verrors.VexelError); ok {
			return ve.WithPosition(s.Tok.Line, s.Tok.Column)
		}
		return err
	}
	env.SetLocal(s.Alias, snapshot)
	return nil
}
