// Filesystem built-ins. Every one consults internal/config's process-
// wide permission gates before touching disk, returning the matching
// SEC-000x SecurityError when the gate is closed — the supplemental
// safety feature SPEC_FULL.md adds on top of spec.md's bare "absent on
// failure" contract, operationalizing the teacher's own SEC-0002/0003
// catalog entries (pkg/parsley/errors/errors.go) for real.
package builtins

import (
	"os"

	"github.com/stuncs69/vexel/internal/config"
)

func init() {
	register("read_file", readFile)
	register("write_file", writeFile)
	register("append_file", appendFile)
	register("file_exists", fileExists)
	register("delete_file", deleteFile)
	register("rename_file", renameFile)
	register("create_dir", createDir)
	register("list_dir", listDir)
}

func readFile(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("read_file")
	}
	if !config.Current.AllowRead {
		return securityDenied("SEC-0002")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("read_file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	return stringResult(string(data)), nil
}

func writeFile(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("write_file")
	}
	if !config.Current.AllowWrite {
		return securityDenied("SEC-0003")
	}
	path, ok := str(args[0])
	content, cok := str(args[1])
	if !ok || !cok {
		return argError("write_file")
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}

func appendFile(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("append_file")
	}
	if !config.Current.AllowWrite {
		return securityDenied("SEC-0003")
	}
	path, ok := str(args[0])
	content, cok := str(args[1])
	if !ok || !cok {
		return argError("append_file")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}

func fileExists(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("file_exists")
	}
	if !config.Current.AllowRead {
		return securityDenied("SEC-0002")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("file_exists")
	}
	_, err := os.Stat(path)
	return boolResult(err == nil), nil
}

func deleteFile(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("delete_file")
	}
	if !config.Current.AllowWrite {
		return securityDenied("SEC-0003")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("delete_file")
	}
	if err := os.Remove(path); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}

func renameFile(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("rename_file")
	}
	if !config.Current.AllowWrite {
		return securityDenied("SEC-0003")
	}
	from, ok1 := str(args[0])
	to, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("rename_file")
	}
	if err := os.Rename(from, to); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}

func createDir(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("create_dir")
	}
	if !config.Current.AllowWrite {
		return securityDenied("SEC-0003")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("create_dir")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, nil
	}
	return boolResult(true), nil
}

func listDir(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("list_dir")
	}
	if !config.Current.AllowRead {
		return securityDenied("SEC-0002")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("list_dir")
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, nil
	}
	names := make([]Value, len(entries))
	for i, entry := range entries {
		names[i] = stringResult(entry.Name())
	}
	return arrayResult(names), nil
}
