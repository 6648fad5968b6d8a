package builtins

import (
	"os/exec"
	"time"

	"github.com/stuncs69/vexel/internal/config"
	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("sleep", sleepBuiltin)
	register("type_of", typeOfBuiltin)
	register("is_null", isNullBuiltin)
	register("exec", execBuiltin)
}

func sleepBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("sleep")
	}
	seconds, ok := num(args[0])
	if !ok || seconds < 0 {
		return argError("sleep")
	}
	time.Sleep(time.Duration(seconds) * time.Second)
	return boolResult(true), nil
}

func typeOfBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("type_of")
	}
	return stringResult(string(object.TypeOf(args[0]))), nil
}

func isNullBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("is_null")
	}
	_, ok := args[0].(*object.Null)
	return boolResult(ok), nil
}

func execBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("exec")
	}
	if !config.Current.AllowExecute {
		return securityDenied("SEC-0004")
	}
	cmdline, ok := str(args[0])
	if !ok {
		return argError("exec")
	}
	out, err := exec.Command("sh", "-c", cmdline).Output()
	if err != nil {
		return nil, nil
	}
	return stringResult(string(out)), nil
}
