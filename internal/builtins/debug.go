package builtins

import (
	"fmt"
	"os"

	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("dump", dumpBuiltin)
	register("dump_type", dumpTypeBuiltin)
	register("assert_equal", assertEqualBuiltin)
}

// dumpBuiltin is spec.md §6's diagnostic print "may return absent —
// use only in non-fail-fast positions": it always writes, but an
// ExpressionStatement discards the return value anyway, so the
// distinction only matters if a script foolishly assigns its result.
func dumpBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("dump")
	}
	fmt.Fprintln(os.Stderr, args[0].Inspect())
	return boolResult(true), nil
}

func dumpTypeBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("dump_type")
	}
	fmt.Fprintln(os.Stderr, object.TypeOf(args[0]))
	return boolResult(true), nil
}

func assertEqualBuiltin(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("assert_equal")
	}
	if !object.Equal(args[0], args[1]) {
		return nil, nil
	}
	return boolResult(true), nil
}
