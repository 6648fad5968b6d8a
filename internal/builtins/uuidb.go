// UUID built-in over github.com/google/uuid, a direct teacher
// dependency used there to mint request/resource ids.
package builtins

import "github.com/google/uuid"

func init() {
	register("uuid_generate", uuidGenerateBuiltin)
}

func uuidGenerateBuiltin(args []Value) (Value, error) {
	if len(args) != 0 {
		return argError("uuid_generate")
	}
	return stringResult(uuid.NewString()), nil
}
