// Password-hashing built-ins over golang.org/x/crypto/bcrypt, a direct
// teacher dependency used there for the same purpose in its own auth
// stack.
package builtins

import "golang.org/x/crypto/bcrypt"

func init() {
	register("hash_password", hashPasswordBuiltin)
	register("check_password", checkPasswordBuiltin)
}

func hashPasswordBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("hash_password")
	}
	plain, ok := str(args[0])
	if !ok {
		return argError("hash_password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil
	}
	return stringResult(string(hash)), nil
}

func checkPasswordBuiltin(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("check_password")
	}
	plain, ok1 := str(args[0])
	hash, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("check_password")
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return boolResult(err == nil), nil
}
