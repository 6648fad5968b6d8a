package builtins

import "strings"

func init() {
	register("array_push", arrayPush)
	register("array_pop", arrayPop)
	register("array_length", arrayLength)
	register("array_get", arrayGet)
	register("array_set", arraySet)
	register("array_slice", arraySlice)
	register("array_join", arrayJoin)
	register("array_to_string", arrayToString)
	register("array_range", arrayRange)
}

func arrayPush(args []Value) (Value, error) {
	if len(args) < 2 {
		return argError("array_push")
	}
	a, ok := arr(args[0])
	if !ok {
		return argError("array_push")
	}
	elems := append(append([]Value{}, a.Elements...), args[1:]...)
	return arrayResult(elems), nil
}

func arrayPop(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("array_pop")
	}
	a, ok := arr(args[0])
	if !ok || len(a.Elements) == 0 {
		return nil, nil
	}
	return a.Elements[len(a.Elements)-1], nil
}

func arrayLength(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("array_length")
	}
	a, ok := arr(args[0])
	if !ok {
		return argError("array_length")
	}
	return numberResult(int32(len(a.Elements))), nil
}

func arrayGet(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("array_get")
	}
	a, ok := arr(args[0])
	i, iok := num(args[1])
	if !ok || !iok || i < 0 || int(i) >= len(a.Elements) {
		return nil, nil
	}
	return a.Elements[i], nil
}

func arraySet(args []Value) (Value, error) {
	if len(args) != 3 {
		return argError("array_set")
	}
	a, ok := arr(args[0])
	i, iok := num(args[1])
	if !ok || !iok || i < 0 || int(i) >= len(a.Elements) {
		return nil, nil
	}
	elems := append([]Value{}, a.Elements...)
	elems[i] = args[2]
	return arrayResult(elems), nil
}

func arraySlice(args []Value) (Value, error) {
	if len(args) != 3 {
		return argError("array_slice")
	}
	a, ok := arr(args[0])
	start, sok := num(args[1])
	end, eok := num(args[2])
	if !ok || !sok || !eok {
		return argError("array_slice")
	}
	n := int32(len(a.Elements))
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return arrayResult(append([]Value{}, a.Elements[start:end]...)), nil
}

func arrayJoin(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("array_join")
	}
	a, ok := arr(args[0])
	sep, sok := str(args[1])
	if !ok || !sok {
		return argError("array_join")
	}
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = displayString(el)
	}
	return stringResult(strings.Join(parts, sep)), nil
}

func arrayToString(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("array_to_string")
	}
	a, ok := arr(args[0])
	if !ok {
		return argError("array_to_string")
	}
	return stringResult(renderJSONLike(a)), nil
}

func arrayRange(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("array_range")
	}
	n, ok := num(args[0])
	if !ok || n < 0 {
		return nil, nil
	}
	elems := make([]Value, n)
	for i := int32(0); i < n; i++ {
		elems[i] = numberResult(i)
	}
	return arrayResult(elems), nil
}
