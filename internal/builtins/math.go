package builtins

import "math"

func init() {
	register("math_add", mathAdd)
	register("math_subtract", mathSubtract)
	register("math_multiply", mathMultiply)
	register("math_divide", mathDivide)
	register("math_power", mathPower)
	register("math_sqrt", mathSqrt)
	register("math_abs", mathAbs)
}

// mathAdd, mathSubtract, mathMultiply and mathPower detect 32-bit
// overflow so spec.md §9's recommended
// "return absent on overflow" choice is honored uniformly.

func mathAdd(args []Value) (Value, error) {
	a, b, ok := twoNums(args)
	if !ok {
		return argError("math_add")
	}
	r := int64(a) + int64(b)
	if r < math.MinInt32 || r > math.MaxInt32 {
		return nil, nil
	}
	return numberResult(int32(r)), nil
}

func mathSubtract(args []Value) (Value, error) {
	a, b, ok := twoNums(args)
	if !ok {
		return argError("math_subtract")
	}
	r := int64(a) - int64(b)
	if r < math.MinInt32 || r > math.MaxInt32 {
		return nil, nil
	}
	return numberResult(int32(r)), nil
}

func mathMultiply(args []Value) (Value, error) {
	a, b, ok := twoNums(args)
	if !ok {
		return argError("math_multiply")
	}
	r := int64(a) * int64(b)
	if r < math.MinInt32 || r > math.MaxInt32 {
		return nil, nil
	}
	return numberResult(int32(r)), nil
}

func mathDivide(args []Value) (Value, error) {
	a, b, ok := twoNums(args)
	if !ok {
		return argError("math_divide")
	}
	if b == 0 {
		return nil, nil
	}
	return numberResult(a / b), nil
}

func mathPower(args []Value) (Value, error) {
	a, b, ok := twoNums(args)
	if !ok {
		return argError("math_power")
	}
	r := math.Pow(float64(a), float64(b))
	if math.IsNaN(r) || r < math.MinInt32 || r > math.MaxInt32 {
		return nil, nil
	}
	return numberResult(int32(r)), nil
}

func mathSqrt(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("math_sqrt")
	}
	n, ok := num(args[0])
	if !ok || n < 0 {
		return nil, nil
	}
	return numberResult(int32(math.Sqrt(float64(n)))), nil
}

func mathAbs(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("math_abs")
	}
	n, ok := num(args[0])
	if !ok {
		return argError("math_abs")
	}
	if n == math.MinInt32 {
		return nil, nil
	}
	if n < 0 {
		n = -n
	}
	return numberResult(n), nil
}

func twoNums(args []Value) (int32, int32, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	a, ok1 := num(args[0])
	b, ok2 := num(args[1])
	return a, b, ok1 && ok2
}
