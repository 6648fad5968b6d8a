package builtins

import (
	"strconv"
	"strings"
)

func init() {
	register("string_length", stringLength)
	register("string_concat", stringConcat)
	register("string_from_number", stringFromNumber)
	register("number_from_string", numberFromString)
	register("string_substring", stringSubstring)
	register("string_contains", stringContains)
	register("string_replace", stringReplace)
	register("string_to_upper", stringToUpper)
	register("string_to_lower", stringToLower)
	register("string_trim", stringTrim)
	register("string_starts_with", stringStartsWith)
	register("string_ends_with", stringEndsWith)
}

func stringLength(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_length")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_length")
	}
	return numberResult(int32(len([]rune(s)))), nil
}

func stringConcat(args []Value) (Value, error) {
	if len(args) == 0 {
		return argError("string_concat")
	}
	var sb strings.Builder
	for _, a := range args {
		s, ok := str(a)
		if !ok {
			return argError("string_concat")
		}
		sb.WriteString(s)
	}
	return stringResult(sb.String()), nil
}

func stringFromNumber(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_from_number")
	}
	n, ok := num(args[0])
	if !ok {
		return argError("string_from_number")
	}
	return stringResult(strconv.FormatInt(int64(n), 10)), nil
}

func numberFromString(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("number_from_string")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("number_from_string")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return nil, nil
	}
	return numberResult(int32(n)), nil
}

func stringSubstring(args []Value) (Value, error) {
	if len(args) != 3 {
		return argError("string_substring")
	}
	s, ok := str(args[0])
	start, sok := num(args[1])
	length, lok := num(args[2])
	if !ok || !sok || !lok {
		return argError("string_substring")
	}
	runes := []rune(s)
	if start < 0 || length < 0 || int(start) > len(runes) || int(start+length) > len(runes) {
		return nil, nil
	}
	return stringResult(string(runes[start : start+length])), nil
}

func stringContains(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("string_contains")
	}
	s, ok1 := str(args[0])
	sub, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("string_contains")
	}
	return boolResult(strings.Contains(s, sub)), nil
}

func stringReplace(args []Value) (Value, error) {
	if len(args) != 3 {
		return argError("string_replace")
	}
	s, ok1 := str(args[0])
	old, ok2 := str(args[1])
	newS, ok3 := str(args[2])
	if !ok1 || !ok2 || !ok3 {
		return argError("string_replace")
	}
	return stringResult(strings.ReplaceAll(s, old, newS)), nil
}

func stringToUpper(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_to_upper")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_to_upper")
	}
	return stringResult(strings.ToUpper(s)), nil
}

func stringToLower(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_to_lower")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_to_lower")
	}
	return stringResult(strings.ToLower(s)), nil
}

func stringTrim(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_trim")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_trim")
	}
	return stringResult(strings.TrimSpace(s)), nil
}

func stringStartsWith(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("string_starts_with")
	}
	s, ok1 := str(args[0])
	prefix, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("string_starts_with")
	}
	return boolResult(strings.HasPrefix(s, prefix)), nil
}

func stringEndsWith(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("string_ends_with")
	}
	s, ok1 := str(args[0])
	suffix, ok2 := str(args[1])
	if !ok1 || !ok2 {
		return argError("string_ends_with")
	}
	return boolResult(strings.HasSuffix(s, suffix)), nil
}
