package builtins

import (
	"strconv"
	"strings"

	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("object_to_string", objectToString)
	register("object_keys", objectKeys)
	register("object_values", objectValues)
	register("object_has_property", objectHasProperty)
	register("object_merge", objectMerge)
	register("object_create", objectCreate)
}

func objectToString(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("object_to_string")
	}
	o, ok := obj(args[0])
	if !ok {
		return argError("object_to_string")
	}
	return stringResult(renderJSONLike(o)), nil
}

func objectKeys(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("object_keys")
	}
	o, ok := obj(args[0])
	if !ok {
		return argError("object_keys")
	}
	keys := make([]Value, len(o.Keys))
	for i, k := range o.Keys {
		keys[i] = stringResult(k)
	}
	return arrayResult(keys), nil
}

func objectValues(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("object_values")
	}
	o, ok := obj(args[0])
	if !ok {
		return argError("object_values")
	}
	vals := make([]Value, len(o.Keys))
	for i, k := range o.Keys {
		vals[i], _ = o.Get(k)
	}
	return arrayResult(vals), nil
}

func objectHasProperty(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("object_has_property")
	}
	o, ok := obj(args[0])
	key, kok := str(args[1])
	if !ok || !kok {
		return argError("object_has_property")
	}
	_, has := o.Get(key)
	return boolResult(has), nil
}

func objectMerge(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("object_merge")
	}
	a, ok1 := obj(args[0])
	b, ok2 := obj(args[1])
	if !ok1 || !ok2 {
		return argError("object_merge")
	}
	merged := object.NewObject()
	for _, k := range a.Keys {
		v, _ := a.Get(k)
		merged.Set(k, v)
	}
	for _, k := range b.Keys {
		v, _ := b.Get(k)
		merged.Set(k, v)
	}
	return merged, nil
}

func objectCreate(args []Value) (Value, error) {
	if len(args)%2 != 0 {
		return nil, nil
	}
	o := object.NewObject()
	for i := 0; i < len(args); i += 2 {
		key, ok := str(args[i])
		if !ok {
			return argError("object_create")
		}
		o.Set(key, args[i+1])
	}
	return o, nil
}

// renderJSONLike is the shared stable, insertion-ordered JSON-like
// renderer behind object_to_string, array_to_string, and
// json_stringify — spec.md §6 requires all three to agree on shape
// (quoted string keys and values, no library-dependent map reordering).
func renderJSONLike(v Value) string {
	var sb strings.Builder
	writeJSONLike(&sb, v)
	return sb.String()
}

func writeJSONLike(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case *object.Number:
		sb.WriteString(strconv.FormatInt(int64(val.Value), 10))
	case *object.Boolean:
		sb.WriteString(strconv.FormatBool(val.Value))
	case *object.Null, nil:
		sb.WriteString("null")
	case *object.String:
		sb.WriteString(strconv.Quote(val.Value))
	case *object.Array:
		sb.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONLike(sb, el)
		}
		sb.WriteByte(']')
	case *object.Object:
		sb.WriteByte('{')
		for i, k := range val.Keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			child, _ := val.Get(k)
			writeJSONLike(sb, child)
		}
		sb.WriteByte('}')
	case *object.Function:
		sb.WriteString(strconv.Quote(val.Inspect()))
	}
}
