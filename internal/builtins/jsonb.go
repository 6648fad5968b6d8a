// JSON built-ins. Parsing goes through json-iterator/go (a drop-in,
// faster encoding/json replacement already in the teacher's go.mod)
// decoded into Go's generic any-tree, then walked into Vexel Values.
// Stringifying reuses renderJSONLike directly from the Object's own
// insertion order rather than round-tripping through a Go map, which
// would lose that order — jsoniter has no insertion-ordered map type,
// so it is not a fit for the stringify direction.
package builtins

import (
	"math"

	jsoniter "github.com/json-iterator/go"
	"github.com/stuncs69/vexel/internal/object"
)

func init() {
	register("json_parse", jsonParseBuiltin)
	register("json_stringify", jsonStringifyBuiltin)
}

func jsonParseBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("json_parse")
	}
	text, ok := str(args[0])
	if !ok {
		return argError("json_parse")
	}
	var decoded any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(text, &decoded); err != nil {
		return nil, nil
	}
	v, ok := fromJSONAny(decoded)
	if !ok {
		return nil, nil
	}
	return v, nil
}

func fromJSONAny(v any) (Value, bool) {
	switch val := v.(type) {
	case nil:
		return &object.Null{}, true
	case bool:
		return &object.Boolean{Value: val}, true
	case string:
		return &object.String{Value: val}, true
	case float64:
		if val != math.Trunc(val) || val < math.MinInt32 || val > math.MaxInt32 {
			return nil, false
		}
		return &object.Number{Value: int32(val)}, true
	case []any:
		elems := make([]Value, len(val))
		for i, el := range val {
			v, ok := fromJSONAny(el)
			if !ok {
				return nil, false
			}
			elems[i] = v
		}
		return &object.Array{Elements: elems}, true
	case map[string]any:
		o := object.NewObject()
		for k, raw := range val {
			cv, ok := fromJSONAny(raw)
			if !ok {
				return nil, false
			}
			o.Set(k, cv)
		}
		return o, true
	default:
		return nil, false
	}
}

func jsonStringifyBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("json_stringify")
	}
	return stringResult(renderJSONLike(args[0])), nil
}
