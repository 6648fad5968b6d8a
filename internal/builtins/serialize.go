// YAML built-ins, mirroring json_parse/json_stringify's argument and
// absent-on-failure contract — gopkg.in/yaml.v3 is a direct teacher
// dependency (also used by internal/config). yaml_stringify goes through
// yaml.Marshal of a Go map, so object keys come out sorted, not in
// insertion order as json_stringify emits them.
package builtins

import (
	"math"

	"github.com/stuncs69/vexel/internal/object"
	"gopkg.in/yaml.v3"
)

func init() {
	register("yaml_parse", yamlParseBuiltin)
	register("yaml_stringify", yamlStringifyBuiltin)
}

func yamlParseBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("yaml_parse")
	}
	text, ok := str(args[0])
	if !ok {
		return argError("yaml_parse")
	}
	var decoded any
	if err := yaml.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, nil
	}
	v, ok := fromYAMLAny(decoded)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// fromYAMLAny mirrors fromJSONAny but additionally handles yaml.v3's
// map[string]interface{} decoding of mapping nodes and its use of int
// (not float64) for integral scalars.
func fromYAMLAny(v any) (Value, bool) {
	switch val := v.(type) {
	case nil:
		return &object.Null{}, true
	case bool:
		return &object.Boolean{Value: val}, true
	case string:
		return &object.String{Value: val}, true
	case int:
		if val < math.MinInt32 || val > math.MaxInt32 {
			return nil, false
		}
		return &object.Number{Value: int32(val)}, true
	case float64:
		if val != math.Trunc(val) || val < math.MinInt32 || val > math.MaxInt32 {
			return nil, false
		}
		return &object.Number{Value: int32(val)}, true
	case []any:
		elems := make([]Value, len(val))
		for i, el := range val {
			cv, ok := fromYAMLAny(el)
			if !ok {
				return nil, false
			}
			elems[i] = cv
		}
		return &object.Array{Elements: elems}, true
	case map[string]any:
		o := object.NewObject()
		for k, raw := range val {
			cv, ok := fromYAMLAny(raw)
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

func yamlStringifyBuiltin(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("yaml_stringify")
	}
	out, err := yaml.Marshal(toYAMLAny(args[0]))
	if err != nil {
		return nil, nil
	}
	return stringResult(string(out)), nil
}

func toYAMLAny(v Value) any {
	switch val := v.(type) {
	case *object.Number:
		return val.Value
	case *object.Boolean:
		return val.Value
	case *object.String:
		return val.Value
	case *object.Null, nil:
		return nil
	case *object.Array:
		out := make([]any, len(val.Elements))
		for i, el := range val.Elements {
			out[i] = toYAMLAny(el)
		}
		return out
	case *object.Object:
		out := make(map[string]any, len(val.Keys))
		for _, k := range val.Keys {
			cv, _ := val.Get(k)
			out[k] = toYAMLAny(cv)
		}
		return out
	default:
		return nil
	}
}
