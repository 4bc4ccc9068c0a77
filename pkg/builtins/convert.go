package builtins

import "jyro/pkg/value"

// valueToGo converts a Jyro value.Value into plain Go data (map[string]any,
// []any, float64, string, bool, nil) for handing to third-party libraries
// that expect interface{}-shaped payloads (e.g. jwt.MapClaims).
func valueToGo(v *value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBoolean:
		return v.AsBool()
	case value.KindNumber:
		return v.AsNumber()
	case value.KindString:
		return v.AsString()
	case value.KindArray:
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = valueToGo(v.Get(i))
		}
		return out
	case value.KindObject:
		out := make(map[string]interface{}, len(v.Keys()))
		for _, k := range v.Keys() {
			out[k] = valueToGo(v.Property(k))
		}
		return out
	default:
		return nil
	}
}

// ToJSON converts a Jyro value.Value into plain Go data suitable for
// encoding/json.Marshal, for use by host programs such as cmd/jyro.
func ToJSON(v *value.Value) interface{} { return valueToGo(v) }

// FromJSON converts data decoded by encoding/json.Unmarshal into a Jyro
// value.Value, for use by host programs such as cmd/jyro.
func FromJSON(v interface{}) *value.Value { return goToValue(v) }

// goToValue converts plain Go data (as produced by encoding/json or a
// third-party library's map[string]interface{} result) back into a Jyro
// value.Value.
func goToValue(v interface{}) *value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null
	case bool:
		return value.Bool(t)
	case float64:
		return value.Number(t)
	case float32:
		return value.Number(float64(t))
	case int:
		return value.Number(float64(t))
	case int64:
		return value.Number(float64(t))
	case string:
		return value.String(t)
	case []interface{}:
		elems := make([]*value.Value, len(t))
		for i, e := range t {
			elems[i] = goToValue(e)
		}
		return value.NewArray(elems...)
	case map[string]interface{}:
		out := value.NewObject()
		for k, e := range t {
			out.SetProperty(k, goToValue(e))
		}
		return out
	default:
		return value.Null
	}
}
