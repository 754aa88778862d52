package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Values exchanged with the executor follow a JavaScript-like model:
//
//	number    float64
//	string    string
//	boolean   bool
//	null      nil
//	undefined Undefined
//	array     []interface{}
//	object    map[string]interface{}
//	other     Opaque
type undefinedValue struct{}

// Undefined is the JavaScript undefined value.
var Undefined = undefinedValue{}

func (undefinedValue) String() string { return "undefined" }

// MarshalJSON encodes undefined as null, like JSON.stringify inside arrays.
func (undefinedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Opaque stands in for values with no structural representation
// (functions, symbols, dates, cycles). An Opaque never equals anything.
type Opaque struct {
	Repr string
}

func (o Opaque) String() string { return o.Repr }

func (o Opaque) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Repr)
}

// IsUndefined reports whether v is the undefined value.
func IsUndefined(v interface{}) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// NormalizeValue converts Go data from a catalog source into the canonical value model.
func NormalizeValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case undefinedValue:
		return val, nil
	case Opaque:
		return nil, fmt.Errorf("opaque value %q cannot be used as test data", val.Repr)
	case bool, string, float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", val, err)
		}
		return f, nil
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			n, err := NormalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			n, err := NormalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", k)
			}
			n, err := NormalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	}

	// typed slices such as []int written by hand in Go catalogs
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			n, err := NormalizeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}

// StrictEqual compares two canonical values. Primitives follow JavaScript ===
// (no coercion, NaN never equal, +0 equals -0). Arrays and plain objects are
// compared element by element with the same rule.
func StrictEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case undefinedValue:
		return IsUndefined(b)
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !StrictEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, item := range av {
			other, present := bv[k]
			if !present || !StrictEqual(item, other) {
				return false
			}
		}
		return true
	}
	return false
}

// JSONSafe rewrites a value so encoding/json accepts it: NaN and infinities
// become null, as JSON.stringify does.
func JSONSafe(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case undefinedValue:
		return nil
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = JSONSafe(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = JSONSafe(item)
		}
		return out
	}
	return v
}
