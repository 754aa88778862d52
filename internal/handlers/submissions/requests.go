package submissions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SubmitRequest is the body of a submission
type SubmitRequest struct {
	Code string     `json:"code"`
	Pid  ProblemRef `json:"pid"`
}

// ProblemRef accepts a problem id written as any JSON value. Falsy values
// (null, false, 0, "") decode to the empty id. Other values use the text they
// would have as an object key in JavaScript, so true names problem "true" and
// [1] names problem "1".
type ProblemRef string

func (p *ProblemRef) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case nil:
		*p = ""
	case bool:
		if val {
			*p = "true"
		} else {
			*p = ""
		}
	case string:
		*p = ProblemRef(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return fmt.Errorf("pid is not a valid number")
		}
		if f == 0 {
			*p = ""
			return nil
		}
		*p = ProblemRef(formatKeyNumber(f))
	default:
		key := propertyKey(val)
		if key == "" {
			// arrays are truthy even when their key is empty; keep them present
			// with a key that never names a catalog problem
			key = string(bytes.TrimSpace(data))
		}
		*p = ProblemRef(key)
	}
	return nil
}

// propertyKey renders a decoded JSON value the way String() does in JavaScript.
func propertyKey(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return formatKeyNumber(f)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = propertyKey(item)
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

func formatKeyNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
