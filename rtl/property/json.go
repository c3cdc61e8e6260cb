package property

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaxJSONDepth bounds nesting when ingesting a JSON document, matching the
// spec's depth-64 testable property.
const MaxJSONDepth = 64

// ErrTooDeep is returned by FromJSON when a document's nesting exceeds
// MaxJSONDepth. It is a plain error rather than an *errors.Error because
// rtl/errors itself depends on this package (its Error.Properties is a
// property.Bag) -- importing rtl/errors here would cycle. Callers that
// need to fold this into the category-indexed error model wrap it at
// their boundary, e.g. errors.New(0, errors.Generic, err.Error()).
// WithProperty(property.NewInt32(errors.PropResultCode,
// int32(errors.InvalidArgument))).
type ErrTooDeep struct {
	Limit int
}

func (e *ErrTooDeep) Error() string {
	return fmt.Sprintf("json nesting exceeds limit of %d", e.Limit)
}

// FromJSON decodes a JSON document into a Property tree: objects become
// Map, arrays become Vector, integral numbers become Int64, all other
// numbers become Double, strings become String, booleans become Bool.
// Depth is bounded by MaxJSONDepth; exceeding it yields *ErrTooDeep.
func FromJSON(name string, data []byte) (Property, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return Property{}, err
	}
	return fromAny(name, v, 1)
}

func fromAny(name string, v any, depth int) (Property, error) {
	if depth > MaxJSONDepth {
		return Property{}, &ErrTooDeep{Limit: MaxJSONDepth}
	}
	switch t := v.(type) {
	case nil:
		return NewEmpty(name), nil
	case bool:
		return NewBool(name, t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewInt64(name, i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Property{}, err
		}
		return NewDouble(name, f), nil
	case string:
		return NewString(name, t), nil
	case []any:
		elems := make([]Property, 0, len(t))
		for i, e := range t {
			p, err := fromAny(fmt.Sprintf("%d", i), e, depth+1)
			if err != nil {
				return Property{}, err
			}
			elems = append(elems, p)
		}
		return NewVector(name, elems), nil
	case map[string]any:
		m := make(map[string]Property, len(t))
		for k, e := range t {
			p, err := fromAny(k, e, depth+1)
			if err != nil {
				return Property{}, err
			}
			m[k] = p
		}
		return NewMap(name, m), nil
	default:
		return Property{}, fmt.Errorf("unsupported json value type %T", v)
	}
}
