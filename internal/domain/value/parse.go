package value

import (
	"fmt"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
)

// dateLayouts are tried in order when a string is loaded.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseText types a string scalar: date-shaped strings become Date, the rest String.
func ParseText(s string) Value {
	// Cheap pre-check: every layout starts with YYYY-MM-DD.
	if len(s) >= len(time.DateOnly) && s[4] == '-' && s[7] == '-' {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return OfDate(s, t)
			}
		}
	}
	return OfString(s)
}

// ParseField types a field read from a string-only store (hash fields).
// numeric marks fields declared numeric by the backend schema.
func ParseField(s string, numeric bool) Value {
	if numeric {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return OfNumber(f)
		}
	}
	return ParseText(s)
}

// FromJSON types a raw JSON token as returned by jsonparser.
// Objects and arrays are kept as their compact JSON text.
func FromJSON(raw []byte, vt jsonparser.ValueType) (Value, error) {
	switch vt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse string: %w", err)
		}
		return ParseText(s), nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse number: %w", err)
		}
		return OfNumber(f), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse boolean: %w", err)
		}
		return OfBool(b), nil
	case jsonparser.Null:
		return OfNull(), nil
	case jsonparser.Object, jsonparser.Array:
		return OfString(string(raw)), nil
	default:
		return Value{}, fmt.Errorf("unsupported json value type %s", vt)
	}
}
