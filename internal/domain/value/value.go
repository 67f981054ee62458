// Package value holds the tagged scalar stored in record fields.
package value

import (
	"math"
	"strconv"
	"time"
)

// Kind tags the scalar held by a Value.
type Kind uint8

// Kind constants. The zero Kind is Undefined: the field is absent.
const (
	Undefined Kind = iota
	Null
	String
	Number
	Bool
	Date
)

var kindNames = [...]string{"undefined", "null", "string", "number", "boolean", "date"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable tagged scalar.
// Date values keep the text they were parsed from so that their string form
// matches what the backend sent.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// OfString creates a string value.
func OfString(s string) Value { return Value{kind: String, str: s} }

// OfNumber creates a numeric value.
func OfNumber(f float64) Value { return Value{kind: Number, num: f} }

// OfBool creates a boolean value.
func OfBool(b bool) Value { return Value{kind: Bool, b: b} }

// OfNull creates an explicit null value.
func OfNull() Value { return Value{kind: Null} }

// OfDate creates a date value from its source text and parsed time.
func OfDate(raw string, t time.Time) Value { return Value{kind: Date, str: raw, t: t} }

// Kind returns the value tag.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether the value stands for an absent field.
func (v Value) IsUndefined() bool { return v.kind == Undefined }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.kind == Number }

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Time returns the date payload.
func (v Value) Time() (time.Time, bool) {
	if v.kind != Date {
		return time.Time{}, false
	}
	return v.t, true
}

// BoolValue returns the boolean payload.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// String returns the value's display/search form.
// Absent fields read as "undefined" and nulls as "null".
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case String, Date:
		return v.str
	case Number:
		return formatNumber(v.num)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return "undefined"
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case Bool:
		return v.b == o.b
	case Date:
		return v.str == o.str && v.t.Equal(o.t)
	default:
		return v.str == o.str
	}
}

// formatNumber renders floats the way a browser prints numbers:
// integers without a fraction, exponent only for very large/small magnitudes.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
