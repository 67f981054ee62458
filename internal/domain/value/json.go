package value

import (
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes the value as its native JSON scalar.
// Undefined and non-finite numbers encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case String, Date:
		return json.Marshal(v.str)
	case Number:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return strconv.AppendFloat(nil, v.num, 'f', -1, 64), nil
	case Bool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return []byte("null"), nil
	}
}
