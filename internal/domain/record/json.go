package record

import (
	jsoniter "github.com/json-iterator/go"
)

// MarshalJSON encodes the record as an object keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range r.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		b, err := r.fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		stream.WriteRaw(string(b))
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}
