package value

import (
	"testing"

	"github.com/buger/jsonparser"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"undefined", Value{}, "undefined"},
		{"null", OfNull(), "null"},
		{"string", OfString("Active"), "Active"},
		{"integer number", OfNumber(10), "10"},
		{"fraction", OfNumber(15420.5), "15420.5"},
		{"negative", OfNumber(-74.006), "-74.006"},
		{"huge", OfNumber(1e21), "1e+21"},
		{"bool", OfBool(true), "true"},
		{"date keeps source text", ParseText("2024-01-20T10:30:00Z"), "2024-01-20T10:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"2024-01-20T10:30:00Z", Date},
		{"2024-01-20", Date},
		{"2024-01-20T10:30:00", Date},
		{"2024-13-45", String},
		{"New York", String},
		{"", String},
		{"12345", String},
	}
	for _, tt := range tests {
		if got := ParseText(tt.in).Kind(); got != tt.want {
			t.Errorf("ParseText(%q).Kind() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseField(t *testing.T) {
	v := ParseField("15420.50", true)
	f, ok := v.Float()
	if !ok || f != 15420.5 {
		t.Fatalf("numeric field = %v (%v)", f, ok)
	}

	if got := ParseField("15420.50", false).Kind(); got != String {
		t.Errorf("non-numeric field kind = %s, want string", got)
	}
	if got := ParseField("n/a", true).Kind(); got != String {
		t.Errorf("unparseable numeric field kind = %s, want string", got)
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		vt   jsonparser.ValueType
		kind Kind
		str  string
	}{
		{"string", `New York`, jsonparser.String, String, "New York"},
		{"escaped string", `a\"b`, jsonparser.String, String, `a"b`},
		{"number", `40.7128`, jsonparser.Number, Number, "40.7128"},
		{"bool", `false`, jsonparser.Boolean, Bool, "false"},
		{"null", `null`, jsonparser.Null, Null, "null"},
		{"object", `{"a":1}`, jsonparser.Object, String, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.raw), tt.vt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Kind() != tt.kind {
				t.Errorf("kind = %s, want %s", v.Kind(), tt.kind)
			}
			if v.String() != tt.str {
				t.Errorf("String() = %q, want %q", v.String(), tt.str)
			}
		})
	}
}

func TestFromJSON_BadNumber(t *testing.T) {
	if _, err := FromJSON([]byte("4x"), jsonparser.Number); err == nil {
		t.Fatal("expected error for malformed number")
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{OfString(`say "hi"`), `"say \"hi\""`},
		{OfNumber(-0.1278), `-0.1278`},
		{OfBool(true), `true`},
		{OfNull(), `null`},
		{Value{}, `null`},
		{ParseText("2024-01-20"), `"2024-01-20"`},
	}
	for _, tt := range tests {
		b, err := tt.v.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != tt.want {
			t.Errorf("MarshalJSON(%s) = %s, want %s", tt.v.Kind(), b, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !OfNumber(5).Equal(OfNumber(5)) {
		t.Error("equal numbers")
	}
	if OfNumber(5).Equal(OfString("5")) {
		t.Error("number and string must differ")
	}
	if !ParseText("2024-01-20").Equal(ParseText("2024-01-20")) {
		t.Error("equal dates")
	}
}
