package wire

import "testing"

func TestMakeTagMatchesFixture(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		wire  Type
		want  byte
	}{
		{"identifier", FieldString, Identifier, 0x97},
		{"length/int32", FieldInt32, Varint, 0x88},
		{"float", FieldFixed64, I64, 0x89},
		{"bool", FieldBool, Varint, 0x98},
		{"packed", FieldPacked, Len, 0x8a},
		{"string", FieldString, Len, 0x92},
	}
	for _, c := range cases {
		if got := MakeTag(c.field, c.wire); got != c.want {
			t.Errorf("%s: MakeTag(%d,%d) = %#x, want %#x", c.name, c.field, c.wire, got, c.want)
		}
	}
}

func TestParseTagRoundTrip(t *testing.T) {
	tag := MakeTag(FieldPacked, Len)
	field, wireType, ok := ParseTag(tag)
	if !ok {
		t.Fatal("ParseTag reported !ok for a tag it produced itself")
	}
	if field != FieldPacked || wireType != Len {
		t.Fatalf("ParseTag(%#x) = field=%d wire=%d, want field=%d wire=%d", tag, field, wireType, FieldPacked, Len)
	}
}

func TestParseTagRejectsMissingContinuation(t *testing.T) {
	if _, _, ok := ParseTag(0x17); ok {
		t.Fatal("ParseTag accepted a byte with the continuation bit unset")
	}
}
