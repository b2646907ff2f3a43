package renity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/DmitrievichLevin/Renity/field"
	"github.com/DmitrievichLevin/Renity/rerrors"
	"github.com/DmitrievichLevin/Renity/schema"
)

func testMessageSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("TestMessage", true,
		schema.F("BoolField", field.NewBool()),
		schema.F("FloatField", field.NewFloat()),
		schema.F("IntField", field.NewInt()),
		schema.F("ListField", field.NewList([]*field.Descriptor{
			field.NewBool(), field.NewFloat(), field.NewInt(), field.NewString(),
		})),
		schema.F("StringField", field.NewString()),
	)
	require.NoError(t, err)
	return s
}

func validTestMessageBytes() []byte {
	return []byte("\x97\x88\x0bTestMessage" +
		"\x1f" +
		"\x98\x00" +
		"\x89\x40\x09\x1e\xb8\x51\xeb\x85\x1f" +
		"\x88\x90\x01" +
		"\x8a\x88\x1c" +
		"\x98\x01" +
		"\x89\x40\x09\x1e\xb8\x51\xeb\x85\x1f" +
		"\x88\x90\x01" +
		"\x92\x88\x0bHello World" +
		"\x92\x88\x0bHello World")
}

func invalidTestMessageBytes() []byte {
	return []byte("\x97\x88\x0cWrongMessage" +
		"\x1f" +
		"\x98\x00" +
		"\x89\x40\x09\x1e\xb8\x51\xeb\x85\x1f" +
		"\x88\x90\x01" +
		"\x8a\x88\x1c" +
		"\x98\x01" +
		"\x89\x40\x09\x1e\xb8\x51\xeb\x85\x1f" +
		"\x88\x90\x01" +
		"\x92\x88\x0bHello World" +
		"\x92\x88\x0bHello World")
}

func validTestMessageValues() map[string]any {
	return map[string]any{
		"IntField":    int32(144),
		"BoolField":   false,
		"ListField":   []any{true, 3.14, int32(144), "Hello World"},
		"FloatField":  3.14,
		"StringField": "Hello World",
		"type":        "TestMessage",
	}
}

func TestEncodeMatchesReferenceBytes(t *testing.T) {
	s := testMessageSchema(t)
	_, data, err := Encode(s, validTestMessageValues())
	require.NoError(t, err)
	require.Equal(t, validTestMessageBytes(), data)
}

func TestDecodeMatchesReferenceValues(t *testing.T) {
	s := testMessageSchema(t)
	got, err := Decode(s, validTestMessageBytes())
	require.NoError(t, err)

	want := validTestMessageValues()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded values mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := testMessageSchema(t)
	normalized, data, err := Encode(s, validTestMessageValues())
	require.NoError(t, err)

	got, err := Decode(s, data)
	require.NoError(t, err)

	if diff := cmp.Diff(normalized, got); diff != "" {
		t.Fatalf("round trip mismatch (-normalized +decoded):\n%s", diff)
	}
}

func TestDecodeRejectsWrongMessageType(t *testing.T) {
	s := testMessageSchema(t)
	_, err := Decode(s, invalidTestMessageBytes())
	require.Error(t, err)
	require.True(t, errors.Is(err, rerrors.Sentinel(rerrors.KindTypeMismatch)))
}

func TestDecodeRejectsNonIdentifierLead(t *testing.T) {
	s := testMessageSchema(t)
	_, err := Decode(s, []byte{0x88, 0x00})
	require.Error(t, err)
	require.True(t, errors.Is(err, rerrors.Sentinel(rerrors.KindInvalidMessage)))
}

func TestEncodeRejectsMissingRequiredField(t *testing.T) {
	s := testMessageSchema(t)
	values := validTestMessageValues()
	delete(values, "IntField")
	_, _, err := Encode(s, values)
	require.Error(t, err)
	require.True(t, errors.Is(err, rerrors.Sentinel(rerrors.KindRequiredMessageField)))
}

func TestEncodeRejectsTooManyListValues(t *testing.T) {
	s := testMessageSchema(t)
	values := validTestMessageValues()
	values["ListField"] = []any{true, 3.14, int32(144), "Hello World", int32(9)}
	_, _, err := Encode(s, values)
	require.Error(t, err)
	require.True(t, errors.Is(err, rerrors.Sentinel(rerrors.KindTooManyValues)))
}

func TestSerializeDispatchesOnInputType(t *testing.T) {
	s := testMessageSchema(t)

	_, data, err := Serialize(s, validTestMessageValues())
	require.NoError(t, err)
	require.Equal(t, validTestMessageBytes(), data)

	m, _, err := Serialize(s, validTestMessageBytes())
	require.NoError(t, err)
	require.Equal(t, "TestMessage", m["type"])
}

func TestSerializeRejectsUnsupportedInputType(t *testing.T) {
	s := testMessageSchema(t)
	_, _, err := Serialize(s, 42)
	require.Error(t, err)
	require.True(t, errors.Is(err, rerrors.Sentinel(rerrors.KindUnsupportedInputType)))
}

func TestCodecMarshalUnmarshalRoundTrip(t *testing.T) {
	s := testMessageSchema(t)
	c := NewCodec(s)

	data, err := c.Marshal(validTestMessageValues())
	require.NoError(t, err)
	require.Equal(t, validTestMessageBytes(), data)

	values, err := c.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "TestMessage", values["type"])
	require.Equal(t, int32(144), values["IntField"])
}

func TestSignedIntFieldUsesZigZagWire(t *testing.T) {
	s, err := schema.New("Signed", false, schema.F("V", field.NewInt()))
	require.NoError(t, err)

	_, data, err := Encode(s, map[string]any{"V": int32(-5)})
	require.NoError(t, err)
	// The record is the sint32 tag (field 2, wire VARINT) and zig-zag(-5) = 9.
	require.Equal(t, []byte{0x90, 0x09}, data[len(data)-2:])

	decoded, err := Decode(s, data)
	require.NoError(t, err)
	require.Equal(t, int32(-5), decoded["V"])
}
