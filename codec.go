// Package renity implements a schema-driven binary message codec: given a
// bound schema and either a value mapping or a byte buffer, it encodes to
// or decodes from Renity's tag-and-bitmap wire format.
//
// A schema declares at most 8 user fields (bool, int32, float64, string or
// a packed list of those) plus an automatic type-identifier field. Encoding
// walks the fields in declaration order, setting one bit per present field
// in an 8-bit attribute byte and appending one wire record per present
// field. Decoding reverses the process, validating the leading identifier
// against the schema's own name before reading any user field.
package renity

import (
	"fmt"

	"github.com/DmitrievichLevin/Renity/field"
	"github.com/DmitrievichLevin/Renity/rerrors"
	"github.com/DmitrievichLevin/Renity/schema"
	"github.com/DmitrievichLevin/Renity/wire"
)

// Codec binds a schema to the Marshal/Unmarshal/Serialize entry points.
type Codec struct {
	Schema *schema.Schema
}

// NewCodec returns a Codec bound to s.
func NewCodec(s *schema.Schema) *Codec {
	return &Codec{Schema: s}
}

// Marshal encodes values against the codec's schema and returns the wire
// bytes.
func (c *Codec) Marshal(values map[string]any) ([]byte, error) {
	_, data, err := Encode(c.Schema, values)
	return data, err
}

// Unmarshal decodes data against the codec's schema and returns the
// resulting value mapping.
func (c *Codec) Unmarshal(data []byte) (map[string]any, error) {
	return Decode(c.Schema, data)
}

// Serialize dispatches on the runtime type of input: a value mapping
// encodes, a byte buffer decodes. Any other input type is an error.
func (c *Codec) Serialize(input any) (map[string]any, []byte, error) {
	return Serialize(c.Schema, input)
}

// Encode validates values against s's fields, builds the normalized value
// mapping actually written (defaults applied, absent optional fields
// dropped) and returns it alongside the encoded bytes.
func Encode(s *schema.Schema, values map[string]any) (map[string]any, []byte, error) {
	normalized := make(map[string]any, len(s.Entries)+1)

	typeValue := values["type"]
	if typeValue == nil {
		typeValue = s.TypeField.Default
	}
	if err := s.TypeField.Validate(typeValue, s.Name); err != nil {
		return nil, nil, err
	}
	normalized["type"] = typeValue

	body := wire.NewBitWriter()
	var attrs uint8

	for _, e := range s.Entries {
		v, present := values[e.Key]
		if !present {
			v = nil
		}
		if v == nil {
			if e.Field.Default != nil {
				v = e.Field.Default
			} else {
				if err := e.Field.Validate(nil, s.Name); err != nil {
					return nil, nil, err
				}
				continue
			}
		}
		if err := e.Field.Validate(v, s.Name); err != nil {
			return nil, nil, err
		}
		if err := encodeField(body, e.Field, v); err != nil {
			return nil, nil, err
		}
		attrs |= e.Field.Bit
		normalized[e.Key] = v
	}

	w := wire.NewBitWriter()
	if err := encodeField(w, s.TypeField, typeValue); err != nil {
		return nil, nil, err
	}
	w.WriteBits(uint64(attrs), 8)
	w.WriteBytes(body.Seal())

	return normalized, w.Seal(), nil
}

// Decode reads a Renity message encoded against s and returns the value
// mapping it carries, keyed by field name plus "type".
func Decode(s *schema.Schema, data []byte) (map[string]any, error) {
	r := wire.NewBitReader(data)

	tagPeek, err := r.PeekBits(8)
	if err != nil {
		return nil, rerrors.TruncatedInput("message identifier")
	}
	_, wireType, ok := wire.ParseTag(byte(tagPeek))
	if !ok || wireType != wire.Identifier {
		return nil, rerrors.InvalidMessage(fmt.Sprintf("%08b", byte(tagPeek)))
	}

	typeValue, err := decodeField(r, s.TypeField)
	if err != nil {
		return nil, err
	}
	if err := s.TypeField.Validate(typeValue, s.Name); err != nil {
		return nil, err
	}

	result := map[string]any{"type": typeValue}

	attrsVal, err := r.ReadBits(8)
	if err != nil {
		return nil, rerrors.TruncatedInput("attribute bitmap")
	}
	attrs := uint8(attrsVal)

	for _, e := range s.Entries {
		if attrs&e.Field.Bit == 0 {
			continue
		}
		v, err := decodeField(r, e.Field)
		if err != nil {
			return nil, err
		}
		result[e.Key] = v
	}

	return result, nil
}

// Serialize dispatches on the runtime type of input: a map encodes, a
// byte slice decodes. Any other type is rejected rather than silently
// coerced.
func Serialize(s *schema.Schema, input any) (map[string]any, []byte, error) {
	switch v := input.(type) {
	case map[string]any:
		return Encode(s, v)
	case []byte:
		m, err := Decode(s, v)
		if err != nil {
			return nil, nil, err
		}
		return m, v, nil
	default:
		return nil, nil, rerrors.UnsupportedInputType(v)
	}
}

// encodeField writes one field's complete wire record — tag plus payload —
// into w. For List fields it recurses into a fresh BitWriter to build the
// packed body before framing it under the outer PACKED/LEN tag.
func encodeField(w *wire.BitWriter, d *field.Descriptor, value any) error {
	switch d.Kind {
	case field.Bool:
		v, _ := value.(bool)
		w.WriteBits(uint64(wire.MakeTag(wire.FieldBool, wire.Varint)), 8)
		wire.NewVarintEncoder(w).EncodeBool(v)

	case field.Int:
		v, _ := value.(int32)
		wf := field.SelectIntWireField(v)
		w.WriteBits(uint64(wire.MakeTag(wf, wire.Varint)), 8)
		ve := wire.NewVarintEncoder(w)
		if wf == wire.FieldSint32 {
			ve.EncodeZigZag32(v)
		} else {
			ve.EncodeUint32(uint32(v))
		}

	case field.Float:
		v, _ := value.(float64)
		w.WriteBits(uint64(wire.MakeTag(wire.FieldFixed64, wire.I64)), 8)
		wire.NewFixedEncoder(w).EncodeFloat64(v)

	case field.String:
		v, _ := value.(string)
		wire.NewBytesEncoder(w).EncodeString(wire.FieldString, wire.Len, v)

	case field.Type:
		v, _ := value.(string)
		wire.NewBytesEncoder(w).EncodeString(wire.FieldString, wire.Identifier, v)

	case field.List:
		v, _ := value.([]any)
		body := wire.NewBitWriter()
		used := make([]bool, len(d.SubFields))
		for i, elem := range v {
			var sub *field.Descriptor
			if d.Sorted {
				if i >= len(d.SubFields) {
					return rerrors.TooManyValues(len(d.SubFields), len(v))
				}
				sub = d.SubFields[i]
			} else {
				idx, ok := pickSubField(d.SubFields, used, elem)
				if !ok {
					return rerrors.TypeMismatch("one of the declared sub-field types", elem)
				}
				sub = d.SubFields[idx]
				used[idx] = true
			}
			if err := encodeField(body, sub, elem); err != nil {
				return err
			}
		}
		wire.NewBytesEncoder(w).EncodePacked(wire.FieldPacked, body.Seal())

	default:
		return rerrors.MissingPrimitive(d.Key)
	}
	return nil
}

// pickSubField finds the first not-yet-used sub-field descriptor whose Kind
// matches elem's Go type, mirroring the multiset matching already
// performed by field.UnorderedValidator.
func pickSubField(subFields []*field.Descriptor, used []bool, elem any) (int, bool) {
	for i, sub := range subFields {
		if used[i] {
			continue
		}
		if (field.IncorrectFieldType{}).Verify(sub, elem) == nil {
			return i, true
		}
	}
	return -1, false
}

// decodeField reads one field's complete wire record from r, dispatching
// on d.Kind. The tag byte is consumed and checked against the (field,
// wire-type) pair d.Kind expects.
func decodeField(r *wire.BitReader, d *field.Descriptor) (any, error) {
	tagByte, err := r.ReadBits(8)
	if err != nil {
		return nil, rerrors.TruncatedInput("field tag")
	}
	f, wt, ok := wire.ParseTag(byte(tagByte))
	if !ok {
		return nil, rerrors.UnknownWire(int(wt), int(f))
	}

	switch d.Kind {
	case field.Bool:
		if f != wire.FieldBool || wt != wire.Varint {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		return wire.NewVarintDecoder(r).DecodeBool()

	case field.Int:
		if wt != wire.Varint || (f != wire.FieldInt32 && f != wire.FieldSint32) {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		vd := wire.NewVarintDecoder(r)
		if f == wire.FieldSint32 {
			return vd.DecodeZigZag32()
		}
		v, err := vd.DecodeUint32()
		if err != nil {
			return nil, err
		}
		return int32(v), nil

	case field.Float:
		if f != wire.FieldFixed64 || wt != wire.I64 {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		return wire.NewFixedDecoder(r).DecodeFloat64()

	case field.String:
		if f != wire.FieldString || wt != wire.Len {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		return wire.NewBytesDecoder(r).DecodeString()

	case field.Type:
		if f != wire.FieldString || wt != wire.Identifier {
			return nil, rerrors.InvalidMessage(fmt.Sprintf("%08b", tagByte))
		}
		return wire.NewBytesDecoder(r).DecodeString()

	case field.List:
		if f != wire.FieldPacked || wt != wire.Len {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		body, err := wire.NewBytesDecoder(r).DecodeBody()
		if err != nil {
			return nil, err
		}
		return decodeListBody(body, d)
	}
	return nil, rerrors.MissingPrimitive(d.Key)
}

// decodeListBody decodes a packed list's concatenated element records.
func decodeListBody(body []byte, d *field.Descriptor) ([]any, error) {
	br := wire.NewBitReader(body)
	out := make([]any, 0, len(d.SubFields))

	if d.Sorted {
		for i := 0; br.Remaining() > 0; i++ {
			if i >= len(d.SubFields) {
				return nil, rerrors.TooManyValues(len(d.SubFields), i+1)
			}
			elem, err := decodeField(br, d.SubFields[i])
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}

	used := make([]bool, len(d.SubFields))
	for br.Remaining() > 0 {
		tagPeek, err := br.PeekBits(8)
		if err != nil {
			return nil, rerrors.TruncatedInput("list element tag")
		}
		f, wt, ok := wire.ParseTag(byte(tagPeek))
		if !ok {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		kind, ok := kindForTag(f, wt)
		if !ok {
			return nil, rerrors.UnknownWire(int(wt), int(f))
		}
		idx := -1
		for i, sub := range d.SubFields {
			if used[i] || sub.Kind != kind {
				continue
			}
			idx = i
			break
		}
		if idx == -1 {
			return nil, rerrors.TypeMismatch("one of the declared sub-field types", kind.String())
		}
		used[idx] = true
		elem, err := decodeField(br, d.SubFields[idx])
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	return out, nil
}

// kindForTag maps a (wire field, wire type) pair back onto the
// field.Kind it encodes, for list elements whose position is not known
// ahead of decode.
func kindForTag(f wire.Field, wt wire.Type) (field.Kind, bool) {
	switch wt {
	case wire.Varint:
		switch f {
		case wire.FieldInt32, wire.FieldSint32:
			return field.Int, true
		case wire.FieldBool:
			return field.Bool, true
		}
	case wire.I64:
		if f == wire.FieldFixed64 {
			return field.Float, true
		}
	case wire.Len:
		switch f {
		case wire.FieldString:
			return field.String, true
		case wire.FieldPacked:
			return field.List, true
		}
	}
	return 0, false
}
