package wire

import (
	"unicode/utf8"

	"github.com/DmitrievichLevin/Renity/rerrors"
)

// BytesEncoder writes LEN-wire records: a tag, a length record (itself a
// full int32 wire record, see VarintEncoder.EncodeLengthRecord) and a raw
// body. Both UTF-8 strings and packed lists share this shape; only the body
// contents differ.
type BytesEncoder struct {
	w *BitWriter
	v *VarintEncoder
}

// NewBytesEncoder returns a BytesEncoder writing into w.
func NewBytesEncoder(w *BitWriter) *BytesEncoder {
	return &BytesEncoder{w: w, v: NewVarintEncoder(w)}
}

// EncodeString appends a tagged, length-prefixed UTF-8 string under the
// given wire field (FieldString under Len, or Identifier for the message
// type record).
func (e *BytesEncoder) EncodeString(field Field, wireType Type, s string) {
	e.w.WriteBits(uint64(MakeTag(field, wireType)), 8)
	body := []byte(s)
	e.v.EncodeLengthRecord(len(body))
	e.w.WriteBytes(body)
}

// EncodePacked appends a tagged, length-prefixed run of pre-encoded
// sub-field records under FieldPacked/Len.
func (e *BytesEncoder) EncodePacked(field Field, body []byte) {
	e.w.WriteBits(uint64(MakeTag(field, Len)), 8)
	e.v.EncodeLengthRecord(len(body))
	e.w.WriteBytes(body)
}

// BytesDecoder consumes LEN-wire bodies from a BitReader. The caller is
// responsible for reading and dispatching on the leading tag; BytesDecoder
// starts at the length record.
type BytesDecoder struct {
	r *BitReader
	v *VarintDecoder
}

// NewBytesDecoder returns a BytesDecoder reading from r.
func NewBytesDecoder(r *BitReader) *BytesDecoder {
	return &BytesDecoder{r: r, v: NewVarintDecoder(r)}
}

// DecodeBody consumes a length record and the raw body bytes it describes.
func (d *BytesDecoder) DecodeBody() ([]byte, error) {
	n, err := d.v.DecodeLengthRecord()
	if err != nil {
		return nil, err
	}
	return d.r.ReadBytes(n)
}

// DecodeString consumes a length-prefixed body and validates it as UTF-8.
func (d *BytesDecoder) DecodeString() (string, error) {
	b, err := d.DecodeBody()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", rerrors.InvalidUTF8()
	}
	return string(b), nil
}
