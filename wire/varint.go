package wire

import (
	"github.com/DmitrievichLevin/Renity/rerrors"
	"google.golang.org/protobuf/encoding/protowire"
)

// VarintEncoder writes the Varint-wire payloads (int32, sint32, bool) that
// follow a tag byte, plus the length record that precedes every LEN body.
// It wraps a BitWriter the way every sub-encoder in this package does: the
// caller owns the BitWriter and threads it through each field's encoder.
type VarintEncoder struct {
	w *BitWriter
}

// NewVarintEncoder returns a VarintEncoder writing into w.
func NewVarintEncoder(w *BitWriter) *VarintEncoder {
	return &VarintEncoder{w: w}
}

// EncodeUint32 appends v as a standard LEB128 varint: seven payload bits per
// byte, low-order group first, continuation bit set on every byte but the
// last.
func (e *VarintEncoder) EncodeUint32(v uint32) {
	e.w.WriteBytes(protowire.AppendVarint(nil, uint64(v)))
}

// zigzagEncode32 maps a signed 32-bit value onto an unsigned one so that
// small magnitudes (positive or negative) stay small after varint encoding.
func zigzagEncode32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// zigzagDecode32 reverses zigzagEncode32.
func zigzagDecode32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag32 appends v as a zig-zag varint (SINT32).
func (e *VarintEncoder) EncodeZigZag32(v int32) {
	e.EncodeUint32(zigzagEncode32(v))
}

// EncodeBool appends v as a single-byte varint (0 or 1).
func (e *VarintEncoder) EncodeBool(v bool) {
	if v {
		e.EncodeUint32(1)
		return
	}
	e.EncodeUint32(0)
}

// EncodeLengthRecord appends a full int32 wire record — tag plus varint
// payload — carrying the byte length of the LEN body that follows. Renity's
// length prefix is not a bare varint; it is framed exactly like any other
// int32 field so a decoder can recognize it with the same tag parser used
// everywhere else.
func (e *VarintEncoder) EncodeLengthRecord(n int) {
	e.w.WriteBits(uint64(lengthTag), 8)
	e.EncodeUint32(uint32(n))
}

// VarintDecoder consumes Varint-wire payloads and length records from a
// BitReader.
type VarintDecoder struct {
	r *BitReader
}

// NewVarintDecoder returns a VarintDecoder reading from r.
func NewVarintDecoder(r *BitReader) *VarintDecoder {
	return &VarintDecoder{r: r}
}

// DecodeUint32 consumes a LEB128 varint and returns its value. The reader's
// bit cursor must be byte-aligned; every Renity record starts on a byte
// boundary.
func (d *VarintDecoder) DecodeUint32() (uint32, error) {
	if d.r.pos%8 != 0 {
		return 0, truncated("varint")
	}
	byteStart := d.r.pos / 8
	if byteStart >= len(d.r.buf) {
		return 0, truncated("varint")
	}
	v, n := protowire.ConsumeVarint(d.r.buf[byteStart:])
	if n < 0 {
		return 0, truncated("varint")
	}
	d.r.pos += n * 8
	return uint32(v), nil
}

// DecodeZigZag32 consumes a zig-zag varint and returns the signed value.
func (d *VarintDecoder) DecodeZigZag32() (int32, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(v), nil
}

// DecodeBool consumes a single-byte varint and reports whether it is
// nonzero.
func (d *VarintDecoder) DecodeBool() (bool, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// DecodeLengthRecord consumes a tag plus varint and returns the length it
// carries. It rejects a tag that is not the canonical int32/varint length
// tag.
func (d *VarintDecoder) DecodeLengthRecord() (int, error) {
	tag, err := d.r.ReadBits(8)
	if err != nil {
		return 0, truncated("length record tag")
	}
	field, wireType, ok := ParseTag(byte(tag))
	if !ok || field != FieldInt32 || wireType != Varint {
		return 0, unknownWireError(field, wireType)
	}
	v, err := d.DecodeUint32()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// VarintSize returns the number of bytes EncodeUint32(v) would write.
func VarintSize(v uint32) int {
	return protowire.SizeVarint(uint64(v))
}

func truncated(context string) error {
	return rerrors.TruncatedInput(context)
}
