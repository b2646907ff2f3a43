package wire

import (
	"encoding/binary"
	"math"
)

// FixedEncoder writes the I64-wire payload: an IEEE-754 binary64 value in
// big-endian byte order, unlike standard protobuf fixed64, which is
// little-endian.
type FixedEncoder struct {
	w *BitWriter
}

// NewFixedEncoder returns a FixedEncoder writing into w.
func NewFixedEncoder(w *BitWriter) *FixedEncoder {
	return &FixedEncoder{w: w}
}

// EncodeFloat64 appends v as 8 big-endian bytes.
func (e *FixedEncoder) EncodeFloat64(v float64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	e.w.WriteBytes(buf[:])
}

// FixedDecoder consumes I64-wire payloads from a BitReader.
type FixedDecoder struct {
	r *BitReader
}

// NewFixedDecoder returns a FixedDecoder reading from r.
func NewFixedDecoder(r *BitReader) *FixedDecoder {
	return &FixedDecoder{r: r}
}

// DecodeFloat64 consumes 8 big-endian bytes and returns the float64 they
// encode.
func (d *FixedDecoder) DecodeFloat64() (float64, error) {
	b, err := d.r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}
