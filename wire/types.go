// Package wire implements the low-level bit-packed encoding that underlies
// every Renity message: the tag byte, the continuation-bit varint, the
// IEEE-754 fixed64 float and the bit reader/writer they are built on.
//
// Nothing in this package knows about schemas or field descriptors; it only
// knows how to turn primitive values into bits and back.
package wire

import "github.com/DmitrievichLevin/Renity/rerrors"

// Type is the 3-bit wire type carried in the low bits of a tag byte.
type Type uint8

const (
	// Varint carries int32, sint32 (zig-zag) and bool payloads.
	Varint Type = 0
	// I64 carries an IEEE-754 binary64 payload (FloatField).
	I64 Type = 1
	// Len carries a length record (see lengthTag) followed by that many
	// bytes: packed lists and UTF-8 strings.
	Len Type = 2
	// Identifier is the synthetic wire type reserved for the message's
	// leading type-identifier record. It is never used by a user field.
	Identifier Type = 7
)

func (t Type) String() string {
	switch t {
	case Varint:
		return "VARINT"
	case I64:
		return "I64"
	case Len:
		return "LEN"
	case Identifier:
		return "TYPE"
	default:
		return "UNKNOWN"
	}
}

// Field is the wire-field sub-kind, whose meaning is scoped to the Type it
// appears under (e.g. Field 1 means int32 under Varint but fixed64 under
// I64).
type Field uint8

const (
	// FieldInt32 (under Varint): a plain unsigned varint.
	FieldInt32 Field = 1
	// FieldSint32 (under Varint): a zig-zag encoded signed varint.
	FieldSint32 Field = 2
	// FieldBool (under Varint): a single 0/1 byte.
	FieldBool Field = 3
	// FieldFixed64 (under I64): an IEEE-754 binary64.
	FieldFixed64 Field = 1
	// FieldPacked (under Len): a length-delimited run of sub-field
	// records.
	FieldPacked Field = 1
	// FieldString (under Len or Identifier): a length-delimited UTF-8
	// string.
	FieldString Field = 2
)

// tagContinuation is the MSB that marks a byte as a tag rather than the
// interior of a varint group.
const tagContinuation = 0x80

// MakeTag packs a wire field and wire type into the canonical tag byte:
// [continuation=1][field:4][wire:3].
func MakeTag(field Field, wireType Type) byte {
	return tagContinuation | (byte(field)&0x0F)<<3 | (byte(wireType) & 0x07)
}

// ParseTag splits a tag byte back into its wire field and wire type. ok is
// false when the continuation bit is unset, meaning the byte is not a valid
// tag.
func ParseTag(tag byte) (field Field, wireType Type, ok bool) {
	if tag&tagContinuation == 0 {
		return 0, 0, false
	}
	field = Field((tag >> 3) & 0x0F)
	wireType = Type(tag & 0x07)
	return field, wireType, true
}

// lengthTag is the tag used to frame the byte-length that precedes every
// LEN:string and LEN:packed body. Renity reuses the int32 wire encoding for
// this purpose rather than a bare varint, so a length prefix is itself a
// complete (tag || varint) record.
var lengthTag = MakeTag(FieldInt32, Varint)

// unknownWireError reports that a tag's (field, wire) pair does not map to
// any decoder Renity knows about.
func unknownWireError(field Field, wireType Type) error {
	return rerrors.UnknownWire(int(wireType), int(field))
}
