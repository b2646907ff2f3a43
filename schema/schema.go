// Package schema binds named field descriptors into a message schema: it
// assigns each user field a bit position in the attribute bitmap, attaches
// the synthetic type-identifier field, and enforces the two declaration
// rules every schema must satisfy — at most 8 user fields, and "type" is
// reserved.
package schema

import (
	"github.com/DmitrievichLevin/Renity/field"
	"github.com/DmitrievichLevin/Renity/rerrors"
)

// maxFields is the widest attribute bitmap Renity supports: one bit per
// user field in a single byte.
const maxFields = 8

// Entry pairs a declaration key with the descriptor it binds to.
type Entry struct {
	Key   string
	Field *field.Descriptor
}

// F builds a schema Entry. It exists so schema declarations read as a flat
// list of (key, descriptor) pairs rather than nested struct literals.
func F(key string, d *field.Descriptor) Entry {
	return Entry{Key: key, Field: d}
}

// Schema is a bound, ready-to-use message schema: ordered user fields each
// carrying their assigned bit, plus the type field every message carries.
type Schema struct {
	Name      string
	Entries   []Entry
	TypeField *field.Descriptor

	bitForKey map[string]uint8
	keyForBit map[uint8]string
}

// New binds entries into a Schema named name. When allRequired is true,
// every user field is forced Required regardless of how it was declared.
// New rejects a "type" entry (reserved for the synthetic type field) and
// more than 8 user fields.
func New(name string, allRequired bool, entries ...Entry) (*Schema, error) {
	if len(entries) > maxFields {
		return nil, rerrors.SchemaTooWide(len(entries))
	}

	bitForKey := make(map[string]uint8, len(entries))
	keyForBit := make(map[uint8]string, len(entries))

	for i, e := range entries {
		if e.Key == "type" {
			return nil, rerrors.ReservedKey()
		}
		if allRequired {
			e.Field.Required = true
		}
		e.Field.Key = e.Key
		e.Field.Bit = uint8(1) << uint(i)
		bitForKey[e.Key] = e.Field.Bit
		keyForBit[e.Field.Bit] = e.Key
		entries[i] = e
	}

	typeField := field.NewTypeField(name)
	typeField.Key = "type"

	return &Schema{
		Name:      name,
		Entries:   entries,
		TypeField: typeField,
		bitForKey: bitForKey,
		keyForBit: keyForBit,
	}, nil
}

// BitForKey returns the attribute bit assigned to a user field key.
func (s *Schema) BitForKey(key string) (uint8, bool) {
	b, ok := s.bitForKey[key]
	return b, ok
}

// KeyForBit returns the user field key assigned to an attribute bit.
func (s *Schema) KeyForBit(bit uint8) (string, bool) {
	k, ok := s.keyForBit[bit]
	return k, ok
}

// Field returns the descriptor declared under key, including "type".
func (s *Schema) Field(key string) (*field.Descriptor, bool) {
	if key == "type" {
		return s.TypeField, true
	}
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Field, true
		}
	}
	return nil, false
}
