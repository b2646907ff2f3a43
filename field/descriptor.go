// Package field declares the field descriptors a schema is built from —
// BoolField, IntField, FloatField, StringField and ListField — and the
// validator chain each one runs a value through before it is handed to the
// encoder.
package field

import "github.com/DmitrievichLevin/Renity/wire"

// Kind identifies a descriptor's data shape, independent of how it is wired.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
	String
	List
	// Type is the synthetic field every schema attaches automatically; it
	// is never declared directly by a caller.
	Type
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case List:
		return "List"
	case Type:
		return "Type"
	default:
		return "Unknown"
	}
}

// Descriptor is a single field's declaration: its shape, its wire type, and
// the constraints its value must satisfy. A Schema binds a Key and Bit to
// each Descriptor when it is declared; the fields are zero until then.
type Descriptor struct {
	Key   string
	Bit   uint8
	Kind  Kind
	Wire  wire.Type

	Required  bool
	Default   any
	Sorted    bool
	SubFields []*Descriptor
}

// Option configures a Descriptor at construction time.
type Option func(*Descriptor)

// Required marks the field as mandatory: absent from an input mapping and
// without a Default, it is a RequiredMessageField error rather than silently
// skipped.
func Required() Option {
	return func(d *Descriptor) { d.Required = true }
}

// Default supplies the value used when the field is absent from an input
// mapping, whether or not the field is Required.
func Default(v any) Option {
	return func(d *Descriptor) { d.Default = v }
}

// SortedList requires a ListField's elements to appear in exactly the order
// its sub_fields were declared. Without it, elements may appear in any
// order and are matched against sub_fields by type, each sub-field
// consumed at most once.
func SortedList() Option {
	return func(d *Descriptor) { d.Sorted = true }
}

func newDescriptor(kind Kind, w wire.Type, opts []Option) *Descriptor {
	d := &Descriptor{Kind: kind, Wire: w}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewBool declares a boolean field.
func NewBool(opts ...Option) *Descriptor {
	return newDescriptor(Bool, wire.Varint, opts)
}

// NewInt declares a signed 32-bit integer field. Its wire field (plain
// varint or zig-zag) is chosen per value at encode time — see
// SelectIntWireField — rather than fixed at declaration time.
func NewInt(opts ...Option) *Descriptor {
	return newDescriptor(Int, wire.Varint, opts)
}

// NewFloat declares a binary64 floating point field.
func NewFloat(opts ...Option) *Descriptor {
	return newDescriptor(Float, wire.I64, opts)
}

// NewString declares a UTF-8 string field.
func NewString(opts ...Option) *Descriptor {
	return newDescriptor(String, wire.Len, opts)
}

// NewList declares a packed list field. subFields enumerates the field
// shapes the list may carry; an element must match one of them (or, when
// SortedList is given, the sub-field at its own position).
func NewList(subFields []*Descriptor, opts ...Option) *Descriptor {
	d := newDescriptor(List, wire.Len, opts)
	d.SubFields = subFields
	return d
}

// NewTypeField builds the synthetic type-identifier field every schema
// attaches to itself automatically. Its default is the schema name and it
// is always required.
func NewTypeField(schemaName string) *Descriptor {
	return &Descriptor{
		Kind:     Type,
		Wire:     wire.Identifier,
		Default:  schemaName,
		Required: true,
	}
}

// SelectIntWireField reports which Varint sub-field an IntField value
// should be encoded under: a plain int32 varint for non-negative values, a
// zig-zag sint32 for negative ones. It is a pure function of the value —
// nothing about the descriptor changes when a different value is encoded.
func SelectIntWireField(v int32) wire.Field {
	if v >= 0 {
		return wire.FieldInt32
	}
	return wire.FieldSint32
}
