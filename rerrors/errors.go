// Package rerrors defines the stable error taxonomy raised by the wire,
// field, schema and codec layers of Renity.
//
// Every error carries a Kind (for programmatic matching via errors.As) and a
// numeric Code (stable across releases, suitable for wire-level diagnostics
// or metrics). Callers receive a single *Error per failed operation; nothing
// in this package retries or swallows an error internally.
package rerrors

import "fmt"

// Kind classifies a Renity error independent of its formatted message.
type Kind int

const (
	// KindInvalidMessage marks a buffer that does not begin with the
	// message identifier tag.
	KindInvalidMessage Kind = iota
	// KindTruncatedInput marks a read that ran past the end of the buffer.
	KindTruncatedInput
	// KindUnknownWire marks a tag byte whose wire bits match no registered
	// wire type.
	KindUnknownWire
	// KindInvalidUTF8 marks a LEN:string body that is not valid UTF-8.
	KindInvalidUTF8
	// KindTypeMismatch marks a value (or decoded identifier) whose runtime
	// type disagrees with the field/schema it is checked against.
	KindTypeMismatch
	// KindRequiredMessageField marks a required field missing from the
	// input mapping.
	KindRequiredMessageField
	// KindTooManyValues marks a list field whose element count exceeds its
	// declared sub_fields.
	KindTooManyValues
	// KindMissingPrimitive marks a field descriptor built without a
	// data_type.
	KindMissingPrimitive
	// KindSchemaTooWide marks a schema declaration with more than 8 user
	// fields.
	KindSchemaTooWide
	// KindReservedKey marks an attempt to declare the reserved "type" key.
	KindReservedKey
	// KindUnsupportedInputType marks dispatch input that is neither a
	// value mapping nor a byte buffer.
	KindUnsupportedInputType
)

// codes are the stable numeric identifiers for each Kind. Values mirror the
// exception codes carried by the reference implementation.
var codes = map[Kind]int{
	KindInvalidMessage:       3101,
	KindTruncatedInput:       3102,
	KindUnknownWire:          3103,
	KindInvalidUTF8:          3104,
	KindTypeMismatch:         3014,
	KindRequiredMessageField: 3013,
	KindTooManyValues:        3016,
	KindMissingPrimitive:     3017,
	KindSchemaTooWide:        3018,
	KindReservedKey:          3019,
	KindUnsupportedInputType: 3020,
}

func (k Kind) String() string {
	switch k {
	case KindInvalidMessage:
		return "InvalidMessage"
	case KindTruncatedInput:
		return "TruncatedInput"
	case KindUnknownWire:
		return "UnknownWire"
	case KindInvalidUTF8:
		return "InvalidUtf8"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindRequiredMessageField:
		return "RequiredMessageField"
	case KindTooManyValues:
		return "TooManyValues"
	case KindMissingPrimitive:
		return "MissingPrimitive"
	case KindSchemaTooWide:
		return "SchemaTooWide"
	case KindReservedKey:
		return "ReservedKey"
	case KindUnsupportedInputType:
		return "UnsupportedInputType"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every Renity package.
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("renity: %s (code %d): %s", e.Kind, e.Code, e.Message)
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    codes[kind],
		Message: fmt.Sprintf(format, args...),
	}
}

// Is allows errors.Is(err, rerrors.Sentinel(rerrors.KindTypeMismatch)) style
// matching against any *Error target, such as one built by Sentinel or New.
// Two *Error values compare equal for errors.Is purposes when their Kind
// matches.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel returns a zero-message *Error of the given kind, useful as an
// errors.Is comparison target: `errors.Is(err, rerrors.Sentinel(rerrors.KindTypeMismatch))`.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind, Code: codes[kind]}
}

// InvalidMessage reports a buffer whose first tag is not the message
// identifier (wire type TYPE).
func InvalidMessage(bits string) *Error {
	return New(KindInvalidMessage, "message must begin with the identifier tag 10010111, found %s", bits)
}

// TruncatedInput reports a read that required more bits than remained.
func TruncatedInput(context string) *Error {
	return New(KindTruncatedInput, "unexpected end of input while reading %s", context)
}

// UnknownWire reports a tag whose wire bits do not match a registered wire
// type/field combination.
func UnknownWire(wire, field int) *Error {
	return New(KindUnknownWire, "no decoder registered for wire=%d field=%d", wire, field)
}

// InvalidUTF8 reports a LEN:string body that failed UTF-8 validation.
func InvalidUTF8() *Error {
	return New(KindInvalidUTF8, "string body is not valid UTF-8")
}

// TypeMismatch reports any validator-level type disagreement.
func TypeMismatch(expected, found any) *Error {
	return New(KindTypeMismatch, "expected %v but found %v", expected, found)
}

// RequiredMessageField reports a required field absent from the input.
func RequiredMessageField(key string) *Error {
	return New(KindRequiredMessageField, "missing required field %q", key)
}

// TooManyValues reports a list whose element count exceeds its declared
// sub_fields.
func TooManyValues(expected, found int) *Error {
	return New(KindTooManyValues, "expected at most %d values but found %d", expected, found)
}

// MissingPrimitive reports a field descriptor declared without a data_type.
func MissingPrimitive(key string) *Error {
	return New(KindMissingPrimitive, "field %q is missing a data_type declaration", key)
}

// SchemaTooWide reports a schema with more than 8 user fields.
func SchemaTooWide(count int) *Error {
	return New(KindSchemaTooWide, "schema declares %d user fields, Renity supports at most 8", count)
}

// ReservedKey reports an attempt to redeclare the synthetic "type" field.
func ReservedKey() *Error {
	return New(KindReservedKey, "%q is a reserved key and is attached automatically", "type")
}

// UnsupportedInputType reports dispatch input that is neither a value
// mapping nor a byte buffer.
func UnsupportedInputType(v any) *Error {
	return New(KindUnsupportedInputType, "serializer does not exist for input type %T", v)
}
