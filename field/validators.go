package field

import "github.com/DmitrievichLevin/Renity/rerrors"

// Validator checks one constraint of a Descriptor against a candidate
// value. It returns nil when the constraint holds.
type Validator interface {
	Verify(d *Descriptor, value any) error
}

// Chain runs a fixed, ordered sequence of Validators against a value,
// short-circuiting on the first failure — the Go equivalent of the
// reference implementation's chain-of-responsibility, expressed as a slice
// instead of a linked list of dynamically dispatched nodes.
type Chain []Validator

// Verify runs every validator in order, returning the first error.
func (c Chain) Verify(d *Descriptor, value any) error {
	for _, v := range c {
		if err := v.Verify(d, value); err != nil {
			return err
		}
	}
	return nil
}

// BuildChain returns the validator chain for d. schemaName is only
// consulted for the synthetic Type field.
func BuildChain(d *Descriptor, schemaName string) Chain {
	chain := Chain{RequiredField{}, IncorrectFieldType{}}
	if d.Kind == List {
		chain = append(chain, SubFieldValidator{}, OverflowValidator{}, SortedValidator{}, UnorderedValidator{})
	}
	if d.Kind == Type {
		chain = append(chain, MessageTypeValidator{SchemaName: schemaName})
	}
	return chain
}

// Validate runs value through d's validator chain.
func (d *Descriptor) Validate(value any, schemaName string) error {
	return BuildChain(d, schemaName).Verify(d, value)
}

// RequiredField rejects a nil value on a Required field.
type RequiredField struct{}

func (RequiredField) Verify(d *Descriptor, value any) error {
	if value == nil && d.Required {
		return rerrors.RequiredMessageField(d.Key)
	}
	return nil
}

// IncorrectFieldType rejects a value whose Go type does not match the
// descriptor's Kind. A nil value is left to RequiredField/defaulting.
type IncorrectFieldType struct{}

func (IncorrectFieldType) Verify(d *Descriptor, value any) error {
	if value == nil {
		return nil
	}
	switch d.Kind {
	case Bool:
		if _, ok := value.(bool); !ok {
			return rerrors.TypeMismatch("bool", value)
		}
	case Int:
		if _, ok := value.(int32); !ok {
			return rerrors.TypeMismatch("int32", value)
		}
	case Float:
		if _, ok := value.(float64); !ok {
			return rerrors.TypeMismatch("float64", value)
		}
	case String, Type:
		if _, ok := value.(string); !ok {
			return rerrors.TypeMismatch("string", value)
		}
	case List:
		if _, ok := value.([]any); !ok {
			return rerrors.TypeMismatch("list", value)
		}
	}
	return nil
}

// SubFieldValidator rejects a list descriptor declared without any
// sub_fields — there is nothing to match elements against.
type SubFieldValidator struct{}

func (SubFieldValidator) Verify(d *Descriptor, value any) error {
	if d.Kind != List {
		return nil
	}
	if len(d.SubFields) == 0 {
		return rerrors.TypeMismatch("a non-empty sub_fields declaration", d.Key)
	}
	return nil
}

// OverflowValidator rejects a list with more elements than declared
// sub_fields.
type OverflowValidator struct{}

func (OverflowValidator) Verify(d *Descriptor, value any) error {
	if d.Kind != List || value == nil {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	if len(list) > len(d.SubFields) {
		return rerrors.TooManyValues(len(d.SubFields), len(list))
	}
	return nil
}

// SortedValidator, for a SortedList field, checks each element's type
// against the sub-field declared at the same position.
type SortedValidator struct{}

func (SortedValidator) Verify(d *Descriptor, value any) error {
	if d.Kind != List || !d.Sorted || value == nil {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	for i, elem := range list {
		if i >= len(d.SubFields) {
			break
		}
		if err := (IncorrectFieldType{}).Verify(d.SubFields[i], elem); err != nil {
			return err
		}
	}
	return nil
}

// UnorderedValidator, for a non-sorted list field, matches each element
// against one of the declared sub_fields by type, consuming that sub-field
// so it cannot match a second element.
type UnorderedValidator struct{}

func (UnorderedValidator) Verify(d *Descriptor, value any) error {
	if d.Kind != List || d.Sorted || value == nil {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	available := make([]*Descriptor, len(d.SubFields))
	copy(available, d.SubFields)
	for _, elem := range list {
		matched := -1
		for i, sub := range available {
			if sub == nil {
				continue
			}
			if (IncorrectFieldType{}).Verify(sub, elem) == nil {
				matched = i
				break
			}
		}
		if matched == -1 {
			return rerrors.TypeMismatch("one of the declared sub-field types", elem)
		}
		available[matched] = nil
	}
	return nil
}

// MessageTypeValidator checks the synthetic type field's value against the
// schema's own name.
type MessageTypeValidator struct {
	SchemaName string
}

func (v MessageTypeValidator) Verify(d *Descriptor, value any) error {
	if d.Kind != Type {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return rerrors.TypeMismatch("string", value)
	}
	if s != v.SchemaName {
		return rerrors.TypeMismatch(v.SchemaName, s)
	}
	return nil
}
