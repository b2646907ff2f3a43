package field

import (
	"errors"
	"testing"

	"github.com/DmitrievichLevin/Renity/rerrors"
)

func TestRequiredFieldRejectsNil(t *testing.T) {
	d := NewInt(Required())
	d.Key = "IntField"
	if err := d.Validate(nil, ""); err == nil {
		t.Fatal("expected RequiredMessageField error")
	} else if !errors.Is(err, rerrors.Sentinel(rerrors.KindRequiredMessageField)) {
		t.Fatalf("got %v, want KindRequiredMessageField", err)
	}
}

func TestIncorrectFieldTypeMismatch(t *testing.T) {
	d := NewInt()
	if err := d.Validate(3.14, ""); err == nil {
		t.Fatal("expected TypeMismatch for float value on an Int field")
	} else if !errors.Is(err, rerrors.Sentinel(rerrors.KindTypeMismatch)) {
		t.Fatalf("got %v, want KindTypeMismatch", err)
	}
}

func TestListOverflow(t *testing.T) {
	d := NewList([]*Descriptor{NewInt(), NewInt()})
	err := d.Validate([]any{int32(1), int32(2), int32(3)}, "")
	if err == nil {
		t.Fatal("expected TooManyValues")
	}
	if !errors.Is(err, rerrors.Sentinel(rerrors.KindTooManyValues)) {
		t.Fatalf("got %v, want KindTooManyValues", err)
	}
}

func TestListUnorderedAcceptsAnyOrder(t *testing.T) {
	d := NewList([]*Descriptor{NewBool(), NewFloat(), NewInt(), NewString()})
	value := []any{"Hello World", int32(144), 3.14, true}
	if err := d.Validate(value, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListUnorderedRejectsUnmatchedElement(t *testing.T) {
	d := NewList([]*Descriptor{NewInt(), NewInt()})
	if err := d.Validate([]any{int32(1), "not an int"}, ""); err == nil {
		t.Fatal("expected TypeMismatch for an element matching no remaining sub-field")
	}
}

func TestListSortedRequiresPositionalMatch(t *testing.T) {
	d := NewList([]*Descriptor{NewBool(), NewFloat()}, SortedList())
	if err := d.Validate([]any{true, 3.14}, ""); err != nil {
		t.Fatalf("unexpected error for matching positional order: %v", err)
	}
	if err := d.Validate([]any{3.14, true}, ""); err == nil {
		t.Fatal("expected TypeMismatch for reversed positional order under SortedList")
	}
}

func TestMessageTypeValidator(t *testing.T) {
	d := NewTypeField("TestMessage")
	if err := d.Validate("TestMessage", "TestMessage"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Validate("WrongMessage", "TestMessage"); err == nil {
		t.Fatal("expected TypeMismatch for wrong schema name")
	}
}

func TestSelectIntWireField(t *testing.T) {
	if got := SelectIntWireField(144); got == SelectIntWireField(-144) {
		t.Fatal("SelectIntWireField must differ between positive and negative values")
	}
}
