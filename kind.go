package datatable

import (
	"fmt"
	"strings"
)

// Kind selects the control a field renders as.
type Kind uint8

const (
	Number  Kind = iota + 1 // text entry, read as a locale-parsed integer
	Boolean                 // toggle
	Enum                    // option list
	Text                    // text entry, read as a trimmed string
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Enum:
		return "enum"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name (case-insensitive) back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "number":
		return Number, nil
	case "boolean", "bool":
		return Boolean, nil
	case "enum":
		return Enum, nil
	case "text":
		return Text, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFieldType, s)
}

// FieldType is the client-facing type of a field: a kind plus, for Enum,
// the options in display order.
type FieldType struct {
	Kind    Kind
	Options []string
}

// NumberType is the integer field type.
var NumberType = FieldType{Kind: Number}

// BooleanType is the checkbox field type.
var BooleanType = FieldType{Kind: Boolean}

// EnumOf creates an option-list field type.
func EnumOf(options ...string) FieldType {
	return FieldType{Kind: Enum, Options: options}
}

// FieldDescriptor is one resolved schema entry.
type FieldDescriptor struct {
	Name     string
	Kind     Kind
	Default  any
	Options  []string
	OnChange ChangeFunc

	Placeholder string // text-entry kinds only
	Help        string // shown as a hint while the field has focus
}
