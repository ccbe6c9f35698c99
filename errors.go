package datatable

import (
	"errors"
	"fmt"
)

// Construction-time errors. Returned by Resolve and Registry.Create before
// anything is mounted.
var (
	ErrMissingContainerID   = errors.New("missing container id")
	ErrInvalidDimensions    = errors.New("row and column counts must be at least 1")
	ErrEmptySchema          = errors.New("field name list is empty")
	ErrMissingFieldTypes    = errors.New("field type list is empty")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrMismatchedSchema     = errors.New("field names and field types differ in length")
	ErrDuplicateFieldName   = errors.New("duplicate field name")
	ErrInvalidDefault       = errors.New("invalid default value")
	ErrContainerNotFound    = errors.New("container not found")
)

// Call-time errors. None of these leave the grid modified.
var (
	ErrOutOfRange      = errors.New("cell address out of range")
	ErrNotImplemented  = errors.New("not implemented")
	ErrUnknownInstance = errors.New("no data table mounted for container")
	ErrInvalidValue    = errors.New("invalid field value")
)

// UnsupportedFieldTypeError reports a field whose kind cannot be rendered.
type UnsupportedFieldTypeError struct {
	Field  string
	Kind   Kind
	Reason string // optional detail, e.g. "enum has no options"
}

func (e *UnsupportedFieldTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("field %q: %v %s: %s", e.Field, ErrUnsupportedFieldType, e.Kind, e.Reason)
	}
	return fmt.Sprintf("field %q: %v %s", e.Field, ErrUnsupportedFieldType, e.Kind)
}

func (e *UnsupportedFieldTypeError) Unwrap() error {
	return ErrUnsupportedFieldType
}

// RangeError reports an address outside the current data grid.
// Rows and Cols are data counts (header excluded) at the time of the call.
type RangeError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell (%d, %d) outside %dx%d grid: %v", e.Row, e.Col, e.Rows, e.Cols, ErrOutOfRange)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
