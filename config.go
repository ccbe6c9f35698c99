package datatable

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"
)

// Options is the client-supplied configuration. Pointer fields tell
// "unset" (nil, take the default) apart from an explicit zero; likewise a
// nil list takes the default schema while a non-nil empty list is an
// explicit, and invalid, empty schema.
type Options struct {
	// ContainerID names the page container to mount into. Required.
	ContainerID string

	// NumRows and NumColumns count data rows and columns, headers
	// excluded. Default 3 each; must be at least 1.
	NumRows    *int
	NumColumns *int

	// RowLabel and ColumnLabel are the singular nouns used in headers and
	// buttons. Default "Row" and "Column".
	RowLabel    string
	ColumnLabel string

	// RowHeaderEditable defaults to true: row headers are text fields
	// whose values become the exported row names. ColumnHeaderEditable
	// defaults to false.
	RowHeaderEditable    *bool
	ColumnHeaderEditable *bool

	// The schema, as parallel lists. FieldNames and FieldTypes must have
	// the same length; the others may be shorter or nil.
	FieldNames    []string
	FieldTypes    []FieldType
	DefaultValues []any
	OnChange      []ChangeFunc
	FieldHelp     []string

	// Locale drives integer parsing and display. Default English.
	Locale language.Tag

	// InitialValues seeds data cells by [row][col], keyed by field name.
	InitialValues [][]map[string]any
}

// clone returns a copy of o that shares no pointers, slices or maps with
// it, so later edits by the caller cannot reach a stored copy.
func (o Options) clone() Options {
	c := o
	c.NumRows = clonePtr(o.NumRows)
	c.NumColumns = clonePtr(o.NumColumns)
	c.RowHeaderEditable = clonePtr(o.RowHeaderEditable)
	c.ColumnHeaderEditable = clonePtr(o.ColumnHeaderEditable)
	c.FieldNames = slices.Clone(o.FieldNames)
	c.DefaultValues = slices.Clone(o.DefaultValues)
	c.OnChange = slices.Clone(o.OnChange)
	c.FieldHelp = slices.Clone(o.FieldHelp)
	if o.FieldTypes != nil {
		c.FieldTypes = make([]FieldType, len(o.FieldTypes))
		for i, ft := range o.FieldTypes {
			c.FieldTypes[i] = FieldType{Kind: ft.Kind, Options: slices.Clone(ft.Options)}
		}
	}
	if o.InitialValues != nil {
		c.InitialValues = make([][]map[string]any, len(o.InitialValues))
		for r, row := range o.InitialValues {
			if row == nil {
				continue
			}
			c.InitialValues[r] = make([]map[string]any, len(row))
			for col, seed := range row {
				c.InitialValues[r][col] = maps.Clone(seed)
			}
		}
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int returns a pointer to n, for Options literals.
func Int(n int) *int { return &n }

// Bool returns a pointer to b, for Options literals.
func Bool(b bool) *bool { return &b }

// Defaults applied by Resolve.
const (
	DefaultNumRows     = 3
	DefaultNumColumns  = 3
	DefaultRowLabel    = "Row"
	DefaultColumnLabel = "Column"
)

// DefaultFieldNames and DefaultFieldTypes make up the default schema: an
// integer "Value" and a "Status" that starts out "Active".
var (
	DefaultFieldNames    = []string{"Value", "Status"}
	DefaultFieldTypes    = []FieldType{NumberType, EnumOf("Active", "Inactive")}
	DefaultDefaultValues = []any{nil, "Active"}
)

// PanelIDs are the generated ids of an instance's fixed elements.
type PanelIDs struct {
	Outer    string
	Controls string
	Table    string
	Head     string
	Body     string
}

// Config is a resolved, validated configuration.
type Config struct {
	ContainerID string

	InitialRows    int
	InitialColumns int

	RowLabel     string
	ColumnLabel  string
	RowsLabel    string // plural, for headers
	ColumnsLabel string

	RowHeaderEditable    bool
	ColumnHeaderEditable bool

	Schema        []FieldDescriptor
	InitialValues [][]map[string]any

	Locale  language.Tag
	Numbers *NumberParser

	IDs PanelIDs
}

// FieldIndex returns the schema position of name, -1 if absent.
func (c *Config) FieldIndex(name string) int {
	return slices.IndexFunc(c.Schema, func(d FieldDescriptor) bool { return d.Name == name })
}

// Resolve fills in defaults, then validates the complete candidate.
func Resolve(opts Options) (*Config, error) {
	o := withDefaults(opts)
	if err := validateOptions(o); err != nil {
		return nil, err
	}

	cfg := &Config{
		ContainerID:          o.ContainerID,
		InitialRows:          *o.NumRows,
		InitialColumns:       *o.NumColumns,
		RowLabel:             o.RowLabel,
		ColumnLabel:          o.ColumnLabel,
		RowsLabel:            plural(o.RowLabel),
		ColumnsLabel:         plural(o.ColumnLabel),
		RowHeaderEditable:    *o.RowHeaderEditable,
		ColumnHeaderEditable: *o.ColumnHeaderEditable,
		InitialValues:        o.InitialValues,
		Locale:               o.Locale,
		Numbers:              NewNumberParser(o.Locale),
		IDs: PanelIDs{
			Outer:    OuterID(o.ContainerID),
			Controls: ControlsID(o.ContainerID),
			Table:    TableID(o.ContainerID),
			Head:     HeadID(o.ContainerID),
			Body:     BodyID(o.ContainerID),
		},
	}

	cfg.Schema = make([]FieldDescriptor, len(o.FieldNames))
	for i, name := range o.FieldNames {
		ft := o.FieldTypes[i]
		d := FieldDescriptor{
			Name:     name,
			Kind:     ft.Kind,
			Options:  slices.Clone(ft.Options),
			Default:  at(o.DefaultValues, i),
			OnChange: at(o.OnChange, i),
			Help:     at(o.FieldHelp, i),
		}
		cfg.Schema[i] = d
	}

	// a throwaway control per field proves each default is usable
	for _, d := range cfg.Schema {
		if _, err := NewField(d, nil, cfg.Numbers); err != nil {
			if errors.Is(err, ErrUnsupportedFieldType) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
		}
	}
	return cfg, nil
}

func withDefaults(o Options) Options {
	if o.NumRows == nil {
		o.NumRows = Int(DefaultNumRows)
	}
	if o.NumColumns == nil {
		o.NumColumns = Int(DefaultNumColumns)
	}
	if o.RowLabel == "" {
		o.RowLabel = DefaultRowLabel
	}
	if o.ColumnLabel == "" {
		o.ColumnLabel = DefaultColumnLabel
	}
	if o.RowHeaderEditable == nil {
		o.RowHeaderEditable = Bool(true)
	}
	if o.ColumnHeaderEditable == nil {
		o.ColumnHeaderEditable = Bool(false)
	}
	if o.FieldNames == nil && o.FieldTypes == nil && o.DefaultValues == nil {
		o.DefaultValues = DefaultDefaultValues
	}
	if o.FieldNames == nil {
		o.FieldNames = DefaultFieldNames
	}
	if o.FieldTypes == nil {
		o.FieldTypes = DefaultFieldTypes
	}
	if o.Locale == language.Und {
		o.Locale = language.English
	}
	return o
}

// validateOptions checks a defaulted candidate, in the order the errors
// are documented.
func validateOptions(o Options) error {
	if o.ContainerID == "" {
		return ErrMissingContainerID
	}
	if *o.NumRows <= 0 || *o.NumColumns <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, *o.NumRows, *o.NumColumns)
	}
	if len(o.FieldNames) == 0 {
		return ErrEmptySchema
	}
	if len(o.FieldTypes) == 0 {
		return ErrMissingFieldTypes
	}
	for i, ft := range o.FieldTypes {
		name := ""
		if i < len(o.FieldNames) {
			name = o.FieldNames[i]
		}
		switch ft.Kind {
		case Number, Boolean:
		case Enum:
			if len(ft.Options) == 0 {
				return &UnsupportedFieldTypeError{Field: name, Kind: ft.Kind, Reason: "enum has no options"}
			}
		default:
			// Text is reserved for editable headers
			return &UnsupportedFieldTypeError{Field: name, Kind: ft.Kind}
		}
	}
	if len(o.FieldNames) != len(o.FieldTypes) {
		return fmt.Errorf("%w: %d names, %d types", ErrMismatchedSchema, len(o.FieldNames), len(o.FieldTypes))
	}
	seen := make(map[string]bool, len(o.FieldNames))
	for _, n := range o.FieldNames {
		if seen[n] {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldName, n)
		}
		seen[n] = true
	}
	return nil
}

func plural(noun string) string {
	return noun + "s"
}

// at returns s[i], or the zero value past the end.
func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}
