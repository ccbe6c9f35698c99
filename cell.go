package datatable

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a cell's values keyed by field name, in schema order.
// It encodes to a JSON object whose keys keep that order.
type Record struct {
	names  []string
	values []any
}

// NewRecord pairs names with values. Extra values are dropped, missing
// ones read as nil.
func NewRecord(names []string, values []any) Record {
	r := Record{names: names, values: make([]any, len(names))}
	copy(r.values, values)
	return r
}

func (r Record) Len() int            { return len(r.names) }
func (r Record) Names() []string     { return r.names }
func (r Record) Values() []any       { return r.values }
func (r Record) At(i int) any        { return r.values[i] }
func (r Record) NameAt(i int) string { return r.names[i] }

// Get returns the value stored under name.
func (r Record) Get(name string) (any, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// Map copies the record into a map, losing order.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.names))
	for i, n := range r.names {
		m[n] = r.values[i]
	}
	return m
}

func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", n, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// ============================================================================
// Cell
// ============================================================================

// Cell is the handle over one data cell's element. Reads and writes go
// straight to the field controls it displays.
type Cell struct {
	el          *Element
	containerID string
	row, col    int // internal coordinates, header at 0

	fields   []*Field
	wrappers []*Element
	errors   []*Element // nil where the field has no error
}

// buildCell lays out one field per schema entry, each labeled with its
// name. current seeds values by field name; anything missing takes the
// schema default.
func buildCell(containerID string, row, col int, schema []FieldDescriptor, current map[string]any, numbers *NumberParser) (*Cell, error) {
	c := &Cell{
		el:          NewElement(TagCell, CellID(containerID, row, col), "dt-cell"),
		containerID: containerID,
		row:         row,
		col:         col,
		fields:      make([]*Field, 0, len(schema)),
		wrappers:    make([]*Element, 0, len(schema)),
		errors:      make([]*Element, len(schema)),
	}
	c.el.cell = c

	for i, desc := range schema {
		f, err := NewField(desc, current[desc.Name], numbers)
		if err != nil {
			return nil, err
		}
		f.el.id = FieldID(containerID, row, col, i)

		wrap := NewElement(TagDiv, "", "dt-field")
		wrap.AppendChild(NewElement(TagLabel, "").SetText(desc.Name))
		wrap.AppendChild(f.el)
		c.el.AppendChild(wrap)

		c.fields = append(c.fields, f)
		c.wrappers = append(c.wrappers, wrap)
		bindValidation(c, i)
	}
	return c, nil
}

func (c *Cell) Element() *Element { return c.el }
func (c *Cell) Fields() []*Field  { return c.fields }

// Row is the 0-indexed data row, header excluded.
func (c *Cell) Row() int { return c.row - 1 }

// Col is the 0-indexed data column, header excluded.
func (c *Cell) Col() int { return c.col - 1 }

// Field returns field i.
func (c *Cell) Field(i int) (*Field, error) {
	if i < 0 || i >= len(c.fields) {
		return nil, fmt.Errorf("field %d of %d: %w", i, len(c.fields), ErrOutOfRange)
	}
	return c.fields[i], nil
}

// ReadAll reads every field, in schema order.
func (c *Cell) ReadAll() Record {
	names := make([]string, len(c.fields))
	values := make([]any, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name()
		values[i] = f.Read()
	}
	return Record{names: names, values: values}
}

// SetFieldDisabled disables or enables field i. A disabled field cannot
// be invalid, so disabling also clears its error.
func (c *Cell) SetFieldDisabled(i int, disabled bool) error {
	f, err := c.Field(i)
	if err != nil {
		return err
	}
	f.SetDisabled(disabled)
	if disabled {
		return c.ClearError(i)
	}
	return nil
}

// SetError shows msg under field i and marks the cell invalid. Setting
// an error twice replaces the message, never duplicates the node. An empty
// msg clears. Disabled fields ignore errors.
func (c *Cell) SetError(i int, msg string) error {
	f, err := c.Field(i)
	if err != nil {
		return err
	}
	if msg == "" || f.Disabled() {
		return c.ClearError(i)
	}
	if node := c.errors[i]; node != nil {
		node.SetText(msg)
	} else {
		node = NewElement(TagSpan, ErrorID(c.containerID, c.row, c.col, i), "dt-error").SetText(msg)
		c.wrappers[i].AppendChild(node)
		c.errors[i] = node
	}
	c.el.AddClass("dt-invalid")
	return nil
}

// ClearError removes field i's error. The cell turns valid again once no
// field has one. Clearing a field without an error is a no-op.
func (c *Cell) ClearError(i int) error {
	if _, err := c.Field(i); err != nil {
		return err
	}
	node := c.errors[i]
	if node == nil {
		return nil
	}
	c.wrappers[i].RemoveChild(node)
	c.errors[i] = nil
	for _, e := range c.errors {
		if e != nil {
			return nil
		}
	}
	c.el.RemoveClass("dt-invalid")
	return nil
}

// Error returns field i's current message, "" if it has none.
func (c *Cell) Error(i int) string {
	if i < 0 || i >= len(c.errors) || c.errors[i] == nil {
		return ""
	}
	return c.errors[i].Text()
}

// Errors returns one message per field, "" where valid.
func (c *Cell) Errors() []string {
	out := make([]string, len(c.errors))
	for i := range c.errors {
		out[i] = c.Error(i)
	}
	return out
}

// Invalid reports whether any field currently shows an error.
func (c *Cell) Invalid() bool { return c.el.HasClass("dt-invalid") }
