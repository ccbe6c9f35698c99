package datatable

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.alis.build/alog"
)

// Action names a structural edit offered as a button.
type Action string

const (
	ActionAddColumn    Action = "add-column"
	ActionDeleteColumn Action = "delete-column"
	ActionAddRow       Action = "add-row"
	ActionDeleteRow    Action = "delete-row"
	ActionReset        Action = "reset"
)

// Table is one mounted data table. It owns the row and column counts,
// header row and column included, and the element subtree the cells live
// in; there is no separate value model.
//
// Public coordinates are 0-indexed over data cells. The header offset is
// applied in internal() and nowhere else.
type Table struct {
	cfg  *Config
	page *Page

	root     *Element
	controls *Element
	table    *Element
	head     *Element
	body     *Element

	rowCount int // >= 2
	colCount int // >= 2

	generation uuid.UUID
	onReset    func()
}

// build lays out the whole widget detached from the page, so a failure
// leaves nothing mounted.
func build(cfg *Config, page *Page) (*Table, error) {
	t := &Table{
		cfg:        cfg,
		page:       page,
		root:       NewElement(TagDiv, cfg.IDs.Outer, "dt-outer"),
		controls:   NewElement(TagDiv, cfg.IDs.Controls, "dt-controls"),
		table:      NewElement(TagTable, cfg.IDs.Table, "dt-table"),
		head:       NewElement(TagHead, cfg.IDs.Head),
		body:       NewElement(TagBody, cfg.IDs.Body),
		rowCount:   1,
		colCount:   1,
		generation: uuid.New(),
	}

	col := strings.ToLower(cfg.ColumnLabel)
	row := strings.ToLower(cfg.RowLabel)
	for _, b := range []struct {
		action Action
		label  string
	}{
		{ActionAddColumn, "Add " + col},
		{ActionDeleteColumn, "Delete " + col},
		{ActionAddRow, "Add " + row},
		{ActionDeleteRow, "Delete " + row},
		{ActionReset, "Reset"},
	} {
		action := b.action
		btn := NewElement(TagButton, ButtonID(cfg.ContainerID, action), "dt-button").
			SetText(b.label).
			OnClick(func() { t.Do(action) })
		t.controls.AppendChild(btn)
	}

	headRow := NewElement(TagRow, RowID(cfg.ContainerID, 0))
	headRow.AppendChild(NewElement(TagHeader, CellID(cfg.ContainerID, 0, 0), "dt-header", "dt-corner").
		SetText(cfg.RowsLabel + " / " + cfg.ColumnsLabel))
	t.head.AppendChild(headRow)

	t.table.AppendChild(t.head)
	t.table.AppendChild(t.body)
	t.root.AppendChild(t.controls)
	t.root.AppendChild(t.table)

	for c := 0; c < cfg.InitialColumns; c++ {
		if err := t.appendColumn(); err != nil {
			return nil, err
		}
	}
	for r := 0; r < cfg.InitialRows; r++ {
		if err := t.appendRow(at(cfg.InitialValues, r)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Config returns the resolved configuration the table was built from.
func (t *Table) Config() *Config { return t.cfg }

// Root returns the table's outer element.
func (t *Table) Root() *Element { return t.root }

// Generation identifies this build; a reset gets a new one.
func (t *Table) Generation() uuid.UUID { return t.generation }

// ContainerID returns the container the table mounts into.
func (t *Table) ContainerID() string { return t.cfg.ContainerID }

// Mounted reports whether the table is attached to a page.
func (t *Table) Mounted() bool { return t.root.Attached() }

// FieldIndex returns the schema position of name, -1 if absent.
func (t *Table) FieldIndex(name string) int { return t.cfg.FieldIndex(name) }

// NumRows is the number of data rows, header excluded.
func (t *Table) NumRows() int { return t.rowCount - 1 }

// NumColumns is the number of data columns, header excluded.
func (t *Table) NumColumns() int { return t.colCount - 1 }

// Do runs the structural edit behind a button. Reports whether anything
// changed.
func (t *Table) Do(a Action) bool {
	switch a {
	case ActionAddColumn:
		t.InsertColumn()
		return true
	case ActionDeleteColumn:
		return t.DeleteColumn()
	case ActionAddRow:
		t.InsertRow()
		return true
	case ActionDeleteRow:
		return t.DeleteRow()
	case ActionReset:
		if t.onReset != nil {
			t.onReset()
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// structural edits
// ----------------------------------------------------------------------------

// InsertRow appends a row of default cells at the bottom.
func (t *Table) InsertRow() {
	// defaults were proven buildable by Resolve
	if err := t.appendRow(nil); err != nil {
		panic(fmt.Sprintf("datatable: insert row: %v", err))
	}
	alog.Debugf(context.Background(), "datatable %s: inserted row, now %dx%d", t.cfg.ContainerID, t.NumRows(), t.NumColumns())
}

// DeleteRow removes the bottom data row. At one data row it does nothing
// and returns false.
func (t *Table) DeleteRow() bool {
	if t.rowCount <= 2 {
		return false
	}
	t.body.RemoveLastChild()
	t.rowCount--
	alog.Debugf(context.Background(), "datatable %s: deleted row, now %dx%d", t.cfg.ContainerID, t.NumRows(), t.NumColumns())
	return true
}

// InsertColumn appends a column of default cells at the right, header
// cell included.
func (t *Table) InsertColumn() {
	if err := t.appendColumn(); err != nil {
		panic(fmt.Sprintf("datatable: insert column: %v", err))
	}
	alog.Debugf(context.Background(), "datatable %s: inserted column, now %dx%d", t.cfg.ContainerID, t.NumRows(), t.NumColumns())
}

// DeleteColumn removes the right-most data column. At one data column it
// does nothing and returns false.
func (t *Table) DeleteColumn() bool {
	if t.colCount <= 2 {
		return false
	}
	for _, tr := range t.rows() {
		tr.RemoveLastChild()
	}
	t.colCount--
	alog.Debugf(context.Background(), "datatable %s: deleted column, now %dx%d", t.cfg.ContainerID, t.NumRows(), t.NumColumns())
	return true
}

// DeleteRowAt removes data row i. Only the bottom row can be removed;
// any other valid index returns ErrNotImplemented.
func (t *Table) DeleteRowAt(i int) error {
	if i < 0 || i >= t.NumRows() {
		return &RangeError{Row: i, Col: 0, Rows: t.NumRows(), Cols: t.NumColumns()}
	}
	if i != t.NumRows()-1 {
		return fmt.Errorf("delete %s %d of %d: %w", strings.ToLower(t.cfg.RowLabel), i, t.NumRows(), ErrNotImplemented)
	}
	t.DeleteRow()
	return nil
}

// DeleteColumnAt removes data column i, under the same rule as DeleteRowAt.
func (t *Table) DeleteColumnAt(i int) error {
	if i < 0 || i >= t.NumColumns() {
		return &RangeError{Row: 0, Col: i, Rows: t.NumRows(), Cols: t.NumColumns()}
	}
	if i != t.NumColumns()-1 {
		return fmt.Errorf("delete %s %d of %d: %w", strings.ToLower(t.cfg.ColumnLabel), i, t.NumColumns(), ErrNotImplemented)
	}
	t.DeleteColumn()
	return nil
}

// appendRow builds the complete row detached, then attaches it and bumps
// the count in one step. seed holds per-column initial values.
func (t *Table) appendRow(seed []map[string]any) error {
	r := t.rowCount
	tr := NewElement(TagRow, RowID(t.cfg.ContainerID, r))
	th, err := t.headerCell(r, 0)
	if err != nil {
		return err
	}
	tr.AppendChild(th)
	for c := 1; c < t.colCount; c++ {
		cell, err := buildCell(t.cfg.ContainerID, r, c, t.cfg.Schema, at(seed, c-1), t.cfg.Numbers)
		if err != nil {
			return fmt.Errorf("cell (%d, %d): %w", r-1, c-1, err)
		}
		tr.AppendChild(cell.el)
	}
	t.body.AppendChild(tr)
	t.rowCount++
	return nil
}

func (t *Table) appendColumn() error {
	c := t.colCount
	rows := t.rows()
	added := make([]*Element, len(rows))
	for r := range rows {
		if r == 0 {
			th, err := t.headerCell(0, c)
			if err != nil {
				return err
			}
			added[r] = th
			continue
		}
		cell, err := buildCell(t.cfg.ContainerID, r, c, t.cfg.Schema, nil, t.cfg.Numbers)
		if err != nil {
			return fmt.Errorf("cell (%d, %d): %w", r-1, c-1, err)
		}
		added[r] = cell.el
	}
	for r, tr := range rows {
		tr.AppendChild(added[r])
	}
	t.colCount++
	return nil
}

// headerCell builds the header at internal (row, col); exactly one of them
// is 0. Editable headers are plain text fields with no validation.
func (t *Table) headerCell(row, col int) (*Element, error) {
	label, n, editable := t.cfg.RowLabel, row, t.cfg.RowHeaderEditable
	if row == 0 {
		label, n, editable = t.cfg.ColumnLabel, col, t.cfg.ColumnHeaderEditable
	}
	text := label + " " + strconv.Itoa(n)
	th := NewElement(TagHeader, CellID(t.cfg.ContainerID, row, col), "dt-header")
	if !editable {
		return th.SetText(text), nil
	}
	f, err := NewField(FieldDescriptor{Name: label, Kind: Text, Placeholder: text}, nil, t.cfg.Numbers)
	if err != nil {
		return nil, err
	}
	f.el.id = FieldID(t.cfg.ContainerID, row, col, 0)
	th.AppendChild(f.el)
	return th, nil
}

// rows returns the head row followed by every body row.
func (t *Table) rows() []*Element {
	out := make([]*Element, 0, t.rowCount)
	out = append(out, t.head.Children()...)
	return append(out, t.body.Children()...)
}

// ----------------------------------------------------------------------------
// addressing
// ----------------------------------------------------------------------------

// internal maps public data coordinates to internal ones, checking range.
func (t *Table) internal(row, col int) (int, int, error) {
	if row < 0 || row >= t.rowCount-1 || col < 0 || col >= t.colCount-1 {
		return 0, 0, &RangeError{Row: row, Col: col, Rows: t.NumRows(), Cols: t.NumColumns()}
	}
	return row + 1, col + 1, nil
}

// lookup finds an element of this table by id, through the page index
// once mounted.
func (t *Table) lookup(id string) *Element {
	if t.root.Attached() {
		return t.page.ElementByID(id)
	}
	var found *Element
	t.root.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.id == id {
			found = e
		}
		return true
	})
	return found
}

// Cell returns the handle of data cell (row, col).
func (t *Table) Cell(row, col int) (*Cell, error) {
	r, c, err := t.internal(row, col)
	if err != nil {
		return nil, err
	}
	el := t.lookup(CellID(t.cfg.ContainerID, r, c))
	if el == nil || el.cell == nil {
		return nil, fmt.Errorf("cell (%d, %d) not rendered: %w", row, col, ErrOutOfRange)
	}
	return el.cell, nil
}

// CellData reads every field of data cell (row, col).
func (t *Table) CellData(row, col int) (Record, error) {
	cell, err := t.Cell(row, col)
	if err != nil {
		return Record{}, err
	}
	return cell.ReadAll(), nil
}

func (t *Table) field(row, col, field int) (*Cell, *Field, error) {
	cell, err := t.Cell(row, col)
	if err != nil {
		return nil, nil, err
	}
	f, err := cell.Field(field)
	if err != nil {
		return nil, nil, err
	}
	return cell, f, nil
}

// DisableField blanks one field: it reads nil until enabled again.
func (t *Table) DisableField(row, col, field int) error {
	cell, _, err := t.field(row, col, field)
	if err != nil {
		return err
	}
	return cell.SetFieldDisabled(field, true)
}

// EnableField undoes DisableField.
func (t *Table) EnableField(row, col, field int) error {
	cell, _, err := t.field(row, col, field)
	if err != nil {
		return err
	}
	return cell.SetFieldDisabled(field, false)
}

// DisableCell disables every field of a cell.
func (t *Table) DisableCell(row, col int) error {
	return t.setCellDisabled(row, col, true)
}

// EnableCell enables every field of a cell.
func (t *Table) EnableCell(row, col int) error {
	return t.setCellDisabled(row, col, false)
}

func (t *Table) setCellDisabled(row, col int, disabled bool) error {
	cell, err := t.Cell(row, col)
	if err != nil {
		return err
	}
	for i := range cell.fields {
		if err := cell.SetFieldDisabled(i, disabled); err != nil {
			return err
		}
	}
	return nil
}

// SetFieldValue writes v into one field's control.
func (t *Table) SetFieldValue(row, col, field int, v any) error {
	_, f, err := t.field(row, col, field)
	if err != nil {
		return err
	}
	return f.SetValue(v)
}

// FieldValue reads one field.
func (t *Table) FieldValue(row, col, field int) (any, error) {
	_, f, err := t.field(row, col, field)
	if err != nil {
		return nil, err
	}
	return f.Read(), nil
}

// SetError shows msg on one field of a cell; "" clears it.
func (t *Table) SetError(row, col, field int, msg string) error {
	cell, _, err := t.field(row, col, field)
	if err != nil {
		return err
	}
	return cell.SetError(field, msg)
}

// ----------------------------------------------------------------------------
// headers
// ----------------------------------------------------------------------------

// headerText is what a header cell shows: the typed value of an editable
// header, the static label otherwise.
func (t *Table) headerText(row, col int) string {
	th := t.lookup(CellID(t.cfg.ContainerID, row, col))
	if th == nil {
		return ""
	}
	for _, c := range th.Children() {
		if c.field != nil {
			return c.field.Raw()
		}
	}
	return th.Text()
}

// RowNames returns each data row's header text, top to bottom.
func (t *Table) RowNames() []string {
	names := make([]string, t.NumRows())
	for i := range names {
		names[i] = t.headerText(i+1, 0)
	}
	return names
}

// ColumnHeaders returns each data column's header as displayed: the typed
// value, or the placeholder label when an editable header is still empty.
func (t *Table) ColumnHeaders() []string {
	names := make([]string, t.NumColumns())
	for i := range names {
		names[i] = t.headerText(0, i+1)
		if names[i] == "" {
			names[i] = t.cfg.ColumnLabel + " " + strconv.Itoa(i+1)
		}
	}
	return names
}

// SetRowName types name into an editable row header.
func (t *Table) SetRowName(row int, name string) error {
	r, _, err := t.internal(row, 0)
	if err != nil {
		return err
	}
	el := t.lookup(FieldID(t.cfg.ContainerID, r, 0, 0))
	if el == nil || el.field == nil {
		return fmt.Errorf("%s headers are not editable: %w", strings.ToLower(t.cfg.RowLabel), ErrNotImplemented)
	}
	return el.field.SetValue(name)
}
