package datatable

import "strconv"

// Element ids are built from a family prefix, the container id, then the
// numeric coordinates as trailing "_"-separated segments. The coordinate
// count is fixed per family, so reading from the right always recovers the
// container id even when it contains "_" itself.
//
// Coordinates here are internal: row 0 is the column header row and col 0
// the row header column.

const (
	prefixOuter    = "_dt_outer_"
	prefixControls = "_dt_controls_"
	prefixTable    = "_dt_table_"
	prefixHead     = "_dt_thead_"
	prefixBody     = "_dt_tbody_"
	prefixRow      = "_dt_tr_"
	prefixCell     = "_dt_cell_"
	prefixField    = "_dt_field_"
	prefixError    = "_dt_error_"
	prefixButton   = "_dt_button_"
)

// OuterID is the id of the outermost panel mounted into the container.
func OuterID(containerID string) string { return prefixOuter + containerID }

// ControlsID is the id of the panel holding the structural edit buttons.
func ControlsID(containerID string) string { return prefixControls + containerID }

// TableID is the id of the table element.
func TableID(containerID string) string { return prefixTable + containerID }

// HeadID is the id of the header section.
func HeadID(containerID string) string { return prefixHead + containerID }

// BodyID is the id of the body section.
func BodyID(containerID string) string { return prefixBody + containerID }

// RowID is the id of the row element at internal index row.
func RowID(containerID string, row int) string {
	return prefixRow + containerID + "_" + strconv.Itoa(row)
}

// CellID is the id of the cell element at internal (row, col).
func CellID(containerID string, row, col int) string {
	return prefixCell + containerID + "_" + strconv.Itoa(row) + "_" + strconv.Itoa(col)
}

// FieldID is the id of field number field inside the cell at internal (row, col).
func FieldID(containerID string, row, col, field int) string {
	return prefixField + containerID + "_" + strconv.Itoa(row) + "_" + strconv.Itoa(col) + "_" + strconv.Itoa(field)
}

// ErrorID is the id of the error message node for one field.
func ErrorID(containerID string, row, col, field int) string {
	return prefixError + containerID + "_" + strconv.Itoa(row) + "_" + strconv.Itoa(col) + "_" + strconv.Itoa(field)
}

// ButtonID is the id of a control panel button.
// The action name goes first so the container id stays the trailing segment.
func ButtonID(containerID string, action Action) string {
	return prefixButton + string(action) + "__" + containerID
}
