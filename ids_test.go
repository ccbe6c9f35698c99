package datatable

import "testing"

func TestIDsAreDistinctPerCoordinate(t *testing.T) {
	seen := map[string]bool{}
	for row := 0; row < 12; row++ {
		for col := 0; col < 12; col++ {
			id := CellID("grid", row, col)
			if seen[id] {
				t.Fatalf("CellID(%d, %d) = %q collides", row, col, id)
			}
			seen[id] = true
		}
	}
	// 1_11 vs 11_1
	if CellID("grid", 1, 11) == CellID("grid", 11, 1) {
		t.Error("CellID must separate row and column")
	}
}

func TestIDsEndWithCoordinates(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{OuterID("a_b"), "_dt_outer_a_b"},
		{RowID("a_b", 3), "_dt_tr_a_b_3"},
		{CellID("a_b", 1, 2), "_dt_cell_a_b_1_2"},
		{FieldID("a_b", 1, 2, 0), "_dt_field_a_b_1_2_0"},
		{ErrorID("a_b", 1, 2, 1), "_dt_error_a_b_1_2_1"},
		{ButtonID("a_b", ActionAddRow), "_dt_button_add-row__a_b"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestIDFamiliesDoNotOverlap(t *testing.T) {
	ids := []string{
		OuterID("x"), ControlsID("x"), TableID("x"), HeadID("x"), BodyID("x"),
		RowID("x", 0), CellID("x", 0, 0), FieldID("x", 0, 0, 0), ErrorID("x", 0, 0, 0),
		ButtonID("x", ActionReset),
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("id %q produced twice", id)
		}
		seen[id] = true
	}
}
