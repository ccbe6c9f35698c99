package datatable

import (
	"testing"
)

func TestFocusOrderFollowsTree(t *testing.T) {
	tbl, _ := newTestTable(t, Options{ContainerID: "g", NumRows: Int(1), NumColumns: Int(1)})
	fm := NewFocusManager().Collect(tbl.Root())

	// 5 buttons, 1 row header, 2 fields
	if fm.Len() != 8 {
		t.Fatalf("expected 8 focus targets, got %d", fm.Len())
	}
	if fm.Current() != -1 {
		t.Error("nothing should be focused after collect")
	}

	fm.Next()
	if fm.Button() == nil || fm.Button().Text() != "Add column" {
		t.Errorf("first target should be the Add column button")
	}
	if !fm.Button().HasClass("dt-focused") {
		t.Error("focused button not marked")
	}

	fm.Prev()
	if f := fm.Field(); f == nil || f.Name() != "Status" {
		t.Errorf("prev should wrap to the last field")
	}
}

func TestFocusSkipsDisabledFields(t *testing.T) {
	tbl, _ := newTestTable(t, Options{ContainerID: "g", NumRows: Int(1), NumColumns: Int(1)})
	tbl.DisableField(0, 0, 0)
	fm := NewFocusManager().Collect(tbl.Root())

	fm.Focus(5) // row header
	fm.Next()
	if f := fm.Field(); f == nil || f.Name() != "Status" {
		t.Errorf("expected Status after skipping disabled Value, got %v", f)
	}
	fm.Focus(6)
	if fm.Current() != 7 {
		t.Errorf("focusing a disabled field should be ignored, current %d", fm.Current())
	}
}

func TestMovingFocusBlursAndValidates(t *testing.T) {
	tbl, _ := newTestTable(t, Options{
		ContainerID: "g",
		NumRows:     Int(1),
		NumColumns:  Int(1),
		OnChange:    []ChangeFunc{MinInt(0)},
	})
	fm := NewFocusManager().Collect(tbl.Root())
	fm.Focus(6)
	f := fm.Field()
	if f == nil || f.Name() != "Value" {
		t.Fatalf("index 6 should be Value, got %v", f)
	}
	typeInto(f, "-5")
	fm.Next()

	if f.Focused() {
		t.Error("previous field still focused")
	}
	cell, _ := tbl.Cell(0, 0)
	if cell.Error(0) != "min 0" {
		t.Errorf("expected validation on blur, got %q", cell.Error(0))
	}
}

func TestCollectKeepsFocus(t *testing.T) {
	tbl, _ := newTestTable(t, Options{ContainerID: "g", NumRows: Int(2), NumColumns: Int(1)})
	fm := NewFocusManager().Collect(tbl.Root())
	fm.Focus(0)
	tbl.InsertColumn()
	fm.Collect(tbl.Root())
	if fm.Current() != 0 || fm.Button() == nil {
		t.Errorf("focus lost on rebuild: %d", fm.Current())
	}
	before := fm.Len()
	tbl.DeleteRow()
	fm.Collect(tbl.Root())
	if fm.Len() >= before {
		t.Errorf("deleted row still has focus targets: %d >= %d", fm.Len(), before)
	}
}
