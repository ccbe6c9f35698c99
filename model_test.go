package datatable

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, opts Options) (Model, *Registry) {
	t.Helper()
	page := NewPage()
	page.AddContainer(opts.ContainerID)
	reg := NewRegistry(page)
	if _, err := reg.Create(opts); err != nil {
		t.Fatal(err)
	}
	m := NewModel(reg, opts.ContainerID, ThemeMonochrome)
	m.Init()
	return m, reg
}

func send(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelShortcuts(t *testing.T) {
	m, reg := newTestModel(t, Options{ContainerID: "g"})
	m = send(m, key("ctrl+n"), key("ctrl+l"), key("ctrl+l"), key("ctrl+k"))

	tbl, _ := reg.Get("g")
	if tbl.NumRows() != 4 || tbl.NumColumns() != 4 {
		t.Errorf("after shortcuts: %dx%d", tbl.NumRows(), tbl.NumColumns())
	}

	m = send(m, key("ctrl+r"))
	tbl, _ = reg.Get("g")
	if tbl.NumRows() != 3 || tbl.NumColumns() != 3 {
		t.Errorf("after reset: %dx%d", tbl.NumRows(), tbl.NumColumns())
	}
}

func TestModelDeleteAtFloorReportsStatus(t *testing.T) {
	m, _ := newTestModel(t, Options{ContainerID: "g", NumRows: Int(1), NumColumns: Int(1)})
	m = send(m, key("ctrl+d"))
	if !strings.Contains(m.View(), "nothing to delete row") {
		t.Error("expected a status line for a refused delete")
	}
}

func TestModelEnterClicksFocusedButton(t *testing.T) {
	m, reg := newTestModel(t, Options{ContainerID: "g"})
	// Init focused Add column
	m = send(m, key("enter"))
	tbl, _ := reg.Get("g")
	if tbl.NumColumns() != 4 {
		t.Errorf("enter on Add column: %d columns", tbl.NumColumns())
	}
	if m.Focus().Button() == nil || m.Focus().Button().Text() != "Add column" {
		t.Error("focus should stay on the button after clicking")
	}

	m = send(m, key("tab"), key("tab"), key("enter"))
	if tbl.NumRows() != 4 {
		t.Errorf("enter on Add row: %d rows", tbl.NumRows())
	}
}

func TestModelTypingAndExport(t *testing.T) {
	m, reg := newTestModel(t, Options{ContainerID: "g", NumRows: Int(1), NumColumns: Int(1)})
	for m.Focus().Field() == nil || m.Focus().Field().Name() != "Value" {
		m = send(m, key("tab"))
	}
	m = send(m, key("1,000"), key("ctrl+e"))
	if !m.Exported() {
		t.Error("ctrl+e should mark the model exported")
	}

	got, _ := reg.ToJSON("g")
	if !strings.Contains(got, `"Value":1000`) {
		t.Errorf("typed value missing from export: %s", got)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, Options{ContainerID: "g", NumRows: Int(1), NumColumns: Int(2), RowLabel: "Day"})
	view := m.View()
	for _, want := range []string{"[Add column]", "Column 1", "Column 2", "Value:", "Status:", "Active", "Day 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelShowsHelpForFocusedField(t *testing.T) {
	m, _ := newTestModel(t, Options{
		ContainerID: "g",
		NumRows:     Int(1),
		NumColumns:  Int(1),
		FieldHelp:   []string{"whole units only"},
	})
	if strings.Contains(m.View(), "whole units only") {
		t.Error("help shown before focus")
	}
	for m.Focus().Field() == nil || m.Focus().Field().Name() != "Value" {
		m = send(m, key("tab"))
	}
	if !strings.Contains(m.View(), "? whole units only") {
		t.Error("help missing for focused field")
	}
}
