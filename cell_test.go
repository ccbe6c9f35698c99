package datatable

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = []FieldDescriptor{
	{Name: "Value", Kind: Number},
	{Name: "Status", Kind: Enum, Options: []string{"Active", "Inactive"}, Default: "Active"},
	{Name: "Done", Kind: Boolean},
}

func TestBuildCellLayout(t *testing.T) {
	c, err := buildCell("g", 2, 3, testSchema, map[string]any{"Value": 9}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Element().ID() != CellID("g", 2, 3) {
		t.Errorf("cell id = %q", c.Element().ID())
	}
	if c.Row() != 1 || c.Col() != 2 {
		t.Errorf("data coordinates = (%d, %d), want (1, 2)", c.Row(), c.Col())
	}
	if len(c.Element().Children()) != len(testSchema) {
		t.Fatalf("expected one wrapper per field, got %d", len(c.Element().Children()))
	}
	for i, wrap := range c.Element().Children() {
		kids := wrap.Children()
		if len(kids) != 2 || kids[0].Tag != TagLabel || kids[0].Text() != testSchema[i].Name {
			t.Errorf("field %d: expected label %q first", i, testSchema[i].Name)
		}
		if kids[1].ID() != FieldID("g", 2, 3, i) {
			t.Errorf("field %d: id %q", i, kids[1].ID())
		}
	}
}

func TestReadAllKeepsSchemaOrder(t *testing.T) {
	c, _ := buildCell("g", 1, 1, testSchema, map[string]any{"Value": 9, "Done": true}, nil)
	rec := c.ReadAll()
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"Value":9,"Status":"Active","Done":true}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
	if v, ok := rec.Get("Status"); !ok || v != "Active" {
		t.Errorf("Get(Status) = %v, %v", v, ok)
	}
	if _, ok := rec.Get("Nope"); ok {
		t.Error("Get(Nope) should miss")
	}
}

func TestCellFieldOutOfRange(t *testing.T) {
	c, _ := buildCell("g", 1, 1, testSchema, nil, nil)
	if _, err := c.Field(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Field(3) = %v", err)
	}
	if _, err := c.Field(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Field(-1) = %v", err)
	}
}

func countErrorNodes(c *Cell) int {
	n := 0
	c.Element().Walk(func(e *Element) bool {
		if e.HasClass("dt-error") {
			n++
		}
		return true
	})
	return n
}

func TestSetErrorIsIdempotent(t *testing.T) {
	c, _ := buildCell("g", 1, 1, testSchema, nil, nil)
	c.SetError(0, "too big")
	c.SetError(0, "too big")
	if n := countErrorNodes(c); n != 1 {
		t.Errorf("expected 1 error node, got %d", n)
	}
	if !c.Invalid() {
		t.Error("cell should be invalid")
	}
	if c.Error(0) != "too big" {
		t.Errorf("message = %q", c.Error(0))
	}

	c.SetError(0, "too small")
	if n := countErrorNodes(c); n != 1 || c.Error(0) != "too small" {
		t.Errorf("replace: %d nodes, message %q", n, c.Error(0))
	}
}

func TestClearError(t *testing.T) {
	c, _ := buildCell("g", 1, 1, testSchema, nil, nil)
	if err := c.ClearError(1); err != nil {
		t.Errorf("clearing with no error should be a no-op, got %v", err)
	}
	if c.Invalid() {
		t.Error("fresh cell invalid")
	}

	c.SetError(0, "a")
	c.SetError(2, "b")
	c.ClearError(0)
	if !c.Invalid() {
		t.Error("cell with one remaining error should stay invalid")
	}
	c.ClearError(2)
	if c.Invalid() {
		t.Error("cell should be valid once every error is cleared")
	}
	if countErrorNodes(c) != 0 {
		t.Error("error nodes left behind")
	}

	c.SetError(1, "x")
	c.SetError(1, "")
	if c.Invalid() {
		t.Error("empty message should clear")
	}
}

func TestDisablingClearsError(t *testing.T) {
	c, _ := buildCell("g", 1, 1, testSchema, nil, nil)
	c.SetError(0, "bad")
	c.SetFieldDisabled(0, true)
	if c.Invalid() || c.Error(0) != "" {
		t.Error("disabled field kept its error")
	}
	c.SetError(0, "bad")
	if c.Invalid() {
		t.Error("disabled field accepted an error")
	}
	if v, _ := c.ReadAll().Get("Value"); v != nil {
		t.Errorf("disabled field read %v", v)
	}
}

func TestValidationOnBlur(t *testing.T) {
	schema := []FieldDescriptor{
		{Name: "Value", Kind: Number, OnChange: func(v any, row, col int) error {
			if n, ok := v.(int); ok && n > 10 {
				return errors.New("max 10")
			}
			return nil
		}},
		{Name: "Done", Kind: Boolean},
	}
	c, err := buildCell("g", 2, 1, schema, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Fields()[1].onChange != nil {
		t.Error("field without a callback got a listener")
	}

	f := c.Fields()[0]
	f.Focus()
	typeInto(f, "11")
	f.Blur()
	if c.Error(0) != "max 10" {
		t.Errorf("expected max 10, got %q", c.Error(0))
	}

	f.Focus()
	f.SetValue("3")
	f.Blur()
	if c.Invalid() {
		t.Error("valid value should clear the error")
	}
}

func TestValidationSeesDataCoordinates(t *testing.T) {
	var gotRow, gotCol int
	schema := []FieldDescriptor{{Name: "Value", Kind: Number, OnChange: func(_ any, row, col int) error {
		gotRow, gotCol = row, col
		return nil
	}}}
	c, _ := buildCell("g", 3, 2, schema, nil, nil)
	f := c.Fields()[0]
	f.Focus()
	f.Blur()
	if gotRow != 2 || gotCol != 1 {
		t.Errorf("callback saw (%d, %d), want (2, 1)", gotRow, gotCol)
	}
}

func TestValidationWithEmptyMessageStillFails(t *testing.T) {
	schema := []FieldDescriptor{{Name: "Value", Kind: Number, OnChange: func(any, int, int) error {
		return errors.New("")
	}}}
	c, _ := buildCell("g", 1, 1, schema, nil, nil)
	f := c.Fields()[0]
	f.Focus()
	f.Blur()
	if !c.Invalid() || c.Error(0) != "invalid" {
		t.Errorf("empty error message: invalid=%v error=%q", c.Invalid(), c.Error(0))
	}
}
